package models

import "time"

// LeaseStatus represents the lifecycle state of a lease
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
)

// Lease binds a tenant to a unit with a rent amount and duration.
// CreditBalance is the tenant's standing wallet in RWF, drawable against
// future invoices. It is only mutated inside a payment transaction with
// the lease row locked.
type Lease struct {
	ID            int         `json:"id"`
	TenantID      int         `json:"tenant_id"`
	UnitID        int         `json:"unit_id"`
	RentAmount    int64       `json:"rent_amount"` // RWF per month
	StartDate     time.Time   `json:"start_date"`
	EndDate       *time.Time  `json:"end_date"` // nil = indefinite
	Status        LeaseStatus `json:"status"`
	CreditBalance int64       `json:"credit_balance"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CreateLeaseRequest represents the request to sign a tenant onto a unit
type CreateLeaseRequest struct {
	TenantID   int    `json:"tenant_id"`
	UnitID     int    `json:"unit_id"`
	RentAmount int64  `json:"rent_amount"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // optional
}

// LeaseWithDetails includes tenant and unit details for list views
// and notification composition
type LeaseWithDetails struct {
	Lease
	TenantName  string `json:"tenant_name"`
	TenantPhone string `json:"tenant_phone"`
	UnitNumber  string `json:"unit_number"`
}
