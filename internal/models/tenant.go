package models

import "time"

// Tenant represents a person renting (or able to rent) a unit
type Tenant struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	IDNumber  string    `json:"id_number"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTenantRequest represents the request to register a tenant
type CreateTenantRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IDNumber string `json:"id_number"`
	Notes    string `json:"notes"`
}

// TenantStatement is the full billing history for one tenant:
// every invoice and payment across their leases plus the current wallet
type TenantStatement struct {
	Tenant        Tenant     `json:"tenant"`
	WalletBalance int64      `json:"wallet_balance"`
	Invoices      []*Invoice `json:"invoices"`
	Payments      []*Payment `json:"payments"`
	TotalBilled   int64      `json:"total_billed"`
	TotalPaid     int64      `json:"total_paid"`
	Outstanding   int64      `json:"outstanding"`
}
