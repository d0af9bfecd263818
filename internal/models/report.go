package models

import "time"

// DashboardSummary is the cached month-to-date overview
type DashboardSummary struct {
	UnitsTotal     int       `json:"units_total"`
	UnitsOccupied  int       `json:"units_occupied"`
	BilledMonth    int64     `json:"billed_this_month"`    // RWF due this month
	CollectedMonth int64     `json:"collected_this_month"` // RWF received this month (cash/momo/bank)
	Outstanding    int64     `json:"outstanding"`          // unpaid balance across open invoices
	WalletTotal    int64     `json:"wallet_total"`         // standing tenant credit
	GeneratedAt    time.Time `json:"generated_at"`
}

// PaymentWithTenant is a payment row joined with tenant and unit details
type PaymentWithTenant struct {
	Payment
	TenantName string `json:"tenant_name"`
	UnitNumber string `json:"unit_number"`
}

// WebhookStatusRequest is the delivery-status callback body. Only the
// message id and status are consumed; full payload parsing stays with
// the gateway.
type WebhookStatusRequest struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}
