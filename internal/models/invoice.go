package models

import "time"

// InvoiceStatus represents the billing state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"   // generated, not yet sent
	InvoiceStatusPending InvoiceStatus = "PENDING" // sent, awaiting payment
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE" // past due date, unpaid
	InvoiceStatusPartial InvoiceStatus = "PARTIAL" // 0 < amount_paid < amount
	InvoiceStatusPaid    InvoiceStatus = "PAID"    // amount_paid >= amount
)

// Invoice represents one billing period's rent obligation for a lease.
// All amounts are RWF.
type Invoice struct {
	ID                int           `json:"id"`
	LeaseID           int           `json:"lease_id"`
	Amount            int64         `json:"amount"`
	AmountPaid        int64         `json:"amount_paid"`
	DueDate           time.Time     `json:"due_date"`
	Status            InvoiceStatus `json:"status"`
	WhatsappSent      bool          `json:"whatsapp_sent"`
	WhatsappMessageID string        `json:"whatsapp_message_id,omitempty"`
	DeliveryStatus    string        `json:"delivery_status,omitempty"`
	PaymentDate       *time.Time    `json:"payment_date"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// AmountDue returns the remaining balance on the invoice
func (i *Invoice) AmountDue() int64 {
	return i.Amount - i.AmountPaid
}

// InvoiceWithDetails includes tenant and unit details for list views
// and message composition
type InvoiceWithDetails struct {
	Invoice
	TenantName  string `json:"tenant_name"`
	TenantPhone string `json:"tenant_phone"`
	UnitNumber  string `json:"unit_number"`
}

// ApproveInvoicesRequest marks draft invoices PENDING and sends notices
type ApproveInvoicesRequest struct {
	InvoiceIDs []int `json:"invoice_ids"`
}

// GenerateResult is returned by the billing cycle run
type GenerateResult struct {
	Success   bool   `json:"success"`
	Generated int    `json:"generated"`
	Skipped   int    `json:"skipped"`
	Message   string `json:"message"`
}
