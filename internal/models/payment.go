package models

import "time"

// PaymentMethod represents how a payment was made.
// WALLET rows are synthetic: they record a draw from the tenant's credit
// balance so the ledger stays auditable even though no cash moved.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodMomo   PaymentMethod = "MOMO"
	PaymentMethodBank   PaymentMethod = "BANK"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

// Payment is an immutable ledger entry recording one allocation event.
// A single tenant payment can produce up to two rows: one WALLET draw and
// one cash/momo/bank contribution. Rows are never updated or deleted.
type Payment struct {
	ID          int           `json:"id"`
	InvoiceID   int           `json:"invoice_id"`
	LeaseID     int           `json:"lease_id"`
	Amount      int64         `json:"amount"` // RWF
	Method      PaymentMethod `json:"method"`
	Notes       string        `json:"notes"`
	PaymentDate time.Time     `json:"payment_date"`
	CreatedAt   time.Time     `json:"created_at"`
}

// RecordPaymentRequest represents an incoming payment against an invoice
type RecordPaymentRequest struct {
	InvoiceID int           `json:"invoice_id"`
	Amount    int64         `json:"amount"` // cash tendered, RWF
	Method    PaymentMethod `json:"method"`
	Notes     string        `json:"notes"`
	UseWallet bool          `json:"use_wallet"`
}

// RecordPaymentResult summarizes the outcome of a payment allocation
type RecordPaymentResult struct {
	Success        bool          `json:"success"`
	Status         InvoiceStatus `json:"status"`
	AmountApplied  int64         `json:"amount_applied"`
	WalletUsed     int64         `json:"wallet_used"`
	CreditToWallet int64         `json:"credit_to_wallet"`
	NewWallet      int64         `json:"new_wallet_balance"`
	Message        string        `json:"message"`
}
