package billing

import (
	"errors"

	"rentora-backend/internal/models"
)

var (
	// ErrInvoiceSettled rejects a payment against an invoice that has no
	// remaining balance, instead of pushing amount_paid past the total
	ErrInvoiceSettled = errors.New("invoice already settled")

	// ErrInvalidAmount rejects a negative cash amount
	ErrInvalidAmount = errors.New("payment amount must not be negative")

	// ErrNothingToAllocate rejects a request that contributes no funds
	// (zero cash and no usable wallet)
	ErrNothingToAllocate = errors.New("no funds to allocate")
)

// AllocationInput is the state a single payment is allocated against.
// All amounts are RWF.
type AllocationInput struct {
	InvoiceAmount int64 // total due on the invoice
	AmountPaid    int64 // already applied to the invoice
	WalletBalance int64 // lease credit balance
	CashAmount    int64 // cash/momo/bank tendered in this payment
	ApplyWallet   bool  // draw from the wallet as well
}

// Allocation is the computed split of one payment
type Allocation struct {
	WalletContribution int64 // drawn from the wallet
	CashContribution   int64 // tendered cash applied
	TotalPayment       int64 // wallet + cash
	AppliedToInvoice   int64 // min(total, amount due); added to amount_paid
	CreditToWallet     int64 // overflow deposited back into the wallet
	NewWalletBalance   int64 // balance after draw and overflow
	Status             models.InvoiceStatus
}

// Allocate splits one incoming payment between wallet draw-down and invoice
// settlement. The wallet contributes at most the remaining balance due; the
// cash contribution is independent of the wallet. When the combined payment
// covers the balance the invoice becomes PAID and the excess is credited
// back to the wallet, otherwise the invoice becomes PARTIAL and everything
// is applied.
func Allocate(in AllocationInput) (Allocation, error) {
	if in.CashAmount < 0 {
		return Allocation{}, ErrInvalidAmount
	}

	amountDue := in.InvoiceAmount - in.AmountPaid
	if amountDue <= 0 {
		return Allocation{}, ErrInvoiceSettled
	}

	var walletContribution int64
	if in.ApplyWallet && in.WalletBalance > 0 {
		walletContribution = min64(amountDue, in.WalletBalance)
	}

	totalPayment := walletContribution + in.CashAmount
	if totalPayment == 0 {
		return Allocation{}, ErrNothingToAllocate
	}

	alloc := Allocation{
		WalletContribution: walletContribution,
		CashContribution:   in.CashAmount,
		TotalPayment:       totalPayment,
	}

	if totalPayment >= amountDue {
		alloc.Status = models.InvoiceStatusPaid
		alloc.AppliedToInvoice = amountDue
		alloc.CreditToWallet = totalPayment - amountDue
	} else {
		alloc.Status = models.InvoiceStatusPartial
		alloc.AppliedToInvoice = totalPayment
	}

	alloc.NewWalletBalance = in.WalletBalance - walletContribution + alloc.CreditToWallet
	return alloc, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
