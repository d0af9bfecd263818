package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora-backend/internal/models"
)

func TestAllocateFullCashNoWallet(t *testing.T) {
	alloc, err := Allocate(AllocationInput{
		InvoiceAmount: 100_000,
		CashAmount:    100_000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, alloc.Status)
	assert.Equal(t, int64(100_000), alloc.AppliedToInvoice)
	assert.Equal(t, int64(0), alloc.WalletContribution)
	assert.Equal(t, int64(0), alloc.CreditToWallet)
	assert.Equal(t, int64(0), alloc.NewWalletBalance)
}

func TestAllocatePartialCash(t *testing.T) {
	alloc, err := Allocate(AllocationInput{
		InvoiceAmount: 100_000,
		CashAmount:    40_000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPartial, alloc.Status)
	assert.Equal(t, int64(40_000), alloc.AppliedToInvoice)
	assert.Equal(t, int64(0), alloc.CreditToWallet)
}

func TestAllocateWalletPlusCashWithOverflow(t *testing.T) {
	// Wallet 30k drawn in full, cash 90k: 120k against 100k due.
	// Invoice settles, the 20k excess goes back into the wallet.
	alloc, err := Allocate(AllocationInput{
		InvoiceAmount: 100_000,
		WalletBalance: 30_000,
		CashAmount:    90_000,
		ApplyWallet:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30_000), alloc.WalletContribution)
	assert.Equal(t, int64(90_000), alloc.CashContribution)
	assert.Equal(t, int64(120_000), alloc.TotalPayment)
	assert.Equal(t, models.InvoiceStatusPaid, alloc.Status)
	assert.Equal(t, int64(100_000), alloc.AppliedToInvoice)
	assert.Equal(t, int64(20_000), alloc.CreditToWallet)
	assert.Equal(t, int64(20_000), alloc.NewWalletBalance)
}

func TestAllocateWalletCappedAtAmountDue(t *testing.T) {
	// Wallet holds more than the balance due: only the due portion is drawn
	alloc, err := Allocate(AllocationInput{
		InvoiceAmount: 100_000,
		AmountPaid:    60_000,
		WalletBalance: 55_000,
		ApplyWallet:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40_000), alloc.WalletContribution)
	assert.Equal(t, models.InvoiceStatusPaid, alloc.Status)
	assert.Equal(t, int64(15_000), alloc.NewWalletBalance)
}

func TestAllocateWalletNotApplied(t *testing.T) {
	// apply_wallet off: the wallet contributes nothing, cash path unchanged
	alloc, err := Allocate(AllocationInput{
		InvoiceAmount: 100_000,
		WalletBalance: 30_000,
		CashAmount:    40_000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), alloc.WalletContribution)
	assert.Equal(t, models.InvoiceStatusPartial, alloc.Status)
	assert.Equal(t, int64(30_000), alloc.NewWalletBalance)
}

func TestAllocateEmptyWalletApplied(t *testing.T) {
	alloc, err := Allocate(AllocationInput{
		InvoiceAmount: 100_000,
		CashAmount:    40_000,
		ApplyWallet:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), alloc.WalletContribution)
	assert.Equal(t, int64(40_000), alloc.AppliedToInvoice)
}

func TestAllocateRejectsSettledInvoice(t *testing.T) {
	_, err := Allocate(AllocationInput{
		InvoiceAmount: 100_000,
		AmountPaid:    100_000,
		CashAmount:    10_000,
	})
	assert.ErrorIs(t, err, ErrInvoiceSettled)

	// Also when amount_paid somehow exceeds the total
	_, err = Allocate(AllocationInput{
		InvoiceAmount: 100_000,
		AmountPaid:    120_000,
		CashAmount:    10_000,
	})
	assert.ErrorIs(t, err, ErrInvoiceSettled)
}

func TestAllocateRejectsNegativeCash(t *testing.T) {
	_, err := Allocate(AllocationInput{InvoiceAmount: 100_000, CashAmount: -1})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAllocateRejectsZeroContribution(t *testing.T) {
	_, err := Allocate(AllocationInput{InvoiceAmount: 100_000, ApplyWallet: true})
	assert.ErrorIs(t, err, ErrNothingToAllocate)
}

func TestAllocateSequentialWalletDraws(t *testing.T) {
	// Two draws against the same wallet: the second must see the balance
	// left by the first. The payment service enforces this by locking the
	// lease row, so allocations are always computed sequentially.
	first, err := Allocate(AllocationInput{
		InvoiceAmount: 50_000,
		WalletBalance: 60_000,
		ApplyWallet:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), first.WalletContribution)
	assert.Equal(t, int64(10_000), first.NewWalletBalance)

	second, err := Allocate(AllocationInput{
		InvoiceAmount: 50_000,
		WalletBalance: first.NewWalletBalance,
		CashAmount:    5_000,
		ApplyWallet:   true,
	})
	require.NoError(t, err)
	// Only 10k left to draw, not the 50k a stale read would have allowed
	assert.Equal(t, int64(10_000), second.WalletContribution)
	assert.Equal(t, models.InvoiceStatusPartial, second.Status)
	assert.Equal(t, int64(0), second.NewWalletBalance)
}

func TestAllocateExactWalletOnly(t *testing.T) {
	alloc, err := Allocate(AllocationInput{
		InvoiceAmount: 30_000,
		WalletBalance: 30_000,
		ApplyWallet:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, alloc.Status)
	assert.Equal(t, int64(30_000), alloc.WalletContribution)
	assert.Equal(t, int64(0), alloc.CashContribution)
	assert.Equal(t, int64(0), alloc.NewWalletBalance)
}
