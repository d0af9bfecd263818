package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/billing"
	"rentora-backend/internal/cache"
	"rentora-backend/internal/metrics"
	"rentora-backend/internal/models"
	"rentora-backend/internal/repositories"
	"rentora-backend/internal/timeutil"
	"rentora-backend/internal/whatsapp"
)

// PaymentService records payments against invoices. The whole allocation
// (wallet draw, ledger rows, invoice update, overflow credit) runs in one
// database transaction with the invoice and lease rows locked, so two
// concurrent payments against the same wallet are serialized and the
// second always sees the balance the first left behind.
// Request validation errors, mapped to HTTP 400 by the handler
var (
	ErrMissingInvoiceID = errors.New("missing invoice id")
	ErrWalletNotTender  = errors.New("WALLET rows are written by the allocator, pick the tendered method")
)

type PaymentService struct {
	Pool     *pgxpool.Pool
	Invoices *repositories.InvoiceRepository
	Leases   *repositories.LeaseRepository
	Payments *repositories.PaymentRepository
	Notifier whatsapp.Provider
}

func NewPaymentService(
	pool *pgxpool.Pool,
	invoices *repositories.InvoiceRepository,
	leases *repositories.LeaseRepository,
	payments *repositories.PaymentRepository,
	notifier whatsapp.Provider,
) *PaymentService {
	return &PaymentService{
		Pool:     pool,
		Invoices: invoices,
		Leases:   leases,
		Payments: payments,
		Notifier: notifier,
	}
}

// RecordPayment allocates one incoming payment. Financial effects are
// committed atomically; the receipt notice afterwards is best-effort and
// never rolls the payment back.
func (s *PaymentService) RecordPayment(ctx context.Context, req *models.RecordPaymentRequest) (*models.RecordPaymentResult, error) {
	if req.InvoiceID == 0 {
		return nil, ErrMissingInvoiceID
	}
	method := req.Method
	if method == "" {
		method = models.PaymentMethodMomo
	}
	if method == models.PaymentMethodWallet {
		return nil, ErrWalletNotTender
	}

	// Details fetched up front for the receipt; balances are re-read under
	// lock inside the transaction
	details, err := s.Invoices.GetWithDetails(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inv, err := s.Invoices.GetForUpdate(ctx, tx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	wallet, err := s.Leases.WalletForUpdate(ctx, tx, inv.LeaseID)
	if err != nil {
		return nil, err
	}

	alloc, err := billing.Allocate(billing.AllocationInput{
		InvoiceAmount: inv.Amount,
		AmountPaid:    inv.AmountPaid,
		WalletBalance: wallet,
		CashAmount:    req.Amount,
		ApplyWallet:   req.UseWallet,
	})
	if err != nil {
		return nil, err
	}

	// One ledger row per allocation source, WALLET draw first
	if alloc.WalletContribution > 0 {
		walletRow := &models.Payment{
			InvoiceID:   inv.ID,
			LeaseID:     inv.LeaseID,
			Amount:      alloc.WalletContribution,
			Method:      models.PaymentMethodWallet,
			Notes:       "Applied from credit balance",
			PaymentDate: now,
		}
		if err := s.Payments.InsertTx(ctx, tx, walletRow); err != nil {
			return nil, fmt.Errorf("failed to record wallet draw: %w", err)
		}
	}
	if alloc.CashContribution > 0 {
		cashRow := &models.Payment{
			InvoiceID:   inv.ID,
			LeaseID:     inv.LeaseID,
			Amount:      alloc.CashContribution,
			Method:      method,
			Notes:       req.Notes,
			PaymentDate: now,
		}
		if err := s.Payments.InsertTx(ctx, tx, cashRow); err != nil {
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}
	}

	if err := s.Invoices.ApplyPaymentTx(ctx, tx, inv.ID, alloc.Status, alloc.AppliedToInvoice, now); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	if alloc.NewWalletBalance != wallet {
		if err := s.Leases.SetWalletTx(ctx, tx, inv.LeaseID, alloc.NewWalletBalance); err != nil {
			return nil, fmt.Errorf("failed to update wallet: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	cache.InvalidateBillingCaches(ctx)

	if alloc.WalletContribution > 0 {
		metrics.PaymentsRecordedTotal.WithLabelValues(string(models.PaymentMethodWallet)).Inc()
	}
	if alloc.CashContribution > 0 {
		metrics.PaymentsRecordedTotal.WithLabelValues(string(method)).Inc()
	}
	log.Printf("[Payment] Invoice %d: applied %d RWF (wallet %d, cash %d), status %s",
		inv.ID, alloc.AppliedToInvoice, alloc.WalletContribution, alloc.CashContribution, alloc.Status)

	s.sendReceipt(details, alloc, now)

	message := "Payment recorded successfully."
	if alloc.CreditToWallet > 0 {
		message = fmt.Sprintf("Paid! %s RWF added to wallet.", FormatRWF(alloc.CreditToWallet))
	}
	return &models.RecordPaymentResult{
		Success:        true,
		Status:         alloc.Status,
		AmountApplied:  alloc.AppliedToInvoice,
		WalletUsed:     alloc.WalletContribution,
		CreditToWallet: alloc.CreditToWallet,
		NewWallet:      alloc.NewWalletBalance,
		Message:        message,
	}, nil
}

// ListByInvoice returns the allocation history of one invoice
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.Payment, error) {
	return s.Payments.ListByInvoice(ctx, invoiceID)
}

// ListByLease returns all payments recorded against one lease
func (s *PaymentService) ListByLease(ctx context.Context, leaseID int) ([]*models.Payment, error) {
	return s.Payments.ListByLease(ctx, leaseID)
}

func (s *PaymentService) sendReceipt(details *models.InvoiceWithDetails, alloc billing.Allocation, now time.Time) {
	if s.Notifier == nil {
		return
	}
	phone := whatsapp.FormatRwandaNumber(details.TenantPhone)
	if !whatsapp.Sendable(phone) {
		return
	}

	text := fmt.Sprintf(
		"*PAYMENT RECEIPT*\nHello %s,\nPayment received for Unit %s.\n\nAmount: %s RWF\nDate: %s\nStatus: %s\n",
		details.TenantName, details.UnitNumber,
		FormatRWF(alloc.TotalPayment),
		now.Format(timeutil.DisplayLayout),
		alloc.Status,
	)
	if alloc.CreditToWallet > 0 {
		text += fmt.Sprintf("Wallet Credit: %s RWF added.\n", FormatRWF(alloc.CreditToWallet))
	}
	text += "\nThank you!"

	if _, err := s.Notifier.SendMessage(phone, text); err != nil {
		metrics.NotificationsTotal.WithLabelValues("receipt", "failed").Inc()
		log.Printf("[Payment] Receipt for invoice %d failed: %v", details.ID, err)
		return
	}
	metrics.NotificationsTotal.WithLabelValues("receipt", "sent").Inc()
}
