package services

import (
	"context"
	"fmt"
	"log"

	"rentora-backend/internal/billing"
	"rentora-backend/internal/cache"
	"rentora-backend/internal/metrics"
	"rentora-backend/internal/models"
	"rentora-backend/internal/repositories"
	"rentora-backend/internal/timeutil"
	"rentora-backend/internal/whatsapp"
)

// BillingService runs the billing cycle: plan which leases need an
// invoice, insert the batch, sweep overdue invoices, and send notices
// when drafts are approved.
type BillingService struct {
	Schedule billing.Schedule
	Leases   *repositories.LeaseRepository
	Invoices *repositories.InvoiceRepository
	Notifier whatsapp.Provider
}

func NewBillingService(
	schedule billing.Schedule,
	leases *repositories.LeaseRepository,
	invoices *repositories.InvoiceRepository,
	notifier whatsapp.Provider,
) *BillingService {
	return &BillingService{
		Schedule: schedule,
		Leases:   leases,
		Invoices: invoices,
		Notifier: notifier,
	}
}

// GenerateInvoices is the cron entry point. It is idempotent: a second
// run on the same day sees the first run's invoices in the lookback set
// and plans nothing.
func (s *BillingService) GenerateInvoices(ctx context.Context) (*models.GenerateResult, error) {
	today := timeutil.Today()

	// Overdue sweep first, so the run leaves every status consistent
	// with today's date
	swept, err := s.Invoices.MarkOverdue(ctx, today)
	if err != nil {
		metrics.BillingRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("overdue sweep failed: %w", err)
	}
	if swept > 0 {
		metrics.InvoicesOverdueSwept.Add(float64(swept))
		log.Printf("[Billing] Marked %d invoices overdue", swept)
	}

	leases, err := s.Leases.ListActive(ctx)
	if err != nil {
		metrics.BillingRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load active leases: %w", err)
	}
	if len(leases) == 0 {
		metrics.BillingRunsTotal.WithLabelValues("empty").Inc()
		return &models.GenerateResult{Success: true, Message: "No active leases found."}, nil
	}

	issued, err := s.Invoices.ListIssuedSince(ctx, s.Schedule.LookbackStart(today))
	if err != nil {
		metrics.BillingRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load recent invoices: %w", err)
	}

	toBill := make([]billing.LeaseToBill, 0, len(leases))
	for _, l := range leases {
		toBill = append(toBill, billing.LeaseToBill{
			LeaseID:    l.ID,
			RentAmount: l.RentAmount,
			StartDate:  l.StartDate,
		})
	}

	planned := s.Schedule.Plan(today, toBill, issued)
	skipped := len(leases) - len(planned)
	if len(planned) == 0 {
		metrics.BillingRunsTotal.WithLabelValues("empty").Inc()
		return &models.GenerateResult{
			Success: true,
			Skipped: skipped,
			Message: fmt.Sprintf("No invoices due in the next %d days.", s.Schedule.WindowDays),
		}, nil
	}

	// Whole batch or nothing; the operator re-triggers on failure
	if err := s.Invoices.InsertBatch(ctx, planned); err != nil {
		metrics.BillingRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("invoice batch insert failed: %w", err)
	}

	cache.InvalidateBillingCaches(ctx)
	metrics.BillingRunsTotal.WithLabelValues("ok").Inc()
	metrics.InvoicesGeneratedTotal.Add(float64(len(planned)))
	log.Printf("[Billing] Generated %d invoices (%d leases skipped)", len(planned), skipped)

	return &models.GenerateResult{
		Success:   true,
		Generated: len(planned),
		Skipped:   skipped,
		Message:   fmt.Sprintf("Generated %d invoices due this week.", len(planned)),
	}, nil
}

// ApproveAndSend marks draft invoices PENDING and sends a WhatsApp notice
// for each. Send failures are recorded on the invoice and do not fail the
// approval.
func (s *BillingService) ApproveAndSend(ctx context.Context, invoiceIDs []int) error {
	if len(invoiceIDs) == 0 {
		return nil
	}

	if err := s.Invoices.MarkPending(ctx, invoiceIDs); err != nil {
		return fmt.Errorf("failed to approve invoices: %w", err)
	}

	for _, id := range invoiceIDs {
		inv, err := s.Invoices.GetWithDetails(ctx, id)
		if err != nil {
			log.Printf("[Billing] Skipping notice for invoice %d: %v", id, err)
			continue
		}
		s.sendInvoiceNotice(ctx, inv)
	}
	return nil
}

func (s *BillingService) sendInvoiceNotice(ctx context.Context, inv *models.InvoiceWithDetails) {
	if s.Notifier == nil {
		return
	}

	phone := whatsapp.FormatRwandaNumber(inv.TenantPhone)
	if !whatsapp.Sendable(phone) {
		log.Printf("[Billing] Invoice %d: tenant phone %q not sendable", inv.ID, inv.TenantPhone)
		return
	}

	text := fmt.Sprintf(
		"*INVOICE*\nHello %s,\nRent for Unit %s.\nAmount: %s RWF\nDue: %s\nPay via MoMo. Thanks!",
		inv.TenantName, inv.UnitNumber,
		FormatRWF(inv.Amount),
		inv.DueDate.Format(timeutil.DisplayLayout),
	)

	messageID, err := s.Notifier.SendMessage(phone, text)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("invoice", "failed").Inc()
		log.Printf("[Billing] Invoice %d notice failed: %v", inv.ID, err)
		if dbErr := s.Invoices.SetDeliveryResult(ctx, inv.ID, false, "", "FAILED"); dbErr != nil {
			log.Printf("[Billing] Invoice %d: failed to record send failure: %v", inv.ID, dbErr)
		}
		return
	}

	metrics.NotificationsTotal.WithLabelValues("invoice", "sent").Inc()
	if err := s.Invoices.SetDeliveryResult(ctx, inv.ID, true, messageID, "SENT"); err != nil {
		log.Printf("[Billing] Invoice %d: failed to record message id: %v", inv.ID, err)
	}
}

// ApplyDeliveryStatus handles a gateway delivery callback. Display-only:
// no business logic depends on it.
func (s *BillingService) ApplyDeliveryStatus(ctx context.Context, messageID, status string) error {
	return s.Invoices.SetDeliveryStatusByMessageID(ctx, messageID, status)
}

// FormatRWF renders an amount with thousands separators for messages
func FormatRWF(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	neg := false
	if digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}
	var out []byte
	for i, c := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
