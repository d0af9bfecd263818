package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"rentora-backend/internal/archive"
	"rentora-backend/internal/cache"
	"rentora-backend/internal/models"
	"rentora-backend/internal/repositories"
	"rentora-backend/internal/timeutil"
)

// ReportService builds the dashboard summary, tenant statements and the
// monthly collections archive.
type ReportService struct {
	Units    *repositories.UnitRepository
	Tenants  *repositories.TenantRepository
	Leases   *repositories.LeaseRepository
	Invoices *repositories.InvoiceRepository
	Payments *repositories.PaymentRepository
	Archive  *archive.Uploader
}

func NewReportService(
	units *repositories.UnitRepository,
	tenants *repositories.TenantRepository,
	leases *repositories.LeaseRepository,
	invoices *repositories.InvoiceRepository,
	payments *repositories.PaymentRepository,
	uploader *archive.Uploader,
) *ReportService {
	return &ReportService{
		Units:    units,
		Tenants:  tenants,
		Leases:   leases,
		Invoices: invoices,
		Payments: payments,
		Archive:  uploader,
	}
}

// Summary returns the month-to-date overview. Cached for 5 minutes;
// payment and billing writes invalidate the key.
func (s *ReportService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	if data, ok := cache.GetCached(ctx, cache.SummaryKey); ok {
		var cached models.DashboardSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	now := timeutil.Now()
	monthStart := timeutil.StartOfMonth(now)
	nextMonth := monthStart.AddDate(0, 1, 0)

	summary := &models.DashboardSummary{GeneratedAt: now}

	var err error
	summary.UnitsTotal, summary.UnitsOccupied, err = s.Units.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("unit counts: %w", err)
	}
	summary.BilledMonth, err = s.Invoices.BilledBetween(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("billed total: %w", err)
	}
	summary.CollectedMonth, err = s.Payments.CollectedBetween(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, fmt.Errorf("collected total: %w", err)
	}
	summary.Outstanding, err = s.Invoices.OutstandingTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("outstanding total: %w", err)
	}
	summary.WalletTotal, err = s.Leases.WalletTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet total: %w", err)
	}

	if data, err := json.Marshal(summary); err == nil {
		cache.SetCached(ctx, cache.SummaryKey, data, 5*time.Minute)
	}
	return summary, nil
}

// Statement assembles one tenant's full billing history across all their
// leases, active or terminated. Cached for 5 minutes; payment, billing
// and lease writes invalidate the whole statement prefix.
func (s *ReportService) Statement(ctx context.Context, tenantID int) (*models.TenantStatement, error) {
	cacheKey := cache.StatementKeyFmt + strconv.Itoa(tenantID)
	if data, ok := cache.GetCached(ctx, cacheKey); ok {
		var cached models.TenantStatement
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	tenant, err := s.Tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	leases, err := s.Leases.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant leases: %w", err)
	}
	invoices, err := s.Invoices.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant invoices: %w", err)
	}
	payments, err := s.Payments.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant payments: %w", err)
	}

	stmt := &models.TenantStatement{
		Tenant:   *tenant,
		Invoices: invoices,
		Payments: payments,
	}
	for _, l := range leases {
		if l.Status == models.LeaseStatusActive {
			stmt.WalletBalance += l.CreditBalance
		}
	}
	for _, inv := range invoices {
		stmt.TotalBilled += inv.Amount
		stmt.Outstanding += inv.AmountDue()
	}
	for _, p := range payments {
		// Wallet rows move existing credit, not new money
		if p.Method != models.PaymentMethodWallet {
			stmt.TotalPaid += p.Amount
		}
	}

	if data, err := json.Marshal(stmt); err == nil {
		cache.SetCached(ctx, cacheKey, data, 5*time.Minute)
	}
	return stmt, nil
}

// CollectionsCSV renders the given month's payments as CSV
func (s *ReportService) CollectionsCSV(ctx context.Context, month time.Time) ([]byte, error) {
	from := timeutil.StartOfMonth(month)
	to := from.AddDate(0, 1, 0)

	payments, err := s.Payments.ListBetweenWithTenant(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("collections query: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"date", "tenant", "unit", "invoice_id", "method", "amount_rwf", "notes"})
	for _, p := range payments {
		w.Write([]string{
			p.PaymentDate.Format(timeutil.DateLayout),
			p.TenantName,
			p.UnitNumber,
			strconv.Itoa(p.InvoiceID),
			string(p.Method),
			strconv.FormatInt(p.Amount, 10),
			p.Notes,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ArchiveMonth uploads the previous month's collections CSV to R2.
// No-op when the archive is not configured.
func (s *ReportService) ArchiveMonth(ctx context.Context, month time.Time) error {
	if s.Archive == nil {
		log.Printf("[Reports] Archive not configured, skipping upload")
		return nil
	}

	data, err := s.CollectionsCSV(ctx, month)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("collections-%s.csv", timeutil.StartOfMonth(month).Format("2006-01"))
	return s.Archive.Upload(ctx, key, "text/csv", data)
}
