package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// InsertTx writes one immutable ledger row inside the payment transaction
func (r *PaymentRepository) InsertTx(ctx context.Context, tx pgx.Tx, p *models.Payment) error {
	return tx.QueryRow(ctx,
		`INSERT INTO payments(invoice_id, lease_id, amount, method, notes, payment_date)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		p.InvoiceID, p.LeaseID, p.Amount, p.Method, p.Notes, p.PaymentDate,
	).Scan(&p.ID, &p.CreatedAt)
}

// ListByInvoice returns the allocation history of one invoice
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_id, lease_id, amount, method, notes, payment_date, created_at
		 FROM payments WHERE invoice_id = $1 ORDER BY payment_date, id`, invoiceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

// ListByLease returns all payments recorded against one lease
func (r *PaymentRepository) ListByLease(ctx context.Context, leaseID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_id, lease_id, amount, method, notes, payment_date, created_at
		 FROM payments WHERE lease_id = $1 ORDER BY payment_date DESC, id DESC`, leaseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

// ListByTenant returns all payments across a tenant's leases
func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.invoice_id, p.lease_id, p.amount, p.method, p.notes,
		        p.payment_date, p.created_at
		 FROM payments p
		 JOIN leases l ON l.id = p.lease_id
		 WHERE l.tenant_id = $1 ORDER BY p.payment_date DESC, p.id DESC`, tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

// CollectedBetween sums non-wallet payments in a period. WALLET rows are
// excluded: they move existing credit, not new money.
func (r *PaymentRepository) CollectedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments
		 WHERE method <> 'WALLET' AND payment_date >= $1 AND payment_date < $2`,
		from, to,
	).Scan(&total)
	return total, err
}

// ListBetweenWithTenant returns a period's payments with tenant and unit
// details, for the collections report
func (r *PaymentRepository) ListBetweenWithTenant(ctx context.Context, from, to time.Time) ([]*models.PaymentWithTenant, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.invoice_id, p.lease_id, p.amount, p.method, p.notes,
		        p.payment_date, p.created_at, t.name, u.unit_number
		 FROM payments p
		 JOIN leases l ON l.id = p.lease_id
		 JOIN tenants t ON t.id = l.tenant_id
		 JOIN units u ON u.id = l.unit_id
		 WHERE p.payment_date >= $1 AND p.payment_date < $2
		 ORDER BY p.payment_date, p.id`, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.PaymentWithTenant
	for rows.Next() {
		var p models.PaymentWithTenant
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.LeaseID, &p.Amount, &p.Method,
			&p.Notes, &p.PaymentDate, &p.CreatedAt, &p.TenantName, &p.UnitNumber); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

func scanPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.LeaseID, &p.Amount, &p.Method,
			&p.Notes, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
