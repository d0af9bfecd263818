package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/billing"
	"rentora-backend/internal/models"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// InsertBatch writes the planner's output in one transaction: either the
// whole billing run lands or none of it does.
func (r *InvoiceRepository) InsertBatch(ctx context.Context, planned []billing.PlannedInvoice) error {
	if len(planned) == 0 {
		return nil
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range planned {
		if _, err := tx.Exec(ctx,
			`INSERT INTO invoices(lease_id, amount, amount_paid, due_date, status)
			 VALUES($1, $2, 0, $3, $4)`,
			p.LeaseID, p.Amount, p.DueDate, p.Status,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListIssuedSince returns (lease_id, due_date) pairs for invoices created
// within the duplicate-detection lookback window
func (r *InvoiceRepository) ListIssuedSince(ctx context.Context, since time.Time) ([]billing.IssuedInvoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT lease_id, due_date FROM invoices WHERE created_at >= $1`, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issued []billing.IssuedInvoice
	for rows.Next() {
		var inv billing.IssuedInvoice
		if err := rows.Scan(&inv.LeaseID, &inv.DueDate); err != nil {
			return nil, err
		}
		issued = append(issued, inv)
	}
	return issued, rows.Err()
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.QueryRow(ctx,
		`SELECT id, lease_id, amount, amount_paid, due_date, status, whatsapp_sent,
		        COALESCE(whatsapp_message_id, ''), COALESCE(delivery_status, ''),
		        payment_date, created_at, updated_at
		 FROM invoices WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.LeaseID, &inv.Amount, &inv.AmountPaid, &inv.DueDate, &inv.Status,
		&inv.WhatsappSent, &inv.WhatsappMessageID, &inv.DeliveryStatus,
		&inv.PaymentDate, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetWithDetails joins tenant and unit details for notices and receipts
func (r *InvoiceRepository) GetWithDetails(ctx context.Context, id int) (*models.InvoiceWithDetails, error) {
	var inv models.InvoiceWithDetails
	err := r.DB.QueryRow(ctx,
		`SELECT i.id, i.lease_id, i.amount, i.amount_paid, i.due_date, i.status,
		        i.whatsapp_sent, COALESCE(i.whatsapp_message_id, ''),
		        COALESCE(i.delivery_status, ''), i.payment_date, i.created_at, i.updated_at,
		        t.name, t.phone, u.unit_number
		 FROM invoices i
		 JOIN leases l ON l.id = i.lease_id
		 JOIN tenants t ON t.id = l.tenant_id
		 JOIN units u ON u.id = l.unit_id
		 WHERE i.id = $1`, id,
	).Scan(&inv.ID, &inv.LeaseID, &inv.Amount, &inv.AmountPaid, &inv.DueDate, &inv.Status,
		&inv.WhatsappSent, &inv.WhatsappMessageID, &inv.DeliveryStatus,
		&inv.PaymentDate, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.TenantName, &inv.TenantPhone, &inv.UnitNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// List returns invoices with details, optionally filtered by status
func (r *InvoiceRepository) List(ctx context.Context, status models.InvoiceStatus) ([]*models.InvoiceWithDetails, error) {
	query := `SELECT i.id, i.lease_id, i.amount, i.amount_paid, i.due_date, i.status,
	                 i.whatsapp_sent, COALESCE(i.whatsapp_message_id, ''),
	                 COALESCE(i.delivery_status, ''), i.payment_date, i.created_at, i.updated_at,
	                 t.name, t.phone, u.unit_number
	          FROM invoices i
	          JOIN leases l ON l.id = i.lease_id
	          JOIN tenants t ON t.id = l.tenant_id
	          JOIN units u ON u.id = l.unit_id`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE i.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY i.due_date DESC, i.id DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.InvoiceWithDetails
	for rows.Next() {
		var inv models.InvoiceWithDetails
		if err := rows.Scan(&inv.ID, &inv.LeaseID, &inv.Amount, &inv.AmountPaid, &inv.DueDate,
			&inv.Status, &inv.WhatsappSent, &inv.WhatsappMessageID, &inv.DeliveryStatus,
			&inv.PaymentDate, &inv.CreatedAt, &inv.UpdatedAt,
			&inv.TenantName, &inv.TenantPhone, &inv.UnitNumber); err != nil {
			return nil, err
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}

// ListByLease returns all invoices for one lease
func (r *InvoiceRepository) ListByLease(ctx context.Context, leaseID int) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, lease_id, amount, amount_paid, due_date, status, whatsapp_sent,
		        COALESCE(whatsapp_message_id, ''), COALESCE(delivery_status, ''),
		        payment_date, created_at, updated_at
		 FROM invoices WHERE lease_id = $1 ORDER BY due_date DESC`, leaseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoices(rows)
}

// ListByTenant returns all invoices across a tenant's leases
func (r *InvoiceRepository) ListByTenant(ctx context.Context, tenantID int) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.lease_id, i.amount, i.amount_paid, i.due_date, i.status, i.whatsapp_sent,
		        COALESCE(i.whatsapp_message_id, ''), COALESCE(i.delivery_status, ''),
		        i.payment_date, i.created_at, i.updated_at
		 FROM invoices i
		 JOIN leases l ON l.id = i.lease_id
		 WHERE l.tenant_id = $1 ORDER BY i.due_date DESC`, tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInvoices(rows)
}

// MarkPending moves draft invoices to PENDING ahead of sending notices
func (r *InvoiceRepository) MarkPending(ctx context.Context, ids []int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status = 'PENDING', updated_at = NOW()
		 WHERE id = ANY($1) AND status = 'DRAFT'`, ids)
	return err
}

// MarkOverdue flips PENDING invoices past their due date to OVERDUE.
// Idempotent: invoices already OVERDUE are untouched. Returns the number
// of rows flipped.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, today time.Time) (int, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status = 'OVERDUE', updated_at = NOW()
		 WHERE status = 'PENDING' AND due_date < $1`, today)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// BilledBetween sums invoice amounts due in a period
func (r *InvoiceRepository) BilledBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM invoices
		 WHERE due_date >= $1 AND due_date < $2`, from, to,
	).Scan(&total)
	return total, err
}

// OutstandingTotal sums unpaid balances across unsettled invoices
func (r *InvoiceRepository) OutstandingTotal(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount - amount_paid), 0) FROM invoices
		 WHERE status IN ('PENDING', 'OVERDUE', 'PARTIAL')`,
	).Scan(&total)
	return total, err
}

// SetDeliveryResult records the outcome of a WhatsApp send
func (r *InvoiceRepository) SetDeliveryResult(ctx context.Context, id int, sent bool, messageID, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices SET whatsapp_sent = $1, whatsapp_message_id = $2,
		        delivery_status = $3, updated_at = NOW()
		 WHERE id = $4`, sent, messageID, status, id)
	return err
}

// SetDeliveryStatusByMessageID applies a webhook delivery callback
func (r *InvoiceRepository) SetDeliveryStatusByMessageID(ctx context.Context, messageID, status string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET delivery_status = $1, updated_at = NOW()
		 WHERE whatsapp_message_id = $2`, status, messageID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetForUpdate locks the invoice row inside the payment transaction
func (r *InvoiceRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int) (*models.Invoice, error) {
	var inv models.Invoice
	err := tx.QueryRow(ctx,
		`SELECT id, lease_id, amount, amount_paid, due_date, status, whatsapp_sent,
		        COALESCE(whatsapp_message_id, ''), COALESCE(delivery_status, ''),
		        payment_date, created_at, updated_at
		 FROM invoices WHERE id = $1 FOR UPDATE`, id,
	).Scan(&inv.ID, &inv.LeaseID, &inv.Amount, &inv.AmountPaid, &inv.DueDate, &inv.Status,
		&inv.WhatsappSent, &inv.WhatsappMessageID, &inv.DeliveryStatus,
		&inv.PaymentDate, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ApplyPaymentTx updates status and amount_paid inside the payment transaction
func (r *InvoiceRepository) ApplyPaymentTx(ctx context.Context, tx pgx.Tx, id int, status models.InvoiceStatus, applied int64, paidAt time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE invoices SET status = $1, amount_paid = amount_paid + $2,
		        payment_date = $3, updated_at = NOW()
		 WHERE id = $4`, status, applied, paidAt, id)
	return err
}

func scanInvoices(rows pgx.Rows) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.LeaseID, &inv.Amount, &inv.AmountPaid, &inv.DueDate,
			&inv.Status, &inv.WhatsappSent, &inv.WhatsappMessageID, &inv.DeliveryStatus,
			&inv.PaymentDate, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}
