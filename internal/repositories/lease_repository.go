package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/models"
)

type LeaseRepository struct {
	DB *pgxpool.Pool
}

func NewLeaseRepository(db *pgxpool.Pool) *LeaseRepository {
	return &LeaseRepository{DB: db}
}

// Create inserts a lease and marks the unit occupied in one transaction
func (r *LeaseRepository) Create(ctx context.Context, l *models.Lease) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var unitStatus models.UnitStatus
	err = tx.QueryRow(ctx,
		`SELECT status FROM units WHERE id = $1 FOR UPDATE`, l.UnitID,
	).Scan(&unitStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if unitStatus == models.UnitStatusOccupied {
		return fmt.Errorf("unit %d is already occupied", l.UnitID)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO leases(tenant_id, unit_id, rent_amount, start_date, end_date, status, credit_balance)
		 VALUES($1, $2, $3, $4, $5, 'ACTIVE', 0)
		 RETURNING id, status, credit_balance, created_at, updated_at`,
		l.TenantID, l.UnitID, l.RentAmount, l.StartDate, l.EndDate,
	).Scan(&l.ID, &l.Status, &l.CreditBalance, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE units SET status = 'OCCUPIED', updated_at = NOW() WHERE id = $1`, l.UnitID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *LeaseRepository) Get(ctx context.Context, id int) (*models.Lease, error) {
	var l models.Lease
	err := r.DB.QueryRow(ctx,
		`SELECT id, tenant_id, unit_id, rent_amount, start_date, end_date, status,
		        credit_balance, created_at, updated_at
		 FROM leases WHERE id = $1`, id,
	).Scan(&l.ID, &l.TenantID, &l.UnitID, &l.RentAmount, &l.StartDate, &l.EndDate,
		&l.Status, &l.CreditBalance, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all leases with tenant and unit details
func (r *LeaseRepository) List(ctx context.Context) ([]*models.LeaseWithDetails, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT l.id, l.tenant_id, l.unit_id, l.rent_amount, l.start_date, l.end_date,
		        l.status, l.credit_balance, l.created_at, l.updated_at,
		        t.name, t.phone, u.unit_number
		 FROM leases l
		 JOIN tenants t ON t.id = l.tenant_id
		 JOIN units u ON u.id = l.unit_id
		 ORDER BY l.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaseDetails(rows)
}

// ListActive returns the active leases the billing planner runs over
func (r *LeaseRepository) ListActive(ctx context.Context) ([]*models.Lease, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, tenant_id, unit_id, rent_amount, start_date, end_date, status,
		        credit_balance, created_at, updated_at
		 FROM leases WHERE status = 'ACTIVE'`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []*models.Lease
	for rows.Next() {
		var l models.Lease
		if err := rows.Scan(&l.ID, &l.TenantID, &l.UnitID, &l.RentAmount, &l.StartDate,
			&l.EndDate, &l.Status, &l.CreditBalance, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leases = append(leases, &l)
	}
	return leases, rows.Err()
}

// ListByTenant returns all leases (any status) for one tenant
func (r *LeaseRepository) ListByTenant(ctx context.Context, tenantID int) ([]*models.LeaseWithDetails, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT l.id, l.tenant_id, l.unit_id, l.rent_amount, l.start_date, l.end_date,
		        l.status, l.credit_balance, l.created_at, l.updated_at,
		        t.name, t.phone, u.unit_number
		 FROM leases l
		 JOIN tenants t ON t.id = l.tenant_id
		 JOIN units u ON u.id = l.unit_id
		 WHERE l.tenant_id = $1
		 ORDER BY l.created_at DESC`, tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaseDetails(rows)
}

// Terminate flips the lease to TERMINATED and frees the unit. Invoices and
// payments are kept: the financial history survives termination.
func (r *LeaseRepository) Terminate(ctx context.Context, id int, endDate time.Time) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var unitID int
	err = tx.QueryRow(ctx,
		`UPDATE leases SET status = 'TERMINATED', end_date = $1, updated_at = NOW()
		 WHERE id = $2 AND status = 'ACTIVE'
		 RETURNING unit_id`, endDate, id,
	).Scan(&unitID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE units SET status = 'VACANT', updated_at = NOW() WHERE id = $1`, unitID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// WalletTotal sums standing credit across active leases
func (r *LeaseRepository) WalletTotal(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(credit_balance), 0) FROM leases WHERE status = 'ACTIVE'`,
	).Scan(&total)
	return total, err
}

// WalletForUpdate locks the lease row and returns the current wallet
// balance. Must run inside the payment transaction so a concurrent draw
// observes the decremented balance, never a stale one.
func (r *LeaseRepository) WalletForUpdate(ctx context.Context, tx pgx.Tx, id int) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx,
		`SELECT credit_balance FROM leases WHERE id = $1 FOR UPDATE`, id,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return balance, err
}

// SetWalletTx writes the wallet balance inside the payment transaction
func (r *LeaseRepository) SetWalletTx(ctx context.Context, tx pgx.Tx, id int, balance int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE leases SET credit_balance = $1, updated_at = NOW() WHERE id = $2`, balance, id)
	return err
}

func scanLeaseDetails(rows pgx.Rows) ([]*models.LeaseWithDetails, error) {
	var leases []*models.LeaseWithDetails
	for rows.Next() {
		var l models.LeaseWithDetails
		if err := rows.Scan(&l.ID, &l.TenantID, &l.UnitID, &l.RentAmount, &l.StartDate,
			&l.EndDate, &l.Status, &l.CreditBalance, &l.CreatedAt, &l.UpdatedAt,
			&l.TenantName, &l.TenantPhone, &l.UnitNumber); err != nil {
			return nil, err
		}
		leases = append(leases, &l)
	}
	return leases, rows.Err()
}
