package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/models"
)

type UnitRepository struct {
	DB *pgxpool.Pool
}

func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{DB: db}
}

func (r *UnitRepository) Create(ctx context.Context, u *models.Unit) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO units(property_id, unit_number, rent_amount, status)
		 VALUES($1, $2, $3, 'VACANT')
		 RETURNING id, status, created_at, updated_at`,
		u.PropertyID, u.UnitNumber, u.RentAmount,
	).Scan(&u.ID, &u.Status, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UnitRepository) Get(ctx context.Context, id int) (*models.Unit, error) {
	var u models.Unit
	err := r.DB.QueryRow(ctx,
		`SELECT id, property_id, unit_number, rent_amount, status, created_at, updated_at
		 FROM units WHERE id = $1`, id,
	).Scan(&u.ID, &u.PropertyID, &u.UnitNumber, &u.RentAmount, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all units, optionally filtered by property
func (r *UnitRepository) List(ctx context.Context, propertyID int) ([]*models.UnitWithProperty, error) {
	query := `SELECT u.id, u.property_id, u.unit_number, u.rent_amount, u.status,
	                 u.created_at, u.updated_at, p.name
	          FROM units u
	          JOIN properties p ON p.id = u.property_id`
	args := []interface{}{}
	if propertyID > 0 {
		query += ` WHERE u.property_id = $1`
		args = append(args, propertyID)
	}
	query += ` ORDER BY p.name, u.unit_number`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.UnitWithProperty
	for rows.Next() {
		var u models.UnitWithProperty
		if err := rows.Scan(&u.ID, &u.PropertyID, &u.UnitNumber, &u.RentAmount, &u.Status,
			&u.CreatedAt, &u.UpdatedAt, &u.PropertyName); err != nil {
			return nil, err
		}
		units = append(units, &u)
	}
	return units, rows.Err()
}

func (r *UnitRepository) Update(ctx context.Context, id int, req *models.CreateUnitRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE units SET unit_number = $1, rent_amount = $2, updated_at = NOW()
		 WHERE id = $3`,
		req.UnitNumber, req.RentAmount, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns total and occupied unit counts for the dashboard
func (r *UnitRepository) CountByStatus(ctx context.Context) (total, occupied int, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'OCCUPIED') FROM units`,
	).Scan(&total, &occupied)
	return total, occupied, err
}

// SetStatusTx flips a unit's occupancy inside a lease transaction
func (r *UnitRepository) SetStatusTx(ctx context.Context, tx pgx.Tx, id int, status models.UnitStatus) error {
	tag, err := tx.Exec(ctx,
		`UPDATE units SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
