package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/models"
)

type PropertyRepository struct {
	DB *pgxpool.Pool
}

func NewPropertyRepository(db *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *models.Property) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO properties(name, address, notes)
		 VALUES($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Address, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PropertyRepository) Get(ctx context.Context, id int) (*models.Property, error) {
	var p models.Property
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, address, notes, created_at, updated_at
		 FROM properties WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Address, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all properties with unit and occupancy counts
func (r *PropertyRepository) List(ctx context.Context) ([]*models.PropertyWithStats, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.name, p.address, p.notes, p.created_at, p.updated_at,
		        COUNT(u.id) AS unit_count,
		        COUNT(u.id) FILTER (WHERE u.status = 'OCCUPIED') AS occupied_count
		 FROM properties p
		 LEFT JOIN units u ON u.property_id = p.id
		 GROUP BY p.id
		 ORDER BY p.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*models.PropertyWithStats
	for rows.Next() {
		var p models.PropertyWithStats
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Notes, &p.CreatedAt,
			&p.UpdatedAt, &p.UnitCount, &p.OccupiedCount); err != nil {
			return nil, err
		}
		properties = append(properties, &p)
	}
	return properties, rows.Err()
}

func (r *PropertyRepository) Update(ctx context.Context, id int, req *models.CreatePropertyRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE properties SET name = $1, address = $2, notes = $3, updated_at = NOW()
		 WHERE id = $4`,
		req.Name, req.Address, req.Notes, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
