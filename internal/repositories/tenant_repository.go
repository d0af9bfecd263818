package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentora-backend/internal/models"
)

type TenantRepository struct {
	DB *pgxpool.Pool
}

func NewTenantRepository(db *pgxpool.Pool) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) Create(ctx context.Context, t *models.Tenant) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO tenants(name, phone, email, id_number, notes)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.Name, t.Phone, t.Email, t.IDNumber, t.Notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TenantRepository) Get(ctx context.Context, id int) (*models.Tenant, error) {
	var t models.Tenant
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, phone, email, id_number, notes, created_at, updated_at
		 FROM tenants WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.IDNumber, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, phone, email, id_number, notes, created_at, updated_at
		 FROM tenants ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.IDNumber, &t.Notes,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, &t)
	}
	return tenants, rows.Err()
}

// SearchByPhone finds tenants whose phone contains the given digits
func (r *TenantRepository) SearchByPhone(ctx context.Context, phone string) ([]*models.Tenant, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, phone, email, id_number, notes, created_at, updated_at
		 FROM tenants WHERE phone LIKE '%' || $1 || '%' ORDER BY name`, phone,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.IDNumber, &t.Notes,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, &t)
	}
	return tenants, rows.Err()
}

func (r *TenantRepository) Update(ctx context.Context, id int, req *models.CreateTenantRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE tenants SET name = $1, phone = $2, email = $3, id_number = $4, notes = $5,
		        updated_at = NOW()
		 WHERE id = $6`,
		req.Name, req.Phone, req.Email, req.IDNumber, req.Notes, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
