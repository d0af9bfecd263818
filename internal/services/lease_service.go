package services

import (
	"context"
	"fmt"

	"rentora-backend/internal/cache"
	"rentora-backend/internal/models"
	"rentora-backend/internal/repositories"
	"rentora-backend/internal/timeutil"
)

// LeaseService validates and executes lease lifecycle changes
type LeaseService struct {
	Tenants *repositories.TenantRepository
	Units   *repositories.UnitRepository
	Leases  *repositories.LeaseRepository
}

func NewLeaseService(
	tenants *repositories.TenantRepository,
	units *repositories.UnitRepository,
	leases *repositories.LeaseRepository,
) *LeaseService {
	return &LeaseService{Tenants: tenants, Units: units, Leases: leases}
}

// Create signs a tenant onto a unit. Rent defaults to the unit's listed
// rent when the request leaves it zero. The repository transaction locks
// the unit row, so two concurrent signings cannot share a unit.
func (s *LeaseService) Create(ctx context.Context, req *models.CreateLeaseRequest) (*models.Lease, error) {
	if req.TenantID <= 0 || req.UnitID <= 0 {
		return nil, fmt.Errorf("tenant_id and unit_id are required")
	}
	if req.RentAmount < 0 {
		return nil, fmt.Errorf("rent_amount cannot be negative")
	}

	if _, err := s.Tenants.Get(ctx, req.TenantID); err != nil {
		return nil, err
	}
	unit, err := s.Units.Get(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}

	startDate, err := timeutil.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}

	lease := &models.Lease{
		TenantID:   req.TenantID,
		UnitID:     req.UnitID,
		RentAmount: req.RentAmount,
		StartDate:  startDate,
	}
	if lease.RentAmount == 0 {
		lease.RentAmount = unit.RentAmount
	}
	if req.EndDate != "" {
		endDate, err := timeutil.ParseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("end_date cannot be before start_date")
		}
		lease.EndDate = &endDate
	}

	if err := s.Leases.Create(ctx, lease); err != nil {
		return nil, err
	}

	cache.InvalidateBillingCaches(ctx)
	return lease, nil
}

// Terminate ends a lease and frees its unit. The lease row and its
// financial history stay in place.
func (s *LeaseService) Terminate(ctx context.Context, id int) error {
	if err := s.Leases.Terminate(ctx, id, timeutil.Today()); err != nil {
		return err
	}
	cache.InvalidateBillingCaches(ctx)
	return nil
}
