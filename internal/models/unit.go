package models

import "time"

// UnitStatus represents the occupancy state of a unit
type UnitStatus string

const (
	UnitStatusVacant   UnitStatus = "VACANT"
	UnitStatusOccupied UnitStatus = "OCCUPIED"
)

// Unit represents a single rentable unit inside a property
type Unit struct {
	ID         int        `json:"id"`
	PropertyID int        `json:"property_id"`
	UnitNumber string     `json:"unit_number"`
	RentAmount int64      `json:"rent_amount"` // RWF
	Status     UnitStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateUnitRequest represents the request to add a unit to a property
type CreateUnitRequest struct {
	PropertyID int    `json:"property_id"`
	UnitNumber string `json:"unit_number"`
	RentAmount int64  `json:"rent_amount"`
}

// UnitWithProperty includes the property name for list views
type UnitWithProperty struct {
	Unit
	PropertyName string `json:"property_name"`
}
