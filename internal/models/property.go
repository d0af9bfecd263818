package models

import "time"

// Property represents a building or estate containing rentable units
type Property struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePropertyRequest represents the request to register a property
type CreatePropertyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// PropertyWithStats includes unit occupancy counts for list views
type PropertyWithStats struct {
	Property
	UnitCount     int `json:"unit_count"`
	OccupiedCount int `json:"occupied_count"`
}
