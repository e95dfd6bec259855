package entity

import "time"

// Warehouse representa una bodega física.
type Warehouse struct {
	ID        string
	Code      string // código único de negocio
	Name      string
	Address   string
	Contact   string
	Phone     string
	ManagerID string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
