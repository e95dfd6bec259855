package entity

import "time"

// Activity es una entrada del log de actividad: quién hizo qué sobre qué entidad.
// Append-only.
type Activity struct {
	ID         string
	UserID     string
	Action     string // CREATE, UPDATE, DELETE, LOGIN...
	EntityType string // ORDER, PRODUCT, INVENTORY...
	EntityID   string
	Details    string
	IPAddress  string
	CreatedAt  time.Time
}
