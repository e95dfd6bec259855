package entity

import "time"

// Notification representa una notificación dirigida a un usuario.
type Notification struct {
	ID        string
	UserID    string
	Type      string // INFO, WARNING, ORDER, STOCK, SYSTEM...
	Title     string
	Content   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}
