package dto

import "time"

// CreateNotificationRequest body para POST /api/notifications (ADMIN/MANAGER).
type CreateNotificationRequest struct {
	UserID  string `json:"userId"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Link    string `json:"link,omitempty"`
}

// NotificationResponse notificación serializada.
type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse listado con contador de no leídas.
type NotificationListResponse struct {
	Data        []NotificationResponse `json:"data"`
	Total       int                    `json:"total"`
	UnreadCount int                    `json:"unreadCount"`
	Page        int                    `json:"page"`
	PageSize    int                    `json:"pageSize"`
	TotalPages  int                    `json:"totalPages"`
}

// ActivityResponse entrada del log de actividad serializada.
type ActivityResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Details    string    `json:"details,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
