package repository

import "github.com/tu-usuario/erp-pro/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	GetByID(id string) (*entity.Notification, error)
	ListByUser(userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountByUser(userID string, unreadOnly bool) (int, error)
	MarkRead(id string) error
	Delete(id string) error
}

// ActivityRepository define el puerto del log de actividad (append-only).
type ActivityRepository interface {
	Create(a *entity.Activity) error
	List(entityType, userID string, limit, offset int) ([]*entity.Activity, error)
	Count(entityType, userID string) (int, error)
}
