package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

var (
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ repository.ActivityRepository     = (*ActivityRepo)(nil)
)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, content, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.UserID, n.Type, n.Title, n.Content, n.Link, n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(id string) (*entity.Notification, error) {
	var n entity.Notification
	err := r.q.QueryRow(context.Background(), `
		SELECT id, user_id, type, title, content, link, is_read, created_at
		FROM notifications WHERE id = $1`, id).Scan(
		&n.ID, &n.UserID, &n.Type, &n.Title, &n.Content, &n.Link, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return &n, nil
}

// ListByUser lista notificaciones de un usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, type, title, content, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Content, &n.Link, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CountByUser cuenta notificaciones para el mismo filtro de ListByUser.
func (r *NotificationRepo) CountByUser(userID string, unreadOnly bool) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM notifications
		WHERE user_id = $1 AND ($2 = false OR is_read = false)`, userID, unreadOnly).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return total, nil
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// Delete elimina una notificación por ID.
func (r *NotificationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

// ActivityRepo implementación del log de actividad sobre PostgreSQL. Append-only.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador del log de actividad.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create anota una entrada en el log.
func (r *ActivityRepo) Create(a *entity.Activity) error {
	query := `
		INSERT INTO activities (id, user_id, action, entity_type, entity_id, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.UserID, a.Action, a.EntityType, a.EntityID, a.Details, a.IPAddress, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List lista entradas del log con filtros opcionales, más recientes primero.
func (r *ActivityRepo) List(entityType, userID string, limit, offset int) ([]*entity.Activity, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, details, ip_address, created_at
		FROM activities
		WHERE ($1 = '' OR entity_type = $1) AND ($2 = '' OR user_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, entityType, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.EntityType, &a.EntityID,
			&a.Details, &a.IPAddress, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Count cuenta entradas para el mismo filtro de List.
func (r *ActivityRepo) Count(entityType, userID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*) FROM activities
		WHERE ($1 = '' OR entity_type = $1) AND ($2 = '' OR user_id = $2)`,
		entityType, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return total, nil
}
