package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// NotificationUseCase notificaciones por usuario. Las lecturas y el marcado
// como leída siempre validan que la notificación pertenezca al caller.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo, userRepo: userRepo}
}

// Create emite una notificación dirigida a un usuario existente.
func (uc *NotificationUseCase) Create(in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if in.UserID == "" || in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	kind := in.Type
	if kind == "" {
		kind = "INFO"
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Type:      kind,
		Title:     in.Title,
		Content:   in.Content,
		Link:      in.Link,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := uc.notificationRepo.Create(n); err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

// Notify es el helper interno que usan los otros módulos (órdenes, stock
// bajo) para emitir sin pasar por validación de usuario. Best effort.
func (uc *NotificationUseCase) Notify(userID, kind, title, content, link string) {
	_ = uc.notificationRepo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Content:   content,
		Link:      link,
		CreatedAt: time.Now(),
	})
}

// ListByUser lista las notificaciones del caller con contador de no leídas.
func (uc *NotificationUseCase) ListByUser(userID string, unreadOnly bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	page.Normalize()
	list, err := uc.notificationRepo.ListByUser(userID, unreadOnly, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.notificationRepo.CountByUser(userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := uc.notificationRepo.CountByUser(userID, true)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Data:        items,
		Total:       total,
		UnreadCount: unread,
		Page:        page.Page,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages(total),
	}, nil
}

// MarkRead marca como leída una notificación del caller.
func (uc *NotificationUseCase) MarkRead(callerID, id string) error {
	n, err := uc.notificationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	if n.UserID != callerID {
		return domain.ErrForbidden
	}
	if n.IsRead {
		return nil // idempotente
	}
	return uc.notificationRepo.MarkRead(id)
}

// Delete elimina una notificación del caller.
func (uc *NotificationUseCase) Delete(callerID, id string) error {
	n, err := uc.notificationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	if n.UserID != callerID {
		return domain.ErrForbidden
	}
	return uc.notificationRepo.Delete(id)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Content:   n.Content,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
