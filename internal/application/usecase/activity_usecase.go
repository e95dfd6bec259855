package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// ActivityUseCase log de actividad append-only: se escribe desde los
// handlers tras operaciones de mutación y solo ADMIN/MANAGER lo consulta.
type ActivityUseCase struct {
	activityRepo repository.ActivityRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(activityRepo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{activityRepo: activityRepo}
}

// Record anota una entrada. Best effort: un fallo aquí jamás revierte la
// operación de negocio que la originó.
func (uc *ActivityUseCase) Record(userID, action, entityType, entityID, details, ip string) {
	_ = uc.activityRepo.Create(&entity.Activity{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  ip,
		CreatedAt:  time.Now(),
	})
}

// List consulta el log con filtros opcionales por entidad y usuario.
func (uc *ActivityUseCase) List(entityType, userID string, page dto.PageRequest) (*dto.ListResponse[dto.ActivityResponse], error) {
	page.Normalize()
	list, err := uc.activityRepo.List(entityType, userID, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.activityRepo.Count(entityType, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ActivityResponse{
			ID:         a.ID,
			UserID:     a.UserID,
			Action:     a.Action,
			EntityType: a.EntityType,
			EntityID:   a.EntityID,
			Details:    a.Details,
			IPAddress:  a.IPAddress,
			CreatedAt:  a.CreatedAt,
		})
	}
	return dto.NewListResponse(items, total, page), nil
}
