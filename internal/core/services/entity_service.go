package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/google/uuid"
)

// entityService implements the EntitySvcFacade interface
type entityService struct {
	BaseService
	entityRepo portsrepo.EntityRepositoryFacade
	unitRepo   portsrepo.UnitRepositoryFacade
	now        func() time.Time
}

// NewEntityService creates a new entity service with the provided dependencies
func NewEntityService(entityRepo portsrepo.EntityRepositoryFacade, unitRepo portsrepo.UnitRepositoryFacade) portssvc.EntitySvcFacade {
	return &entityService{entityRepo: entityRepo, unitRepo: unitRepo, now: time.Now}
}

var _ portssvc.EntitySvcFacade = (*entityService)(nil)

func (s *entityService) GetEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entity by ID", slog.String("entity_id", entityID))
		}
		return nil, err
	}
	return entity, nil
}

func (s *entityService) ListEntities(ctx context.Context, limit, offset int) ([]domain.Entity, error) {
	entities, err := s.entityRepo.ListEntities(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entities")
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	if entities == nil {
		return []domain.Entity{}, nil
	}
	return entities, nil
}

func (s *entityService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest, ownerID string) (*domain.Entity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be BUSINESS or PROPERTY", apperrors.ErrValidation)
	}

	now := s.now()
	entity := domain.Entity{
		EntityID:    uuid.NewString(),
		Name:        name,
		EntityType:  req.Type,
		Address:     req.Address,
		OwnerID:     ownerID,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.entityRepo.SaveEntity(ctx, entity); err != nil {
		s.LogError(ctx, err, "Failed to save entity", slog.String("entity_id", entity.EntityID))
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	s.LogInfo(ctx, "Entity created", slog.String("entity_id", entity.EntityID))
	return &entity, nil
}

func (s *entityService) UpdateEntity(ctx context.Context, entityID string, req dto.UpdateEntityRequest) (*domain.Entity, error) {
	entity, err := s.GetEntityByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		entity.Name = name
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			return nil, fmt.Errorf("%w: type must be BUSINESS or PROPERTY", apperrors.ErrValidation)
		}
		entity.EntityType = *req.Type
	}
	if req.Address != nil {
		entity.Address = *req.Address
	}
	entity.UpdatedAt = s.now()

	if err := s.entityRepo.UpdateEntity(ctx, *entity); err != nil {
		s.LogError(ctx, err, "Failed to update entity", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}
	return entity, nil
}

func (s *entityService) DeleteEntity(ctx context.Context, entityID string) error {
	if err := s.entityRepo.DeleteEntity(ctx, entityID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to delete entity", slog.String("entity_id", entityID))
		}
		return err
	}
	s.LogInfo(ctx, "Entity deleted", slog.String("entity_id", entityID))
	return nil
}

func (s *entityService) ListUnits(ctx context.Context, entityID string) ([]domain.Unit, error) {
	if _, err := s.GetEntityByID(ctx, entityID); err != nil {
		return nil, err
	}
	units, err := s.unitRepo.ListUnitsByEntity(ctx, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list units", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	if units == nil {
		return []domain.Unit{}, nil
	}
	return units, nil
}

func (s *entityService) CreateUnit(ctx context.Context, entityID string, req dto.CreateUnitRequest) (*domain.Unit, error) {
	if _, err := s.GetEntityByID(ctx, entityID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	now := s.now()
	unit := domain.Unit{
		UnitID:      uuid.NewString(),
		EntityID:    entityID,
		Name:        name,
		Description: req.Description,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.unitRepo.SaveUnit(ctx, unit); err != nil {
		s.LogError(ctx, err, "Failed to save unit", slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return &unit, nil
}

// findOwnedUnit loads a unit and checks it belongs to entityID.
func (s *entityService) findOwnedUnit(ctx context.Context, entityID, unitID string) (*domain.Unit, error) {
	unit, err := s.unitRepo.FindUnitByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit.EntityID != entityID {
		return nil, fmt.Errorf("%w: unit %s does not belong to entity %s", apperrors.ErrNotFound, unitID, entityID)
	}
	return unit, nil
}

func (s *entityService) UpdateUnit(ctx context.Context, entityID, unitID string, req dto.UpdateUnitRequest) (*domain.Unit, error) {
	unit, err := s.findOwnedUnit(ctx, entityID, unitID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		unit.Name = name
	}
	if req.Description != nil {
		unit.Description = *req.Description
	}
	unit.UpdatedAt = s.now()

	if err := s.unitRepo.UpdateUnit(ctx, *unit); err != nil {
		s.LogError(ctx, err, "Failed to update unit", slog.String("unit_id", unitID))
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}
	return unit, nil
}

func (s *entityService) DeleteUnit(ctx context.Context, entityID, unitID string) error {
	if _, err := s.findOwnedUnit(ctx, entityID, unitID); err != nil {
		return err
	}
	if err := s.unitRepo.DeleteUnit(ctx, unitID); err != nil {
		s.LogError(ctx, err, "Failed to delete unit", slog.String("unit_id", unitID))
		return err
	}
	return nil
}
