package services

import (
	"context"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/dto"
)

// EntityReaderSvc defines read operations for entities and units
type EntityReaderSvc interface {
	GetEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
	ListEntities(ctx context.Context, limit, offset int) ([]domain.Entity, error)
	ListUnits(ctx context.Context, entityID string) ([]domain.Unit, error)
}

// EntityWriterSvc defines write operations for entities and units
type EntityWriterSvc interface {
	CreateEntity(ctx context.Context, req dto.CreateEntityRequest, ownerID string) (*domain.Entity, error)
	UpdateEntity(ctx context.Context, entityID string, req dto.UpdateEntityRequest) (*domain.Entity, error)
	DeleteEntity(ctx context.Context, entityID string) error

	CreateUnit(ctx context.Context, entityID string, req dto.CreateUnitRequest) (*domain.Unit, error)
	UpdateUnit(ctx context.Context, entityID, unitID string, req dto.UpdateUnitRequest) (*domain.Unit, error)
	DeleteUnit(ctx context.Context, entityID, unitID string) error
}

// EntitySvcFacade combines entity and unit operations
type EntitySvcFacade interface {
	EntityReaderSvc
	EntityWriterSvc
}
