package repositories

import (
	"context"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
)

// EntityRepositoryFacade defines persistence operations for entities.
type EntityRepositoryFacade interface {
	SaveEntity(ctx context.Context, entity domain.Entity) error
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
	ListEntities(ctx context.Context, limit int, offset int) ([]domain.Entity, error)
	UpdateEntity(ctx context.Context, entity domain.Entity) error
	// DeleteEntity removes the entity; its units go with it.
	DeleteEntity(ctx context.Context, entityID string) error
}

// UnitRepositoryFacade defines persistence operations for units.
type UnitRepositoryFacade interface {
	SaveUnit(ctx context.Context, unit domain.Unit) error
	FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error)
	ListUnitsByEntity(ctx context.Context, entityID string) ([]domain.Unit, error)
	UpdateUnit(ctx context.Context, unit domain.Unit) error
	// DeleteUnit removes the unit; transactions pointing at it keep a NULL unit.
	DeleteUnit(ctx context.Context, unitID string) error
}
