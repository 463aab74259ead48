package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/core/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEntityService_CreateEntity(t *testing.T) {
	ctx := context.Background()
	entities := new(MockEntityRepository)
	svc := services.NewEntityService(entities, new(MockUnitRepository))

	entities.On("SaveEntity", ctx, mock.MatchedBy(func(e domain.Entity) bool {
		return e.Name == "Main Street Duplex" && e.EntityType == domain.EntityProperty && e.OwnerID == "owner-1"
	})).Return(nil).Once()

	entity, err := svc.CreateEntity(ctx, dto.CreateEntityRequest{Name: " Main Street Duplex ", Type: domain.EntityProperty}, "owner-1")
	require.NoError(t, err)
	assert.NotEmpty(t, entity.EntityID)

	_, err = svc.CreateEntity(ctx, dto.CreateEntityRequest{Name: "Farm", Type: "FARM"}, "owner-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	entities.AssertExpectations(t)
}

func TestEntityService_Units(t *testing.T) {
	ctx := context.Background()
	entity := &domain.Entity{EntityID: "e1", Name: "Duplex", EntityType: domain.EntityProperty}

	t.Run("create unit under missing entity", func(t *testing.T) {
		entities, units := new(MockEntityRepository), new(MockUnitRepository)
		svc := services.NewEntityService(entities, units)
		entities.On("FindEntityByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.CreateUnit(ctx, "missing", dto.CreateUnitRequest{Name: "Apt 1"})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		units.AssertNotCalled(t, "SaveUnit", mock.Anything, mock.Anything)
	})

	t.Run("create unit", func(t *testing.T) {
		entities, units := new(MockEntityRepository), new(MockUnitRepository)
		svc := services.NewEntityService(entities, units)
		entities.On("FindEntityByID", ctx, "e1").Return(entity, nil).Once()
		units.On("SaveUnit", ctx, mock.MatchedBy(func(u domain.Unit) bool { return u.EntityID == "e1" && u.Name == "Apt 1" })).Return(nil).Once()

		unit, err := svc.CreateUnit(ctx, "e1", dto.CreateUnitRequest{Name: "Apt 1"})
		require.NoError(t, err)
		assert.Equal(t, "e1", unit.EntityID)
		units.AssertExpectations(t)
	})

	t.Run("unit of another entity is not found", func(t *testing.T) {
		entities, units := new(MockEntityRepository), new(MockUnitRepository)
		svc := services.NewEntityService(entities, units)
		units.On("FindUnitByID", ctx, "u9").Return(&domain.Unit{UnitID: "u9", EntityID: "e2"}, nil).Twice()

		name := "Renamed"
		_, err := svc.UpdateUnit(ctx, "e1", "u9", dto.UpdateUnitRequest{Name: &name})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.ErrorIs(t, svc.DeleteUnit(ctx, "e1", "u9"), apperrors.ErrNotFound)
		units.AssertNotCalled(t, "DeleteUnit", mock.Anything, mock.Anything)
	})

	t.Run("list units of entity", func(t *testing.T) {
		entities, units := new(MockEntityRepository), new(MockUnitRepository)
		svc := services.NewEntityService(entities, units)
		entities.On("FindEntityByID", ctx, "e1").Return(entity, nil).Once()
		units.On("ListUnitsByEntity", ctx, "e1").Return(nil, nil).Once()

		list, err := svc.ListUnits(ctx, "e1")
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}
