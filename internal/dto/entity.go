package dto

import (
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
)

// CreateEntityRequest defines the data needed to create a business or property.
type CreateEntityRequest struct {
	Name    string            `json:"name" binding:"required"`
	Type    domain.EntityType `json:"type" binding:"required,oneof=BUSINESS PROPERTY"`
	Address string            `json:"address"`
}

// UpdateEntityRequest defines the data allowed for updating an entity.
type UpdateEntityRequest struct {
	Name    *string            `json:"name"`
	Type    *domain.EntityType `json:"type" binding:"omitempty,oneof=BUSINESS PROPERTY"`
	Address *string            `json:"address"`
}

// EntityResponse mirrors domain.Entity.
type EntityResponse struct {
	EntityID  string            `json:"entityID"`
	Name      string            `json:"name"`
	Type      domain.EntityType `json:"type"`
	Address   string            `json:"address"`
	OwnerID   string            `json:"ownerID"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ToEntityResponse converts a domain.Entity to EntityResponse DTO
func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:  e.EntityID,
		Name:      e.Name,
		Type:      e.EntityType,
		Address:   e.Address,
		OwnerID:   e.OwnerID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToListEntityResponse converts a slice of domain.Entity to EntityResponse DTOs
func ToListEntityResponse(entities []domain.Entity) []EntityResponse {
	res := make([]EntityResponse, len(entities))
	for i := range entities {
		res[i] = ToEntityResponse(&entities[i])
	}
	return res
}

// CreateUnitRequest defines the data needed to add a unit to an entity.
type CreateUnitRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateUnitRequest defines the data allowed for updating a unit.
type UpdateUnitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UnitResponse mirrors domain.Unit.
type UnitResponse struct {
	UnitID      string `json:"unitID"`
	EntityID    string `json:"entityID"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToUnitResponse converts a domain.Unit to UnitResponse DTO
func ToUnitResponse(u *domain.Unit) UnitResponse {
	return UnitResponse{
		UnitID:      u.UnitID,
		EntityID:    u.EntityID,
		Name:        u.Name,
		Description: u.Description,
	}
}

// ToListUnitResponse converts a slice of domain.Unit to UnitResponse DTOs
func ToListUnitResponse(units []domain.Unit) []UnitResponse {
	res := make([]UnitResponse, len(units))
	for i := range units {
		res[i] = ToUnitResponse(&units[i])
	}
	return res
}
