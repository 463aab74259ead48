package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entityHandler handles HTTP requests for businesses, properties and their units.
type entityHandler struct {
	entityService portssvc.EntitySvcFacade
}

func newEntityHandler(es portssvc.EntitySvcFacade) *entityHandler {
	return &entityHandler{entityService: es}
}

// registerEntityRoutes registers entity and unit routes. Deletes need the manager role.
func registerEntityRoutes(rg *gin.RouterGroup, entityService portssvc.EntitySvcFacade) {
	h := newEntityHandler(entityService)
	managerOnly := middleware.RequireRole(domain.RoleManager)

	entities := rg.Group("/entities")
	{
		entities.POST("", h.createEntity)
		entities.GET("", h.listEntities)
		entities.GET("/:entityID", h.getEntity)
		entities.PUT("/:entityID", h.updateEntity)
		entities.DELETE("/:entityID", managerOnly, h.deleteEntity)

		units := entities.Group("/:entityID/units")
		{
			units.POST("", h.createUnit)
			units.GET("", h.listUnits)
			units.PUT("/:unitID", h.updateUnit)
			units.DELETE("/:unitID", managerOnly, h.deleteUnit)
		}
	}
}

// createEntity godoc
// @Summary Create an entity
// @Description Creates a business or property owned by the caller.
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   entity body dto.CreateEntityRequest true "Entity details"
// @Success 201 {object} dto.SuccessResponse{data=dto.EntityResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/entities [post]
func (h *entityHandler) createEntity(c *gin.Context) {
	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "create entity request", err)
		return
	}

	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	entity, err := h.entityService.CreateEntity(c.Request.Context(), req, ownerID)
	if err != nil {
		respondError(c, err, "Entity", "create entity")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Entity created successfully", slog.String("entity_id", entity.EntityID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToEntityResponse(entity)))
}

// listEntities godoc
// @Summary List entities
// @Tags entities
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.SuccessResponse{data=[]dto.EntityResponse}
// @Router /api/v1/entities [get]
func (h *entityHandler) listEntities(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, "list entities query", err)
		return
	}

	entities, err := h.entityService.ListEntities(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Entity", "list entities")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToListEntityResponse(entities)))
}

// getEntity godoc
// @Summary Get an entity by ID
// @Tags entities
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.EntityResponse}
// @Failure 404 {object} dto.ErrorResponse "Entity not found"
// @Router /api/v1/entities/{entityID} [get]
func (h *entityHandler) getEntity(c *gin.Context) {
	entity, err := h.entityService.GetEntityByID(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondError(c, err, "Entity", "retrieve entity")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToEntityResponse(entity)))
}

// updateEntity godoc
// @Summary Update an entity
// @Tags entities
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   entity body dto.UpdateEntityRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.EntityResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Entity not found"
// @Router /api/v1/entities/{entityID} [put]
func (h *entityHandler) updateEntity(c *gin.Context) {
	var req dto.UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "update entity request", err)
		return
	}

	entity, err := h.entityService.UpdateEntity(c.Request.Context(), c.Param("entityID"), req)
	if err != nil {
		respondError(c, err, "Entity", "update entity")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToEntityResponse(entity)))
}

// deleteEntity godoc
// @Summary Delete an entity
// @Description Units are removed with the entity. An entity that still has transactions cannot be deleted.
// @Tags entities
// @Param   entityID path string true "Entity ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Entity still has transactions"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Entity not found"
// @Router /api/v1/entities/{entityID} [delete]
func (h *entityHandler) deleteEntity(c *gin.Context) {
	entityID := c.Param("entityID")
	if err := h.entityService.DeleteEntity(c.Request.Context(), entityID); err != nil {
		respondError(c, err, "Entity", "delete entity")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Entity deleted successfully", slog.String("entity_id", entityID))
	c.Status(http.StatusNoContent)
}

// createUnit godoc
// @Summary Add a unit to an entity
// @Tags units
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   unit body dto.CreateUnitRequest true "Unit details"
// @Success 201 {object} dto.SuccessResponse{data=dto.UnitResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Entity not found"
// @Router /api/v1/entities/{entityID}/units [post]
func (h *entityHandler) createUnit(c *gin.Context) {
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "create unit request", err)
		return
	}

	unit, err := h.entityService.CreateUnit(c.Request.Context(), c.Param("entityID"), req)
	if err != nil {
		respondError(c, err, "Entity", "create unit")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.ToUnitResponse(unit)))
}

// listUnits godoc
// @Summary List the units of an entity
// @Tags units
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.UnitResponse}
// @Failure 404 {object} dto.ErrorResponse "Entity not found"
// @Router /api/v1/entities/{entityID}/units [get]
func (h *entityHandler) listUnits(c *gin.Context) {
	units, err := h.entityService.ListUnits(c.Request.Context(), c.Param("entityID"))
	if err != nil {
		respondError(c, err, "Entity", "list units")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToListUnitResponse(units)))
}

// updateUnit godoc
// @Summary Update a unit
// @Tags units
// @Accept  json
// @Produce  json
// @Param   entityID path string true "Entity ID"
// @Param   unitID path string true "Unit ID"
// @Param   unit body dto.UpdateUnitRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.UnitResponse}
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Router /api/v1/entities/{entityID}/units/{unitID} [put]
func (h *entityHandler) updateUnit(c *gin.Context) {
	var req dto.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "update unit request", err)
		return
	}

	unit, err := h.entityService.UpdateUnit(c.Request.Context(), c.Param("entityID"), c.Param("unitID"), req)
	if err != nil {
		respondError(c, err, "Unit", "update unit")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToUnitResponse(unit)))
}

// deleteUnit godoc
// @Summary Delete a unit
// @Description Transactions recorded against the unit keep their entity and lose the unit reference.
// @Tags units
// @Param   entityID path string true "Entity ID"
// @Param   unitID path string true "Unit ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Router /api/v1/entities/{entityID}/units/{unitID} [delete]
func (h *entityHandler) deleteUnit(c *gin.Context) {
	if err := h.entityService.DeleteUnit(c.Request.Context(), c.Param("entityID"), c.Param("unitID")); err != nil {
		respondError(c, err, "Unit", "delete unit")
		return
	}
	c.Status(http.StatusNoContent)
}
