package handlers

import (
	"net/http"

	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OKMessage("Finance manager API v1"))
}

// getHealth reports liveness as plain text.
func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
