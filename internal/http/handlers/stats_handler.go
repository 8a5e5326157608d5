package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkease/parkease-backend/internal/dto"
	"github.com/parkease/parkease-backend/internal/service"
)

type StatsHandler struct {
	queries *service.QueryService
}

func NewStatsHandler(queries *service.QueryService) *StatsHandler {
	return &StatsHandler{queries: queries}
}

// Get GET /stats/:entityType
func (h *StatsHandler) Get(c *gin.Context) {
	entityType := c.Param("entityType")

	counts, err := h.queries.AggregateStats(c.Request.Context(), entityType)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.StatsResponse{EntityType: entityType, Counts: counts})
}
