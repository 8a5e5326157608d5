package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkease/parkease-backend/internal/service"
)

// SeedHandler наполняет базу демо-данными. Маршрут включается
// только вне production.
type SeedHandler struct {
	seeder *service.SeedService
}

func NewSeedHandler(seeder *service.SeedService) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed POST /dev/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	if err := h.seeder.Seed(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "seeded"})
}
