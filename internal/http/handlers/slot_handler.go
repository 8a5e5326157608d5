package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parkease/parkease-backend/internal/domain/valueobject"
	"github.com/parkease/parkease-backend/internal/dto"
	"github.com/parkease/parkease-backend/internal/http/handlers/common"
	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/repository"
	"github.com/parkease/parkease-backend/internal/service"
	"github.com/parkease/parkease-backend/internal/validation"
)

type SlotHandler struct {
	slots   *repository.SlotRepository
	queries *service.QueryService
}

func NewSlotHandler(slots *repository.SlotRepository, queries *service.QueryService) *SlotHandler {
	return &SlotHandler{slots: slots, queries: queries}
}

// Search GET /slots?category=car&q=airport
// Ленивая последовательность материализуется здесь, на краю системы.
func (h *SlotHandler) Search(c *gin.Context) {
	seq, err := h.queries.SearchSlots(c.Request.Context(), c.Query("category"), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	results := make([]models.ParkingSlot, 0)
	for slot := range seq {
		results = append(results, slot)
	}

	c.JSON(http.StatusOK, results)
}

// Get GET /slots/:id
func (h *SlotHandler) Get(c *gin.Context) {
	slotID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	slot, err := h.slots.GetByID(c.Request.Context(), slotID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// Create POST /slots
func (h *SlotHandler) Create(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "provider_id, name, location, category and price_per_hour are required")
		return
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		common.RespondBadRequest(c, "invalid provider_id")
		return
	}
	if err := validation.ValidateLength("name", req.Name, validation.MinSlotNameLength, validation.MaxSlotNameLength); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidatePricePerHour(req.PricePerHour); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if _, err := valueobject.NewVehicleCategory(req.Category); err != nil {
		common.RespondBadRequest(c, "unknown vehicle category")
		return
	}

	slot := &models.ParkingSlot{
		ProviderID:   providerID,
		Name:         req.Name,
		Location:     req.Location,
		Category:     req.Category,
		PricePerHour: req.PricePerHour,
		Available:    true,
	}
	if err := h.slots.Create(c.Request.Context(), slot); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// SetAvailable PATCH /slots/:id/availability
func (h *SlotHandler) SetAvailable(c *gin.Context) {
	slotID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "available flag is required")
		return
	}

	if err := h.slots.SetAvailable(c.Request.Context(), slotID, *req.Available); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
