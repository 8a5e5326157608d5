package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parkease/parkease-backend/internal/dto"
	"github.com/parkease/parkease-backend/internal/http/handlers/common"
	"github.com/parkease/parkease-backend/internal/service"
)

type BookingHandler struct {
	bookings *service.BookingService
	queries  *service.QueryService
}

func NewBookingHandler(bookings *service.BookingService, queries *service.QueryService) *BookingHandler {
	return &BookingHandler{bookings: bookings, queries: queries}
}

// Quote POST /bookings/quote
func (h *BookingHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "slot_id and hours are required")
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		common.RespondBadRequest(c, "invalid slot_id")
		return
	}

	amount, err := h.bookings.Quote(c.Request.Context(), slotID, req.Hours)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{Amount: amount, Hours: req.Hours})
}

// Create POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "driver_id, slot_id, hours and vehicle_category are required")
		return
	}

	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		common.RespondBadRequest(c, "invalid driver_id")
		return
	}
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		common.RespondBadRequest(c, "invalid slot_id")
		return
	}

	booking, err := h.bookings.AuthorizeAndBook(c.Request.Context(), service.CreateBookingInput{
		DriverID:        driverID,
		SlotID:          slotID,
		Hours:           req.Hours,
		VehicleCategory: req.VehicleCategory,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// Get GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	bookingID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	booking, err := h.bookings.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Complete POST /bookings/:id/complete
func (h *BookingHandler) Complete(c *gin.Context) {
	bookingID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	booking, err := h.bookings.Complete(c.Request.Context(), bookingID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Cancel POST /bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	booking, err := h.bookings.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ListByDriver GET /drivers/:id/bookings
func (h *BookingHandler) ListByDriver(c *gin.Context) {
	driverID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	bookings, err := h.queries.ListBookings(c.Request.Context(), driverID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}
