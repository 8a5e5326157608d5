package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkease/parkease-backend/internal/dto"
	"github.com/parkease/parkease-backend/internal/http/handlers/common"
	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/repository"
	"github.com/parkease/parkease-backend/internal/service"
	"github.com/parkease/parkease-backend/internal/validation"
)

type DisputeHandler struct {
	disputes *repository.DisputeRepository
	queries  *service.QueryService
	workflow *service.WorkflowService
}

func NewDisputeHandler(disputes *repository.DisputeRepository, queries *service.QueryService, workflow *service.WorkflowService) *DisputeHandler {
	return &DisputeHandler{disputes: disputes, queries: queries, workflow: workflow}
}

// Create POST /disputes
func (h *DisputeHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}
	role, err := common.CurrentUserRole(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.CreateDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "title, type and description are required")
		return
	}
	if err := validation.ValidateDisputeTitle(req.Title); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if err := validation.ValidateDisputeDescription(req.Description); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.DisputePriorityMedium
	}

	dispute := &models.Dispute{
		Title:        req.Title,
		Type:         req.Type,
		Priority:     priority,
		ReporterID:   userID,
		ReporterRole: role,
		Description:  req.Description,
		Amount:       req.Amount,
		Status:       models.DisputeStatusOpen,
	}
	if err := h.disputes.Create(c.Request.Context(), dispute); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dispute)
}

// List GET /disputes?status=open&q=refund
func (h *DisputeHandler) List(c *gin.Context) {
	disputes, err := h.queries.ListDisputes(c.Request.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, disputes)
}

// Get GET /disputes/:id
func (h *DisputeHandler) Get(c *gin.Context) {
	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, err := h.disputes.GetByID(c.Request.Context(), disputeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}

// Transition POST /disputes/:id/transition (admin)
func (h *DisputeHandler) Transition(c *gin.Context) {
	actorID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "target status is required")
		return
	}

	dispute, err := h.workflow.TransitionDispute(c.Request.Context(), service.TransitionInput{
		EntityID: disputeID,
		Target:   req.Target,
		ActorID:  actorID,
		Note:     req.Note,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dispute)
}
