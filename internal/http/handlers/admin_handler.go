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

// AdminHandler — операции админской консоли: заявки операторов,
// аккаунты водителей и журнал переходов.
type AdminHandler struct {
	providers *repository.ProviderRepository
	drivers   *repository.DriverRepository
	audits    *repository.AuditRepository
	queries   *service.QueryService
	workflow  *service.WorkflowService
}

func NewAdminHandler(
	providers *repository.ProviderRepository,
	drivers *repository.DriverRepository,
	audits *repository.AuditRepository,
	queries *service.QueryService,
	workflow *service.WorkflowService,
) *AdminHandler {
	return &AdminHandler{
		providers: providers,
		drivers:   drivers,
		audits:    audits,
		queries:   queries,
		workflow:  workflow,
	}
}

// CreateProvider POST /providers
func (h *AdminHandler) CreateProvider(c *gin.Context) {
	var req dto.CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "name, owner_name, email, phone, location and slot_count are required")
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	provider := &models.ProviderApplication{
		Name:      req.Name,
		OwnerName: req.OwnerName,
		Email:     req.Email,
		Phone:     req.Phone,
		Location:  req.Location,
		SlotCount: req.SlotCount,
		Status:    models.ProviderStatusPending,
	}
	if err := h.providers.Create(c.Request.Context(), provider); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, provider)
}

// ListProviders GET /providers?status=pending&q=lakeside
func (h *AdminHandler) ListProviders(c *gin.Context) {
	providers, err := h.queries.ListProviders(c.Request.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, providers)
}

// GetProvider GET /providers/:id
func (h *AdminHandler) GetProvider(c *gin.Context) {
	providerID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	provider, err := h.providers.GetByID(c.Request.Context(), providerID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

// TransitionProvider POST /providers/:id/transition (admin)
func (h *AdminHandler) TransitionProvider(c *gin.Context) {
	actorID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	providerID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "target status is required")
		return
	}

	provider, err := h.workflow.TransitionProvider(c.Request.Context(), service.TransitionInput{
		EntityID: providerID,
		Target:   req.Target,
		ActorID:  actorID,
		Note:     req.Note,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

// CreateDriver POST /drivers
func (h *AdminHandler) CreateDriver(c *gin.Context) {
	var req dto.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "name, email and phone are required")
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if req.VehicleNumber != nil {
		if err := validation.ValidatePlateNumber(*req.VehicleNumber); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}

	driver := &models.Driver{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		VehicleNumber: req.VehicleNumber,
		Status:        models.DriverStatusActive,
	}
	if err := h.drivers.Create(c.Request.Context(), driver); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// ListDrivers GET /drivers?status=active&q=alex
func (h *AdminHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.queries.ListDrivers(c.Request.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, drivers)
}

// GetDriver GET /drivers/:id
func (h *AdminHandler) GetDriver(c *gin.Context) {
	driverID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	driver, err := h.drivers.GetByID(c.Request.Context(), driverID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, driver)
}

// TransitionDriver POST /drivers/:id/transition (admin)
func (h *AdminHandler) TransitionDriver(c *gin.Context) {
	actorID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	driverID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "target status is required")
		return
	}

	driver, err := h.workflow.TransitionDriver(c.Request.Context(), service.TransitionInput{
		EntityID: driverID,
		Target:   req.Target,
		ActorID:  actorID,
		Note:     req.Note,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, driver)
}

// ListAudit GET /admin/audit/:entityType/:id
func (h *AdminHandler) ListAudit(c *gin.Context) {
	entityID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	entityType := c.Param("entityType")
	switch entityType {
	case service.EntityProviderApplication, service.EntityDriverAccount, service.EntityDispute:
	default:
		common.RespondBadRequest(c, "unknown entity type")
		return
	}

	audits, err := h.audits.ListByEntity(c.Request.Context(), entityType, entityID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, audits)
}
