package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkease/parkease-backend/internal/dto"
	"github.com/parkease/parkease-backend/internal/http/handlers/common"
	"github.com/parkease/parkease-backend/internal/repository"
	"github.com/parkease/parkease-backend/internal/storage"
)

// DocumentHandler принимает документы заявок операторов и отмечает
// соответствующий флаг в заявке.
type DocumentHandler struct {
	storage   *storage.DocumentStorage
	providers *repository.ProviderRepository
}

func NewDocumentHandler(st *storage.DocumentStorage, providers *repository.ProviderRepository) *DocumentHandler {
	return &DocumentHandler{storage: st, providers: providers}
}

// Upload POST /providers/:id/documents/:docType (multipart form, поле "file")
func (h *DocumentHandler) Upload(c *gin.Context) {
	providerID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	docType := c.Param("docType")
	if !storage.ValidDocType(docType) {
		common.RespondBadRequest(c, "document type must be license, insurance or tax")
		return
	}

	// Заявка должна существовать до записи файла на диск.
	if _, err := h.providers.GetByID(c.Request.Context(), providerID); err != nil {
		_ = c.Error(err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer f.Close()

	path, size, err := h.storage.Save(c.Request.Context(), providerID, docType, fileHeader.Filename, f)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.providers.SetDocumentFlag(c.Request.Context(), providerID, "doc_"+docType); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.DocumentUploadResponse{Path: path, Size: size})
}
