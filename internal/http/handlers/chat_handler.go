package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkease/parkease-backend/internal/dto"
	"github.com/parkease/parkease-backend/internal/http/handlers/common"
	"github.com/parkease/parkease-backend/internal/service"
	"github.com/parkease/parkease-backend/internal/validation"
)

type ChatHandler struct {
	chatbot *service.ChatbotService
}

func NewChatHandler(chatbot *service.ChatbotService) *ChatHandler {
	return &ChatHandler{chatbot: chatbot}
}

// Ask POST /chat
func (h *ChatHandler) Ask(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "message is required")
		return
	}
	if err := validation.ValidateChatMessage(req.Message); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{Reply: h.chatbot.Reply(req.Message)})
}
