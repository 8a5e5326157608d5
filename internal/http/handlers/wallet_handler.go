package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkease/parkease-backend/internal/dto"
	"github.com/parkease/parkease-backend/internal/http/handlers/common"
	"github.com/parkease/parkease-backend/internal/service"
	"github.com/parkease/parkease-backend/internal/validation"
)

type WalletHandler struct {
	wallet *service.WalletService
}

func NewWalletHandler(wallet *service.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

// GetBalance GET /drivers/:id/wallet
func (h *WalletHandler) GetBalance(c *gin.Context) {
	driverID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	balance, err := h.wallet.GetBalance(c.Request.Context(), driverID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// TopUp POST /drivers/:id/wallet/topup
func (h *WalletHandler) TopUp(c *gin.Context) {
	driverID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "amount must be positive")
		return
	}
	if err := validation.ValidateTopUpAmount(req.Amount); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	transaction, balance, err := h.wallet.Credit(c.Request.Context(), driverID, req.Amount)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TopUpResponse{Transaction: transaction, Balance: balance})
}

// ListTransactions GET /drivers/:id/wallet/transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	driverID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)
	transactions, err := h.wallet.ListTransactions(c.Request.Context(), driverID, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}
