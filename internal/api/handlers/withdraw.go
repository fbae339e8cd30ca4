package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coinedge/internal/api/middleware"
	"coinedge/internal/service"
	"coinedge/internal/storages"
	"coinedge/pkg/response"
)

// WithdrawHandler обработчик заявок на вывод средств
type WithdrawHandler struct {
	service *service.WalletService
	logger  *logrus.Logger
}

// NewWithdrawHandler создает новый обработчик выводов
func NewWithdrawHandler(service *service.WalletService, logger *logrus.Logger) *WithdrawHandler {
	return &WithdrawHandler{
		service: service,
		logger:  logger,
	}
}

// WithdrawRequest запрос на вывод средств
type WithdrawRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	WalletAddress string  `json:"walletAddress" binding:"required"`
}

// WithdrawalStatusRequest запрос на смену статуса заявки
type WithdrawalStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	TransactionID string `json:"transactionId"`
}

// CreateWithdrawal создает заявку на вывод средств
// @Summary Create withdrawal request
// @Description Debit balance and create a pending withdrawal
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param request body WithdrawRequest true "Withdrawal data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/withdrawals [post]
// @Security BearerAuth
func (h *WithdrawHandler) CreateWithdrawal(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	withdrawal, err := h.service.CreateWithdrawal(c.Request.Context(), userID, req.Amount, req.WalletAddress)
	if err != nil {
		switch {
		case errors.Is(err, storages.ErrInsufficientFunds):
			response.WriteError(c, http.StatusBadRequest, "Insufficient funds")
		case errors.Is(err, service.ErrInvalidWalletAddress):
			response.WriteError(c, http.StatusBadRequest, "Invalid wallet address")
		case errors.Is(err, storages.ErrUserNotFound):
			response.WriteError(c, http.StatusNotFound, "User not found")
		default:
			h.logger.Errorf("Failed to create withdrawal: %v", err)
			response.WriteError(c, http.StatusInternalServerError, "Failed to create withdrawal")
		}
		return
	}

	response.WriteSuccess(c, http.StatusCreated, "Withdrawal request created", withdrawal)
}

// UpdateWithdrawalStatus переводит заявку в новый статус
// @Summary Update withdrawal status
// @Description Transition a withdrawal; pending to failed or cancelled refunds the balance
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Param request body WithdrawalStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/withdrawals/{id}/status [put]
// @Security BearerAuth
func (h *WithdrawHandler) UpdateWithdrawalStatus(c *gin.Context) {
	withdrawalID := c.Param("id")

	var req WithdrawalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	withdrawal, err := h.service.UpdateWithdrawalStatus(c.Request.Context(), withdrawalID, req.Status, req.TransactionID)
	if err != nil {
		switch {
		case errors.Is(err, storages.ErrInvalidStatus):
			response.WriteError(c, http.StatusBadRequest, "Invalid withdrawal status")
		case errors.Is(err, storages.ErrWithdrawalNotFound):
			response.WriteError(c, http.StatusNotFound, "Withdrawal not found")
		default:
			h.logger.Errorf("Failed to update withdrawal status: %v", err)
			response.WriteError(c, http.StatusInternalServerError, "Failed to update withdrawal status")
		}
		return
	}

	response.WriteSuccess(c, http.StatusOK, "Withdrawal status updated", withdrawal)
}

// GetWithdrawals возвращает заявки пользователя на вывод
// @Summary Get withdrawal history
// @Tags withdrawals
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/withdrawals [get]
// @Security BearerAuth
func (h *WithdrawHandler) GetWithdrawals(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	withdrawals, err := h.service.GetWithdrawalHistory(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to get withdrawals: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to get withdrawals")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "", withdrawals)
}

// GetBalance возвращает текущий баланс пользователя
// @Summary Get account balance
// @Tags withdrawals
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/balance [get]
// @Security BearerAuth
func (h *WithdrawHandler) GetBalance(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	balance, err := h.service.GetBalance(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storages.ErrUserNotFound) {
			response.WriteError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorf("Failed to get balance: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to get balance")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "", gin.H{"balance": balance})
}
