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

// DepositHandler обработчик пополнений
type DepositHandler struct {
	service *service.WalletService
	logger  *logrus.Logger
}

// NewDepositHandler создает новый обработчик пополнений
func NewDepositHandler(service *service.WalletService, logger *logrus.Logger) *DepositHandler {
	return &DepositHandler{
		service: service,
		logger:  logger,
	}
}

// DepositRequest запрос на фиксацию пополнения
type DepositRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Crypto        string  `json:"crypto" binding:"required"`
	TxHash        string  `json:"txHash"`
	WalletAddress string  `json:"walletAddress"`
}

// CreateDeposit фиксирует пополнение и зачисляет средства
// @Summary Record a deposit
// @Tags deposits
// @Accept json
// @Produce json
// @Param request body DepositRequest true "Deposit data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/deposits [post]
// @Security BearerAuth
func (h *DepositHandler) CreateDeposit(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	deposit, err := h.service.RecordDeposit(c.Request.Context(), userID, req.Amount, req.Crypto, req.TxHash, req.WalletAddress)
	if err != nil {
		if errors.Is(err, storages.ErrUserNotFound) {
			response.WriteError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorf("Failed to record deposit: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to record deposit")
		return
	}

	response.WriteSuccess(c, http.StatusCreated, "Deposit recorded", deposit)
}

// GetDeposits возвращает историю пополнений пользователя
// @Summary Get deposit history
// @Tags deposits
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/deposits [get]
// @Security BearerAuth
func (h *DepositHandler) GetDeposits(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	deposits, err := h.service.GetDepositHistory(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to get deposits: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to get deposits")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "", deposits)
}

// GetDepositAddresses возвращает адреса пополнения
// @Summary Get deposit addresses
// @Tags deposits
// @Produce json
// @Param crypto query string false "Specific cryptocurrency"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/deposits/addresses [get]
// @Security BearerAuth
func (h *DepositHandler) GetDepositAddresses(c *gin.Context) {
	if crypto := c.Query("crypto"); crypto != "" {
		address, err := h.service.GetDepositAddress(crypto)
		if err != nil {
			response.WriteError(c, http.StatusBadRequest, "Unsupported cryptocurrency")
			return
		}
		response.WriteSuccess(c, http.StatusOK, "", gin.H{crypto: address})
		return
	}

	response.WriteSuccess(c, http.StatusOK, "", h.service.GetDepositAddresses())
}
