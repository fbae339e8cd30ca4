package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coinedge/internal/api/middleware"
	"coinedge/internal/service"
	"coinedge/internal/storages"
	"coinedge/pkg/response"
)

// DashboardHandler обработчик данных главного экрана
type DashboardHandler struct {
	service *service.WalletService
	logger  *logrus.Logger
}

// NewDashboardHandler создает новый обработчик дашборда
func NewDashboardHandler(service *service.WalletService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// TodayReportRequest запрос на обновление дневных показателей
type TodayReportRequest struct {
	TodayPnL  float64 `json:"todayPnL"`
	TodayGain float64 `json:"todayGain"`
}

// HoldingsRequest запрос на замену портфеля
type HoldingsRequest struct {
	Holdings []storages.Holding `json:"holdings" binding:"required"`
}

// GetDashboard возвращает сводку по счету пользователя
// @Summary Get dashboard data
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/dashboard [get]
// @Security BearerAuth
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	data, err := h.service.GetDashboardData(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storages.ErrUserNotFound) {
			response.WriteError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorf("Failed to get dashboard data: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to get dashboard data")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "", data)
}

// GetProfile возвращает профиль пользователя
// @Summary Get user profile
// @Tags dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/profile [get]
// @Security BearerAuth
func (h *DashboardHandler) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, storages.ErrUserNotFound) {
			response.WriteError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorf("Failed to get profile: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "", user)
}

// GetTransactions возвращает историю операций пользователя
// @Summary Get transaction history
// @Tags dashboard
// @Produce json
// @Param limit query int false "Maximum number of transactions" default(50)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/transactions [get]
// @Security BearerAuth
func (h *DashboardHandler) GetTransactions(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.WriteError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	transactions, err := h.service.GetUserTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Errorf("Failed to get transactions: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to get transactions")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "", transactions)
}

// UpdateTodayReport обновляет дневные показатели PnL
// @Summary Update today report
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body TodayReportRequest true "Today PnL and gain"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/today-report [put]
// @Security BearerAuth
func (h *DashboardHandler) UpdateTodayReport(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req TodayReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.service.UpdateTodayReport(c.Request.Context(), userID, req.TodayPnL, req.TodayGain); err != nil {
		if errors.Is(err, storages.ErrUserNotFound) {
			response.WriteError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Errorf("Failed to update today report: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to update today report")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "Today report updated", nil)
}

// UpdateHoldings заменяет портфель пользователя
// @Summary Update holdings
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body HoldingsRequest true "New holdings"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/holdings [put]
// @Security BearerAuth
func (h *DashboardHandler) UpdateHoldings(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		response.WriteError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req HoldingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.service.UpdateHoldings(c.Request.Context(), userID, req.Holdings); err != nil {
		if errors.Is(err, storages.ErrUserNotFound) {
			response.WriteError(c, http.StatusNotFound, "User not found")
			return
		}
		response.WriteError(c, http.StatusBadRequest, err.Error())
		return
	}

	response.WriteSuccess(c, http.StatusOK, "Holdings updated", nil)
}
