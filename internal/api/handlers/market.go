package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coinedge/internal/service"
	"coinedge/pkg/response"
)

// MarketHandler обработчик рыночных данных
type MarketHandler struct {
	service  *service.WalletService
	topCount int
	logger   *logrus.Logger
}

// NewMarketHandler создает новый обработчик рыночных данных
func NewMarketHandler(service *service.WalletService, topCount int, logger *logrus.Logger) *MarketHandler {
	return &MarketHandler{
		service:  service,
		topCount: topCount,
		logger:   logger,
	}
}

// GetTopCoins возвращает топ монет по капитализации
// @Summary Get top coins by market cap
// @Description Returns cached market data, refreshed from CoinGecko when stale
// @Tags market
// @Produce json
// @Success 200 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/market/top10 [get]
func (h *MarketHandler) GetTopCoins(c *gin.Context) {
	result, err := h.service.GetTopCoins(c.Request.Context(), h.topCount)
	if err != nil {
		h.logger.Errorf("Failed to get market data: %v", err)
		response.WriteError(c, http.StatusInternalServerError, "Failed to get market data")
		return
	}

	response.WriteSuccess(c, http.StatusOK, "", gin.H{
		"coins":     result.Coins,
		"source":    result.Source,
		"updatedAt": result.UpdatedAt,
	})
}
