package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"coinedge/internal/storages"
)

// Client HTTP клиент для CoinGecko API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// marketEntry ответ CoinGecko по одной монете
type marketEntry struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	SparklineIn7d            struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

// NewClient создает новый клиент CoinGecko
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// TopCoins возвращает топ монет по рыночной капитализации
func (c *Client) TopCoins(ctx context.Context, limit int) ([]storages.Coin, error) {
	endpoint := "/coins/markets"

	params := url.Values{}
	params.Add("vs_currency", "usd")
	params.Add("order", "market_cap_desc")
	params.Add("per_page", strconv.Itoa(limit))
	params.Add("page", "1")
	params.Add("sparkline", "true")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Errorf("CoinGecko API error: status=%d body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("coingecko api returned status: %d", resp.StatusCode)
	}

	var entries []marketEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	coins := make([]storages.Coin, 0, len(entries))
	for i, e := range entries {
		coins = append(coins, storages.Coin{
			Rank:      i + 1,
			CoinID:    e.ID,
			Symbol:    strings.ToUpper(e.Symbol),
			Name:      e.Name,
			Image:     e.Image,
			Price:     e.CurrentPrice,
			MarketCap: e.MarketCap,
			Change24h: e.PriceChangePercentage24h,
			ChartData: e.SparklineIn7d.Price,
		})
	}

	c.logger.Debugf("Fetched %d coins from CoinGecko", len(coins))

	return coins, nil
}
