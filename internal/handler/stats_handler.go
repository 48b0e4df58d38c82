package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// StatsHandler exposes the read-only dashboard rollups.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a stats handler
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Overview handles the dashboard headline numbers
func (h *StatsHandler) Overview(c echo.Context) error {
	log := logger.FromContext(c)

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("stats_overview")(time.Now())

	overview, err := h.stats.GetOverview(email)
	if err != nil {
		log.Error("Failed to compute overview", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, overview)
}

// CategoryDistribution handles the product-per-category chart data.
// An optional top query parameter overrides the default chart size.
func (h *StatsHandler) CategoryDistribution(c echo.Context) error {
	log := logger.FromContext(c)

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	topN := 0
	if raw := c.QueryParam("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("Invalid top parameter", zap.String("value", raw), zap.Error(err))
		} else {
			topN = parsed
		}
	}

	distribution, err := h.stats.GetCategoryDistribution(email, topN)
	if err != nil {
		log.Error("Failed to compute category distribution", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, distribution)
}

// StockLevels handles the normal/low/out-of-stock partition
func (h *StatsHandler) StockLevels(c echo.Context) error {
	log := logger.FromContext(c)

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	levels, err := h.stats.GetStockLevels(email)
	if err != nil {
		log.Error("Failed to compute stock levels", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, levels)
}

// CriticalProducts handles the low-stock product list, lowest quantity first
func (h *StatsHandler) CriticalProducts(c echo.Context) error {
	log := logger.FromContext(c)

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	products, err := h.stats.GetCriticalProducts(email)
	if err != nil {
		log.Error("Failed to list critical products", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

// Transactions handles the ledger history view. An optional limit query
// parameter caps the number of entries returned.
func (h *StatsHandler) Transactions(c echo.Context) error {
	log := logger.FromContext(c)

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("Invalid limit parameter", zap.String("value", raw), zap.Error(err))
		} else {
			limit = parsed
		}
	}

	defer prometheus.TrackDBOperation("transaction_history")(time.Now())

	transactions, err := h.stats.GetTransactionHistory(email, limit)
	if err != nil {
		log.Error("Failed to list transactions", zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Transactions retrieved", zap.Int("count", len(transactions)))
	return c.JSON(http.StatusOK, transactions)
}
