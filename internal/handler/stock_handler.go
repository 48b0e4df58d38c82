package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// ReplenishRequest defines the structure for a stock replenishment request
type ReplenishRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// WithdrawRequest defines the structure for a withdrawal batch request
type WithdrawRequest struct {
	Items []service.OrderItem `json:"items"`
}

// StockHandler exposes the stock ledger engine.
type StockHandler struct {
	ledger *service.LedgerService
}

// NewStockHandler creates a stock handler
func NewStockHandler(ledger *service.LedgerService) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// Replenish handles a single-product stock increase. One IN ledger row is
// appended together with the quantity change.
func (h *StockHandler) Replenish(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("replenish")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req ReplenishRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("replenish")(time.Now())

	entry, err := h.ledger.Replenish(email, req.ProductID, req.Quantity)
	if err != nil {
		log.Error("Failed to replenish stock",
			zap.Uint("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Stock replenished",
		zap.Uint("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.Uint("transaction_id", entry.ID))
	return c.JSON(http.StatusOK, entry)
}

// Withdraw handles an all-or-nothing withdrawal batch. The response always
// carries the structured result so the operator can see which product failed
// and why; a failed batch leaves every product untouched.
func (h *StockHandler) Withdraw(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordStockOperation("withdraw")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req WithdrawRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one item is required"})
	}

	defer prometheus.TrackDBOperation("withdraw")(time.Now())

	result, err := h.ledger.WithdrawBatch(email, req.Items)
	if err != nil {
		log.Error("Withdrawal batch failed", zap.Error(err))
		return errorResponse(c, err)
	}

	if !result.Success {
		prometheus.RecordWithdrawFailure("rejected")
		log.Warn("Withdrawal batch rejected",
			zap.Uint("product_id", result.ProductID),
			zap.String("reason", result.Reason))
		// The batch was processed but rejected; the structured result tells
		// the caller which item failed.
		return c.JSON(http.StatusConflict, result)
	}

	log.Info("Withdrawal batch committed", zap.Int("items", len(req.Items)))
	return c.JSON(http.StatusOK, result)
}
