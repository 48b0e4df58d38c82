package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// ProductHandler exposes product CRUD over the catalog service.
type ProductHandler struct {
	catalog *service.CatalogService
}

// NewProductHandler creates a product handler
func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles retrieving all products of the caller's tenant, each enriched
// with its category name
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("list")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	products, err := h.catalog.ListProducts(email)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Products retrieved", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("get")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := paramID(c)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	product, err := h.catalog.GetProduct(email, id)
	if err != nil {
		log.Error("Product not found", zap.Uint("product_id", id), zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Product retrieved",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// Create handles creating a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("create")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	log.Info("Product creation request",
		zap.String("name", req.Name),
		zap.Float64("price", req.Price),
		zap.Uint("category_id", req.CategoryID))

	product, err := h.catalog.CreateProduct(email, req)
	if err != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(err))
		return errorResponse(c, err)
	}

	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10),
		product.Name,
		float64(product.Quantity))

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// Update handles updating an existing product. The quantity field overwrites
// the stored quantity directly, bypassing the ledger; it exists for manual
// corrections and produces no transaction row.
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("update")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := paramID(c)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.catalog.UpdateProduct(email, id, req); err != nil {
		log.Error("Failed to update product",
			zap.Uint("product_id", id),
			zap.Error(err))
		return errorResponse(c, err)
	}

	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(id), 10),
		req.Name,
		float64(req.Quantity))

	log.Info("Product updated", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product updated successfully"})
}

// Delete handles deleting a product. Ledger rows referencing the product are
// audit data and are left in place.
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("delete")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := paramID(c)
	if err != nil {
		log.Error("Invalid product ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	if err := h.catalog.DeleteProduct(email, id); err != nil {
		log.Error("Failed to delete product",
			zap.Uint("product_id", id),
			zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Product deleted", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}
