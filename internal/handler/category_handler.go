package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryHandler exposes category CRUD over the catalog service.
type CategoryHandler struct {
	catalog *service.CatalogService
}

// NewCategoryHandler creates a category handler
func NewCategoryHandler(catalog *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// List handles retrieving all categories of the caller's tenant
func (h *CategoryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("list")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	categories, err := h.catalog.ListCategories(email)
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// Create handles creating a new category
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("create")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	category, err := h.catalog.CreateCategory(email, req.Name, req.Description)
	if err != nil {
		log.Error("Failed to create category",
			zap.String("name", req.Name),
			zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// Update handles updating an existing category
func (h *CategoryHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("update")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := paramID(c)
	if err != nil {
		log.Error("Invalid category ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if err := h.catalog.UpdateCategory(email, id, req.Name, req.Description); err != nil {
		log.Error("Failed to update category",
			zap.Uint("category_id", id),
			zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Category updated", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category updated successfully"})
}

// Delete handles deleting a category
func (h *CategoryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("delete")

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := paramID(c)
	if err != nil {
		log.Error("Invalid category ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	if err := h.catalog.DeleteCategory(email, id); err != nil {
		log.Error("Failed to delete category",
			zap.Uint("category_id", id),
			zap.Error(err))
		return errorResponse(c, err)
	}

	log.Info("Category deleted", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
