package handler

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/pkg/logger"
	"inventory-service/pkg/storage"
	"inventory-service/prometheus"
)

// UploadHandler stores product images and hands back the stable reference
// path the catalog persists on the product.
type UploadHandler struct {
	store storage.Store
}

// NewUploadHandler creates an upload handler
func NewUploadHandler(store storage.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts a multipart file and stores it under a uuid-based name so
// uploads can never collide or overwrite each other.
func (h *UploadHandler) Upload(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUploadOperation("upload")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Error("Missing upload file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to read file"})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to read file"})
	}

	name := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	path, err := h.store.Put(name, content)
	if err != nil {
		log.Error("Failed to store upload",
			zap.String("name", name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to store file"})
	}

	log.Info("Asset uploaded",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("size", len(content)))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "path": path})
}

// Delete removes a previously uploaded asset by its reference path.
func (h *UploadHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUploadOperation("delete")

	var req struct {
		Path string `json:"path"`
	}
	if err := c.Bind(&req); err != nil || req.Path == "" {
		log.Error("Invalid delete request")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "path is required"})
	}

	if !h.store.Exists(req.Path) {
		log.Warn("Asset not found", zap.String("path", req.Path))
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "file not found"})
	}

	if err := h.store.Delete(req.Path); err != nil {
		log.Error("Failed to delete asset",
			zap.String("path", req.Path),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "failed to delete file"})
	}

	log.Info("Asset deleted", zap.String("path", req.Path))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
