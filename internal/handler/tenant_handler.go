package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/middleware"
	"inventory-service/internal/service"
	"inventory-service/pkg/logger"
)

// TenantHandler exposes tenant onboarding and lookup.
type TenantHandler struct {
	tenants *service.TenantService
}

// NewTenantHandler creates a tenant handler
func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Onboard handles first-time tenant creation. Idempotent: repeated calls for
// the same identity leave exactly one tenant.
func (h *TenantHandler) Onboard(c echo.Context) error {
	log := logger.FromContext(c)

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		log.Error("Failed to get email from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	// Fall back to the display name carried in the token.
	name := req.Name
	if name == "" {
		name, _ = c.Get("name").(string)
	}

	if err := h.tenants.Ensure(email, name); err != nil {
		log.Error("Failed to ensure tenant", zap.String("email", email), zap.Error(err))
		return errorResponse(c, err)
	}

	tenant, err := h.tenants.Resolve(email)
	if err != nil {
		// Ensure is a no-op when no name was supplied, so the tenant may
		// legitimately still be absent.
		return errorResponse(c, err)
	}

	log.Info("Tenant onboarded",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("email", tenant.Email))
	return c.JSON(http.StatusOK, tenant)
}

// Me returns the tenant record for the authenticated identity.
func (h *TenantHandler) Me(c echo.Context) error {
	log := logger.FromContext(c)

	email, ok := middleware.EmailFromContext(c)
	if !ok {
		log.Error("Failed to get email from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	tenant, err := h.tenants.Resolve(email)
	if err != nil {
		log.Warn("Tenant not resolved", zap.String("email", email), zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, tenant)
}
