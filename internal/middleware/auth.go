package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// AuthMiddleware validates the JWT token and extracts the caller identity.
// The email claim is the identity key the services resolve a tenant from;
// tenant resolution itself happens in the service layer, not here.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)
		prometheus.AuthAttemptsCounter.Inc()

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Validate the token
		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		if claims.Email == "" {
			log.Warn("JWT token does not contain an email claim")
			prometheus.AuthErrorsCounter.Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required in the token"})
		}

		// Store the identity in context for the handlers
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)

		// Token is valid, proceed with the request
		return next(c)
	}
}

// EmailFromContext retrieves the caller identity from the context.
// Returns "", false if the request was not authenticated.
func EmailFromContext(c echo.Context) (string, bool) {
	email, ok := c.Get("email").(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
