package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinemahub/catalog-api/internal/api/metrics"
	"github.com/cinemahub/catalog-api/internal/core/domain"
)

// RequireRole enforces a statically declared per-route role requirement on
// the identity attached by Authenticate. A missing identity is a 401 (the
// guard did not run or rejected); a role mismatch is a 403.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.GuardRejectionsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
