package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinemahub/catalog-api/internal/api/metrics"
	"github.com/cinemahub/catalog-api/internal/core/domain"
	"github.com/cinemahub/catalog-api/internal/core/ports"
)

// UserContextKey is the echo context key under which Authenticate stores the
// resolved caller.
const UserContextKey = "auth_user"

// Authenticate is the access guard. It extracts the bearer token, verifies
// it as an access-purpose token, resolves the subject against the credential
// store and attaches the caller to the request context. It fails closed with
// 401 and never mutates the user or token state.
func Authenticate(tokens ports.TokenIssuer, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.GuardRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.GuardRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subjectID, err := tokens.Verify(parts[1], domain.PurposeAccess)
			if err != nil {
				metrics.GuardRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := users.FindByID(c.Request().Context(), subjectID)
			if err != nil {
				// A signed token for a deleted account gets the same answer
				// as a bad token.
				metrics.GuardRejectionsTotal.WithLabelValues("unknown_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
