package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinemahub/catalog-api/internal/api/middleware"
	"github.com/cinemahub/catalog-api/internal/core/domain"
)

// currentUser extracts the identity attached by the Authenticate middleware.
// Its presence proves the guard ran; a guarded handler reached without it is
// a wiring bug and answers 401 rather than proceeding unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
