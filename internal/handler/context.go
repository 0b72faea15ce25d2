package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
)

// actingUser extracts the resolved identity from the JWT placed in the
// request context by the auth middleware. Every project and task handler
// starts here; a request without a usable identity never reaches core logic.
func actingUser(c echo.Context) (uuid.UUID, *auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return uuid.Nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	userID, err := claims.SubjectID()
	if err != nil {
		return uuid.Nil, nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	return userID, claims, nil
}
