package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"creatorlane/internal/session"
)

// JWTMiddleware gates protected views. A missing or invalid token answers
// 401 with a redirect hint to the sign-in view, the gate behavior the
// router enforces for every private route.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required", "redirect": "/auth"})
		}

		userID, role, err := session.ParseToken(authHeader[len(prefix):])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token", "redirect": "/auth"})
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		return next(c)
	}
}
