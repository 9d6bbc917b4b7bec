package session

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"creatorlane/internal/alerts"
	"creatorlane/internal/store"
	"creatorlane/internal/user"
)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ===== Login =====
func LoginHandler(c echo.Context) error {
	req := new(credentials)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	u, err := Login(store.Conn, req.Email, req.Password)
	if err != nil {
		return storeError(c, err)
	}

	signed, err := Token(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	_ = alerts.Notify(store.Conn, u.ID, alerts.KindSession, "Welcome back!", "You have successfully logged in.", "")
	return c.JSON(http.StatusOK, echo.Map{"token": signed, "user": u.Public()})
}

// ===== Signup =====
func SignupHandler(c echo.Context) error {
	req := new(credentials)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Role == "" {
		req.Role = user.RoleBoth
	}

	u, err := Signup(store.Conn, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return storeError(c, err)
	}

	signed, err := Token(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	_ = alerts.Notify(store.Conn, u.ID, alerts.KindSession, "Account created!", "Your account has been successfully created.", "")
	return c.JSON(http.StatusCreated, echo.Map{"token": signed, "user": u.Public()})
}

// ===== Logout =====
func LogoutHandler(c echo.Context) error {
	u, ok, err := Current(store.Conn)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return storeError(c, err)
	}
	if err := Logout(store.Conn); err != nil {
		return storeError(c, err)
	}
	if ok {
		_ = alerts.Notify(store.Conn, u.ID, alerts.KindSession, "Logged out", "You have been successfully logged out.", "")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the current session record
func Me(c echo.Context) error {
	u, ok, err := Current(store.Conn)
	if err != nil {
		return storeError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active session"})
	}
	return c.JSON(http.StatusOK, u.Public())
}

// storeError maps store failures onto the one-shot error policy: a distinct
// body per failure class, nothing fatal.
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
	case errors.Is(err, store.ErrCorrupt):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "corrupt record"})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
}
