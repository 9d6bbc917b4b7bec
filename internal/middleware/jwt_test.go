package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mware "creatorlane/internal/middleware"
	"creatorlane/internal/session"
	"creatorlane/internal/user"
)

func invoke(t *testing.T, authHeader string, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	rec, _ := invoke(t, "", mware.JWTMiddleware)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/auth"`)
}

func TestJWTMiddlewareRejectsBadToken(t *testing.T) {
	rec, _ := invoke(t, "Bearer garbage", mware.JWTMiddleware)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareSetsIdentity(t *testing.T) {
	u := session.Fabricate("Maya", "maya@example.com", "pw", user.RoleBoth)
	tok, err := session.Token(u)
	require.NoError(t, err)

	rec, c := invoke(t, "Bearer "+tok, mware.JWTMiddleware)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, u.ID, c.Get("user_id"))
	assert.Equal(t, user.RoleBoth, c.Get("role"))
}

func TestRequireRoles(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	gate := mware.RequireRoles("creator", "both")

	for role, want := range map[string]int{
		"creator": http.StatusOK,
		"both":    http.StatusOK,
		"client":  http.StatusForbidden,
		"":        http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			c.Set("role", role)
		}
		require.NoError(t, gate(next)(c))
		assert.Equal(t, want, rec.Code, "role %q", role)
	}
}
