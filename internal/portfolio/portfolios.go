package portfolio

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"creatorlane/internal/alerts"
	"creatorlane/internal/session"
	"creatorlane/internal/store"
	"creatorlane/internal/user"
)

// Portfolios binds the user-created portfolios collection.
func Portfolios(s *store.Store) store.Keyed[Portfolio] {
	return store.OpenKeyed(s, store.KeyPortfolios, func(p Portfolio) string { return p.ID })
}

// Add validates and appends a portfolio piece owned by u. Title, category
// and image are the required form fields; a miss writes nothing.
func Add(s *store.Store, u user.User, title, category, description, image string) (Portfolio, error) {
	if !u.CanList() {
		return Portfolio{}, fmt.Errorf("only creators can publish portfolios")
	}
	if title == "" || category == "" || image == "" {
		return Portfolio{}, fmt.Errorf("title, category and image are required")
	}
	if !ValidCategory(category) {
		return Portfolio{}, fmt.Errorf("unknown category %q", category)
	}
	p := Portfolio{
		ID:          uuid.New().String(),
		Title:       title,
		Category:    category,
		Description: description,
		Image:       image,
		Creator:     Creator{ID: u.ID, Name: u.Name, Avatar: u.Avatar},
		CreatedAt:   time.Now().UTC(),
	}
	if err := Portfolios(s).Append(p); err != nil {
		return Portfolio{}, err
	}
	return p, nil
}

// By returns the pieces owned by one creator, in stored order.
func By(s *store.Store, creatorID string) ([]Portfolio, error) {
	return Portfolios(s).Filter(func(p Portfolio) bool { return p.Creator.ID == creatorID })
}

// =========================
// Handlers
// =========================

// CreatePortfolio - the protected creation form
func CreatePortfolio(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		Title       string `json:"title"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	u, signedIn, err := session.Current(store.Conn)
	if err != nil || !signedIn {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}

	p, err := Add(store.Conn, u, req.Title, req.Category, req.Description, req.Image)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	_ = alerts.Notify(store.Conn, u.ID, alerts.KindPortfolio,
		"Portfolio created!", "Your work has been published.", p.ID)

	return c.JSON(http.StatusCreated, echo.Map{"portfolio": p})
}

// GetAllPortfolios returns every piece, optionally filtered by category
func GetAllPortfolios(c echo.Context) error {
	category := c.QueryParam("category")
	items, err := Portfolios(store.Conn).Filter(func(p Portfolio) bool {
		return category == "" || p.Category == category
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load portfolios"})
	}
	return c.JSON(http.StatusOK, echo.Map{"portfolios": items})
}

// GetPortfolio returns one piece
func GetPortfolio(c echo.Context) error {
	p, found, err := Portfolios(store.Conn).Find(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load portfolio"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "portfolio not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"portfolio": p})
}
