package marketplace

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"creatorlane/internal/session"
	"creatorlane/internal/store"
	"creatorlane/internal/user"
)

// Services binds the user-created listings collection.
func Services(s *store.Store) store.Keyed[Service] {
	return store.OpenKeyed(s, store.KeyServices, func(svc Service) string { return svc.ID })
}

// AddService validates and appends a listing owned by u.
func AddService(s *store.Store, u user.User, title, description, category string, price float64, freeOffer bool) (Service, error) {
	if !u.CanList() {
		return Service{}, fmt.Errorf("only creators can list services")
	}
	if title == "" || category == "" {
		return Service{}, fmt.Errorf("title and category are required")
	}
	svc := Service{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Category:    category,
		Price:       price,
		FreeOffer:   freeOffer,
		Provider:    Provider{ID: u.ID, Name: u.Name, Avatar: u.Avatar},
		CreatedAt:   time.Now().UTC(),
	}
	if err := Services(s).Append(svc); err != nil {
		return Service{}, err
	}
	return svc, nil
}

// ServicesBy returns the listings owned by one creator, in stored order.
func ServicesBy(s *store.Store, creatorID string) ([]Service, error) {
	return Services(s).Filter(func(svc Service) bool { return svc.Provider.ID == creatorID })
}

// =========================
// Handlers
// =========================

// CreateService allows a creator to list a new service
func CreateService(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		FreeOffer   bool    `json:"freeOffer"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	u, signedIn, err := session.Current(store.Conn)
	if err != nil || !signedIn {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}

	svc, err := AddService(store.Conn, u, req.Title, req.Description, req.Category, req.Price, req.FreeOffer)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"service_id": svc.ID,
		"message":    "service created successfully",
	})
}

// GetAllServices returns every listing, optionally filtered by category
func GetAllServices(c echo.Context) error {
	category := c.QueryParam("category")
	services, err := Services(store.Conn).Filter(func(svc Service) bool {
		return category == "" || svc.Category == category
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load services"})
	}
	return c.JSON(http.StatusOK, echo.Map{"services": services})
}

// GetService returns one listing with its reviews
func GetService(c echo.Context) error {
	id := c.Param("id")
	svc, found, err := Services(store.Conn).Find(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load service"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
	}

	reviews, err := ReviewsForService(store.Conn, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"service": svc, "reviews": reviews})
}

// GetUserServices returns the current user's own listings
func GetUserServices(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	services, err := ServicesBy(store.Conn, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load services"})
	}
	return c.JSON(http.StatusOK, echo.Map{"services": services})
}
