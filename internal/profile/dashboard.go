package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"creatorlane/internal/marketplace"
	"creatorlane/internal/messaging"
	"creatorlane/internal/portfolio"
	"creatorlane/internal/store"
)

// ===== Dashboard =====

// Dashboard aggregates everything the signed-in user cares about: their
// published work, their listings, the bookings they received and the orders
// they placed, plus the unread message count for the badge.
func Dashboard(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	portfolios, err := portfolio.By(store.Conn, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load portfolios"})
	}
	services, err := marketplace.ServicesBy(store.Conn, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load services"})
	}
	orders, err := marketplace.OrdersFor(store.Conn, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	bookings, err := marketplace.BookingsFor(store.Conn, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	unread, err := messaging.UnreadCount(store.Conn, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load messages"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"portfolios": portfolios,
		"services":   services,
		"orders":     orders,
		"bookings":   bookings,
		"unread":     unread,
	})
}
