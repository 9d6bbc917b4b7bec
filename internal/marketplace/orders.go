package marketplace

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"creatorlane/internal/store"
)

// OrdersFor returns the orders a user placed as a client.
func OrdersFor(s *store.Store, clientID string) ([]Order, error) {
	return Orders(s).Filter(func(o Order) bool { return o.ClientID == clientID })
}

// BookingsFor returns the bookings a user received as a creator.
func BookingsFor(s *store.Store, creatorID string) ([]Booking, error) {
	return Bookings(s).Filter(func(b Booking) bool { return b.CreatorID == creatorID })
}

// GetUserOrders - orders the current user placed
func GetUserOrders(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orders, err := OrdersFor(store.Conn, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GetUserBookings - bookings the current user received
func GetUserBookings(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	bookings, err := BookingsFor(store.Conn, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// GetOrder - one order, visible to either party
func GetOrder(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	order, found, err := Orders(store.Conn).Find(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": ErrOrderNotFound.Error()})
	}
	if order.ClientID != uid && order.CreatorID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a party to this order"})
	}
	return c.JSON(http.StatusOK, echo.Map{"order": order})
}
