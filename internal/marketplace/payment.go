package marketplace

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"creatorlane/internal/alerts"
	"creatorlane/internal/config"
	"creatorlane/internal/store"
)

// ErrOrderNotFound means the order id is not in the collection.
var ErrOrderNotFound = errors.New("order not found")

// Orders and Bookings bind the paired collections.
func Orders(s *store.Store) store.Keyed[Order] {
	return store.OpenKeyed(s, store.KeyOrders, func(o Order) string { return o.ID })
}

func Bookings(s *store.Store) store.Keyed[Booking] {
	return store.OpenKeyed(s, store.KeyBookings, func(b Booking) string { return b.ID })
}

// ConfirmPayment simulates the payment processor (fixed suspension, always
// succeeds), then flips the order and its booking to confirmed and stamps
// paidAt on both in one transaction, correlated by the shared id.
func ConfirmPayment(s *store.Store, orderID string) (Order, error) {
	return transition(s, orderID, StatusPending, StatusConfirmed, true)
}

// CompleteOrder advances a confirmed order to completed on both records.
func CompleteOrder(s *store.Store, orderID string) (Order, error) {
	return transition(s, orderID, StatusConfirmed, StatusCompleted, false)
}

func transition(s *store.Store, orderID, from, to string, stampPaid bool) (Order, error) {
	time.Sleep(config.SimulatedDelay())

	now := time.Now().UTC()
	var out Order
	apply := func(recs []Order) ([]Order, error) {
		for i, o := range recs {
			if o.ID != orderID {
				continue
			}
			if o.Status != from {
				return nil, fmt.Errorf("order is %s, expected %s", o.Status, from)
			}
			recs[i].Status = to
			if stampPaid {
				recs[i].PaidAt = &now
			}
			out = recs[i]
			return recs, nil
		}
		return nil, ErrOrderNotFound
	}

	err := s.Tx(func(tx *store.Tx) error {
		orders, err := store.TxGet(tx, store.KeyOrders, []Order(nil))
		if err != nil {
			return err
		}
		if orders, err = apply(orders); err != nil {
			return err
		}
		if err := store.TxSet(tx, store.KeyOrders, orders); err != nil {
			return err
		}

		bookings, err := store.TxGet(tx, store.KeyBookings, []Booking(nil))
		if err != nil {
			return err
		}
		if bookings, err = apply(bookings); err != nil {
			return err
		}
		return store.TxSet(tx, store.KeyBookings, bookings)
	})
	if err != nil {
		return Order{}, err
	}
	return out, nil
}

// FormatCardNumber groups digits by four, like the payment form does.
func FormatCardNumber(v string) string {
	digits := onlyDigits(v)
	var groups []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	out := strings.Join(groups, " ")
	if len(out) > 19 { // 4 groups of 4 plus 3 spaces
		out = out[:19]
	}
	return out
}

// FormatExpiry renders digits as MM/YY.
func FormatExpiry(v string) string {
	digits := onlyDigits(v)
	if len(digits) <= 2 {
		return digits
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits[:2] + "/" + digits[2:]
}

func onlyDigits(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =========================
// Handlers
// =========================

// PayOrder - client confirms payment for a pending order
func PayOrder(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("orderId")
	order, found, err := Orders(store.Conn).Find(orderID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": ErrOrderNotFound.Error()})
	}
	if order.ClientID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
	}

	var card struct {
		CardName   string `json:"cardName"`
		CardNumber string `json:"cardNumber"`
		Expiry     string `json:"expiry"`
		CVC        string `json:"cvc"`
	}
	if err := c.Bind(&card); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Free trials skip the card form entirely
	if !order.FreeTrial() {
		if card.CardName == "" || card.CardNumber == "" || card.Expiry == "" || card.CVC == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing payment information"})
		}
	}

	paid, err := ConfirmPayment(store.Conn, orderID)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	_ = alerts.Notify(store.Conn, paid.ClientID, alerts.KindPayment,
		"Payment successful!", "Your booking has been confirmed.", paid.ID)
	_ = alerts.Notify(store.Conn, paid.CreatorID, alerts.KindPayment,
		"Booking confirmed", paid.ClientName+" paid for "+paid.ServiceName, paid.ID)

	return c.JSON(http.StatusOK, echo.Map{"order": paid})
}

// MarkOrderComplete - creator marks a confirmed booking as delivered
func MarkOrderComplete(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	orderID := c.Param("id")
	order, found, err := Orders(store.Conn).Find(orderID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": ErrOrderNotFound.Error()})
	}
	if order.CreatorID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	}

	done, err := CompleteOrder(store.Conn, orderID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	_ = alerts.Notify(store.Conn, done.ClientID, alerts.KindBooking,
		"Order completed", done.CreatorName+" completed "+done.ServiceName, done.ID)
	return c.JSON(http.StatusOK, echo.Map{"order": done})
}
