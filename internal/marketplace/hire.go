package marketplace

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"creatorlane/internal/alerts"
	"creatorlane/internal/config"
	"creatorlane/internal/messaging"
	"creatorlane/internal/session"
	"creatorlane/internal/store"
	"creatorlane/internal/user"
)

// ErrServiceNotFound means the hire request named an unknown listing.
var ErrServiceNotFound = errors.New("service not found")

// HireRequest is the booking form.
type HireRequest struct {
	ServiceID   string `json:"serviceId"`
	Description string `json:"description"`
	Budget      string `json:"budget"`
	Deadline    string `json:"deadline"`
}

// Hire creates the order/booking pair and bootstraps the conversation with
// the creator in one transaction, so a crash can never leave an order without
// its booking. The pair shares a single id.
func Hire(s *store.Store, client user.User, req HireRequest) (Order, error) {
	if req.ServiceID == "" || req.Description == "" {
		return Order{}, fmt.Errorf("service and description are required")
	}

	svc, found, err := Services(s).Find(req.ServiceID)
	if err != nil {
		return Order{}, err
	}
	if !found {
		return Order{}, ErrServiceNotFound
	}
	if svc.Provider.ID == client.ID {
		return Order{}, fmt.Errorf("you cannot book your own service")
	}

	time.Sleep(config.SimulatedDelay())

	budget := req.Budget
	if budget == "" {
		if svc.Price > 0 {
			budget = "$" + strconv.FormatFloat(svc.Price, 'f', -1, 64)
		} else {
			budget = "Free trial"
		}
	}
	deadline := req.Deadline
	if deadline == "" {
		deadline = "To be discussed"
	}

	order := Order{
		ID:            uuid.New().String(),
		ClientID:      client.ID,
		ClientName:    client.Name,
		ClientAvatar:  client.Avatar,
		CreatorID:     svc.Provider.ID,
		CreatorName:   svc.Provider.Name,
		CreatorAvatar: svc.Provider.Avatar,
		ServiceID:     svc.ID,
		ServiceName:   svc.Title,
		Description:   req.Description,
		Budget:        budget,
		Deadline:      deadline,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	err = s.Tx(func(tx *store.Tx) error {
		if err := store.TxAppend(tx, store.KeyOrders, order); err != nil {
			return err
		}
		if err := store.TxAppend(tx, store.KeyBookings, Booking(order)); err != nil {
			return err
		}
		_, err := messaging.EnsureConversationTx(tx,
			messaging.Participant{ID: client.ID, Name: client.Name, Avatar: client.Avatar},
			messaging.Participant{ID: svc.Provider.ID, Name: svc.Provider.Name, Avatar: svc.Provider.Avatar},
			client.Name+" sent a booking request",
		)
		return err
	})
	if err != nil {
		return Order{}, err
	}

	_ = alerts.Notify(s, order.CreatorID, alerts.KindBooking,
		"New booking request", client.Name+" requested "+svc.Title, order.ID)
	return order, nil
}

// =========================
// Handlers
// =========================

// GetHireForm - creator identity plus their services, for the booking form
func GetHireForm(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	creatorID := c.Param("creatorId")
	services, err := ServicesBy(store.Conn, creatorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load services"})
	}
	if len(services) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "creator has no services"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"creator":  services[0].Provider,
		"services": services,
	})
}

// SubmitHire - client sends a booking request to a creator
func SubmitHire(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req HireRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	client, signedIn, err := session.Current(store.Conn)
	if err != nil || !signedIn {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}

	order, err := Hire(store.Conn, client, req)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		if errors.Is(err, store.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"order":    order,
		"message":  "Booking request sent. The creator has been notified.",
		"redirect": "/payment/" + order.ID,
	})
}
