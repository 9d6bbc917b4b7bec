package marketplace

import (
	"errors"
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

// Reviews binds the reviews collection.
func Reviews(s *store.Store) store.Keyed[Review] {
	return store.OpenKeyed(s, store.KeyReviews, func(r Review) string { return r.ID })
}

// AddReview validates and appends a review of a service by author.
func AddReview(s *store.Store, author user.User, serviceID string, rating int, content string) (Review, error) {
	if content == "" {
		return Review{}, fmt.Errorf("review content is required")
	}
	if rating < 1 || rating > 5 {
		return Review{}, fmt.Errorf("rating must be between 1 and 5")
	}

	svc, found, err := Services(s).Find(serviceID)
	if err != nil {
		return Review{}, err
	}
	if !found {
		return Review{}, ErrServiceNotFound
	}

	review := Review{
		ID:           uuid.New().String(),
		ServiceID:    svc.ID,
		ServiceName:  svc.Title,
		ProviderID:   svc.Provider.ID,
		ProviderName: svc.Provider.Name,
		Rating:       rating,
		Content:      content,
		Author:       author.Name,
		AuthorID:     author.ID,
		Avatar:       author.Avatar,
		Date:         time.Now().UTC(),
	}
	if err := Reviews(s).Append(review); err != nil {
		return Review{}, err
	}
	return review, nil
}

// ReviewsForService returns a service's reviews in stored order.
func ReviewsForService(s *store.Store, serviceID string) ([]Review, error) {
	return Reviews(s).Filter(func(r Review) bool { return r.ServiceID == serviceID })
}

// ReviewsForProvider returns every review across a creator's services.
func ReviewsForProvider(s *store.Store, providerID string) ([]Review, error) {
	return Reviews(s).Filter(func(r Review) bool { return r.ProviderID == providerID })
}

// =========================
// Handlers
// =========================

// CreateReview allows a client to rate and review a service
func CreateReview(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	serviceID := c.Param("serviceId")
	if serviceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing service id"})
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	author, signedIn, err := session.Current(store.Conn)
	if err != nil || !signedIn {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}

	review, err := AddReview(store.Conn, author, serviceID, req.Rating, req.Content)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			// unknown service falls back to the dashboard view
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error(), "redirect": "/dashboard"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	_ = alerts.Notify(store.Conn, review.ProviderID, alerts.KindReview,
		"New review", author.Name+" reviewed "+review.ServiceName, review.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"review":   review,
		"message":  "Review submitted. Thank you for your feedback.",
		"redirect": "/service/" + serviceID,
	})
}

// GetServiceReviews returns reviews for one listing
func GetServiceReviews(c echo.Context) error {
	reviews, err := ReviewsForService(store.Conn, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}
