package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"creatorlane/internal/marketplace"
	"creatorlane/internal/portfolio"
	"creatorlane/internal/session"
	"creatorlane/internal/store"
)

// GET /profile/:userId
//
// A profile is assembled from whatever the user has published: portfolio
// pieces, service listings and the reviews those earned. There is no user
// directory; identity only exists where it was embedded in records, so an
// id with no published work and no session match is a not-found.
func GetPublicProfile(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing user id"})
	}

	portfolios, err := portfolio.By(store.Conn, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load portfolios"})
	}
	services, err := marketplace.ServicesBy(store.Conn, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load services"})
	}
	reviews, err := marketplace.ReviewsForProvider(store.Conn, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}

	resp := echo.Map{"id": userID}
	switch {
	case len(portfolios) > 0:
		resp["name"] = portfolios[0].Creator.Name
		resp["avatar"] = portfolios[0].Creator.Avatar
	case len(services) > 0:
		resp["name"] = services[0].Provider.Name
		resp["avatar"] = services[0].Provider.Avatar
	default:
		u, signedIn, err := session.Current(store.Conn)
		if err != nil || !signedIn || u.ID != userID {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		resp["name"] = u.Name
		resp["avatar"] = u.Avatar
	}

	resp["portfolios"] = portfolios
	resp["services"] = services
	resp["reviews"] = reviews
	return c.JSON(http.StatusOK, resp)
}
