package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"creatorlane/internal/alerts"
	"creatorlane/internal/config"
	"creatorlane/internal/marketplace"
	"creatorlane/internal/messaging"
	mware "creatorlane/internal/middleware"
	"creatorlane/internal/portfolio"
	"creatorlane/internal/profile"
	"creatorlane/internal/session"
	"creatorlane/internal/store"
)

func main() {
	config.Load()
	setupLogger(config.LogLevel())

	// Initialize the record store
	store.Init()
	defer store.Conn.Close()

	if n, err := marketplace.SeedServices(store.Conn); err != nil {
		log.Warn().Err(err).Msg("Failed to seed services")
	} else if n > 0 {
		log.Info().Int("count", n).Msg("Seeded featured services")
	}
	if n, err := portfolio.SeedPortfolios(store.Conn); err != nil {
		log.Warn().Err(err).Msg("Failed to seed portfolios")
	} else if n > 0 {
		log.Info().Int("count", n).Msg("Seeded featured portfolios")
	}

	stopRelay := messaging.StartRelay(store.Conn)
	defer stopRelay()

	e := echo.New()
	e.HideBanner = true

	// Basic middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "creatorlane"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Public routes
	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", session.SignupHandler)
	authGroup.POST("/login", session.LoginHandler)

	e.GET("/portfolios", portfolio.GetAllPortfolios)
	e.GET("/portfolio/:id", portfolio.GetPortfolio)
	e.GET("/marketplace/services", marketplace.GetAllServices)
	e.GET("/marketplace/services/:id", marketplace.GetService)
	e.GET("/marketplace/services/:id/reviews", marketplace.GetServiceReviews)
	e.GET("/profile/:userId", profile.GetPublicProfile)

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWTMiddleware)

	api.GET("/auth/me", session.Me)
	api.POST("/auth/logout", session.LogoutHandler)

	api.GET("/dashboard", profile.Dashboard)

	api.GET("/messages", messaging.ListConversations)
	api.GET("/conversation/:id", messaging.GetConversation)
	api.POST("/conversation/:id/messages", messaging.SendMessage)
	api.POST("/conversation/:id/read", messaging.MarkRead)
	api.GET("/conversation/:id/ws", messaging.ConversationWS)

	api.GET("/hire/:creatorId", marketplace.GetHireForm)
	api.POST("/hire/:creatorId", marketplace.SubmitHire)
	api.POST("/payment/:orderId", marketplace.PayOrder)

	api.GET("/marketplace/orders/me", marketplace.GetUserOrders)
	api.GET("/marketplace/bookings/me", marketplace.GetUserBookings)
	api.GET("/marketplace/orders/:id", marketplace.GetOrder)
	api.POST("/marketplace/orders/:id/complete", marketplace.MarkOrderComplete)

	api.POST("/write-review/:serviceId", marketplace.CreateReview)

	api.GET("/notifications", alerts.ListNotifications)
	api.POST("/notifications/:id/read", alerts.MarkNotificationRead)

	api.POST("/create-portfolio", portfolio.CreatePortfolio, mware.RequireRoles("creator", "both"))
	api.POST("/marketplace/services", marketplace.CreateService, mware.RequireRoles("creator", "both"))
	api.GET("/marketplace/services/me", marketplace.GetUserServices, mware.RequireRoles("creator", "both"))

	// Unknown paths answer JSON like everything else
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found", "redirect": "/"})
	})

	// Start server
	go func() {
		if err := e.Start(":" + config.Port()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
