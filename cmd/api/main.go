package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homefix-app/homefix/internal/admin"
	"github.com/homefix-app/homefix/internal/alerts"
	"github.com/homefix-app/homefix/internal/auth"
	"github.com/homefix-app/homefix/internal/config"
	"github.com/homefix-app/homefix/internal/db"
	"github.com/homefix-app/homefix/internal/logging"
	"github.com/homefix-app/homefix/internal/marketplace"
	"github.com/homefix-app/homefix/internal/metrics"
	appmw "github.com/homefix-app/homefix/internal/middleware"
	"github.com/homefix-app/homefix/internal/notify"
	"github.com/homefix-app/homefix/internal/payment"
	"github.com/homefix-app/homefix/internal/stripe"
	"github.com/homefix-app/homefix/internal/user"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db.Init()
	alerts.Init()
	if err := stripe.ConfigureFromEnv(); err != nil {
		logger.Warn().Err(err).Msg("payments disabled until gateway is configured")
	}
	if err := alerts.ConfigurePlunkFromEnv(); err != nil {
		logger.Warn().Err(err).Msg("transactional email disabled until mailer is configured")
	}
	metrics.Register()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			metrics.IncHTTP(c.Path())
			return next(c)
		}
	})

	// Health and observability
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/ready", func(c echo.Context) error {
		if err := db.Conn.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "database unavailable"})
		}
		return c.String(http.StatusOK, "ready")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public auth routes, rate limited against credential stuffing
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(10)))
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)

	// Public discovery
	e.GET("/services", marketplace.GetServices)
	e.GET("/services/:id", marketplace.GetServiceByID)
	e.GET("/users/:id/profile", user.GetPublicProfile)

	// Authenticated group
	g := e.Group("")
	g.Use(appmw.JWTMiddleware)

	g.GET("/auth/profile", auth.GetProfile)
	g.PUT("/auth/profile", auth.UpdateProfile)

	// Listings (provider writes)
	g.POST("/services", marketplace.CreateService, appmw.RequireRoles("service_provider"))
	g.GET("/services/provider/services", marketplace.GetProviderServices, appmw.RequireRoles("service_provider"))
	g.PUT("/services/:id", marketplace.UpdateService, appmw.RequireRoles("service_provider"))
	g.DELETE("/services/:id", marketplace.DeleteService, appmw.RequireRoles("service_provider"))

	// Bookings
	g.POST("/bookings", marketplace.CreateBooking, appmw.RequireRoles("homeowner"))
	g.GET("/bookings", marketplace.GetBookings)
	g.GET("/bookings/:id", marketplace.GetBookingByID)
	g.PATCH("/bookings/:id/status", marketplace.UpdateBookingStatus)
	g.POST("/bookings/:id/review", marketplace.AddReview)
	g.POST("/bookings/payment-intent", payment.BookingPaymentIntent)

	// Payments
	g.POST("/payments/create-payment-intent", payment.CreatePaymentIntent)
	g.POST("/payments/confirm", payment.ConfirmPayment)
	g.GET("/payments/history", payment.GetPaymentHistory)

	// Notifications
	g.GET("/notifications", notify.GetNotifications)
	g.POST("/notifications", notify.SendNotification, appmw.AdminGuard)
	g.PUT("/notifications/:id/read", notify.MarkAsRead)
	g.GET("/notifications/ws", notify.NotificationsWS)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(appmw.JWTMiddleware)
	adminGroup.Use(appmw.AdminGuard)
	adminGroup.GET("/stats", admin.Stats)
	adminGroup.GET("/users", admin.ListUsers)
	adminGroup.POST("/users/:id/suspend", admin.SuspendUser)
	adminGroup.POST("/users/:id/activate", admin.ActivateUser)
	adminGroup.GET("/bookings", admin.ListBookings)

	logger.Info().Str("port", cfg.Port).Msg("api server listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
