package http

import (
	"log/slog"
	"time"

	"github.com/eventlyhq/evently/internal/cache"
	"github.com/eventlyhq/evently/internal/http/handlers"
	"github.com/eventlyhq/evently/internal/http/middlewares"
	"github.com/eventlyhq/evently/internal/notifications"
	"github.com/eventlyhq/evently/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// CatalogRepository is everything the event surface needs from the catalog.
type CatalogRepository interface {
	handlers.EventsRepository
	handlers.SeatReserver
}

type Deps struct {
	Env string
	Log *slog.Logger

	Sessions handlers.SessionStore
	JWT      interface {
		handlers.TokenIssuer
		middlewares.TokenVerifier
	}

	Events   CatalogRepository
	Bookings handlers.BookingsRepository
	Notifier notifications.Notifier

	Prom      *observability.Prom
	PromReg   *prometheus.Registry
	ListCache *cache.Cache

	Ping func() error

	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	if d.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("evently"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	// health + metrics

	h := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.PromReg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.PromReg, promhttp.HandlerOpts{})))
	}

	// wire up handlers

	authHandler := handlers.NewAuthHandler(d.Sessions, d.JWT)
	eventsHandler := handlers.NewEventsHandler(d.Events, d.ListCache)
	bookingsHandler := handlers.NewBookingsHandler(d.Events, d.Bookings, d.Notifier, d.Prom, d.ListCache)

	authMW := middlewares.NewAuthMiddleware(d.JWT)
	limiter := middlewares.NewRateLimiter(d.RateLimit, d.RateWindow)

	// credentials endpoints are rate limited by IP
	authGroup := r.Group("/auth", limiter.Middleware(middlewares.KeyByIP))
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authMW.RequireAuth(), authHandler.Logout)
	authGroup.GET("/me", authMW.RequireAuth(), authHandler.Me)

	// public catalog reads
	r.GET("/events", eventsHandler.ListEvents)
	r.GET("/events/:id", eventsHandler.GetEventById)

	// booking requires an authenticated caller
	r.POST("/events/:id/book",
		authMW.RequireAuth(),
		limiter.Middleware(middlewares.KeyByUserOrIP),
		bookingsHandler.Book,
	)
	r.GET("/me/bookings", authMW.RequireAuth(), bookingsHandler.ListMine)

	// admin catalog management
	admin := r.Group("/events", authMW.RequireAuth(), authMW.RequireRole("admin"))
	admin.POST("", eventsHandler.CreateEvent)
	admin.PUT("/:id", eventsHandler.UpdateEvent)
	admin.DELETE("/:id", eventsHandler.DeleteEvent)

	return r
}
