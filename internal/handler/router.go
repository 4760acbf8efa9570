package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
	"shareit/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth    *api.AuthHandler
	User    *api.UserHandler
	Item    *api.ItemHandler
	Booking *api.BookingHandler
}

func NewHandlers(auth *api.AuthHandler, user *api.UserHandler, item *api.ItemHandler, booking *api.BookingHandler) Handlers {
	return Handlers{Auth: auth, User: user, Item: item, Booking: booking}
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	setupMiddleware(engine, cfg, m)
	setupRoutes(engine, cfg, h, authMiddleware, m)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, m *metrics.Metrics) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(slog.Default()))
	if cfg.Metrics.Enabled {
		engine.Use(middleware.MetricsMiddleware(m))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, m *metrics.Metrics) {
	engine.GET("/health", healthCheck)
	if cfg.Metrics.Enabled {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// limiter runs after auth so that authenticated callers get their own bucket
	authed := []gin.HandlerFunc{authMiddleware.RequireAuth()}
	public := []gin.HandlerFunc{}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit)
		authed = append(authed, limiter.Middleware())
		public = append(public, limiter.Middleware())
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: public},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh, Mw: public},
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout, Mw: authed},
			})
		}

		users := apiGroup.Group("/users")
		{
			addRoutes(users, []route{
				{Method: http.MethodPost, Path: "", Handler: h.User.Register, Mw: public},
				{Method: http.MethodGet, Path: "/me", Handler: h.User.Me, Mw: authed},
				{Method: http.MethodPatch, Path: "/me", Handler: h.User.UpdateMe, Mw: authed},
			})
		}

		items := apiGroup.Group("/items")
		{
			addRoutes(items, []route{
				{Method: http.MethodGet, Path: "/search", Handler: h.Item.Search, Mw: public},
				{Method: http.MethodPost, Path: "", Handler: h.Item.Create, Mw: authed},
				{Method: http.MethodGet, Path: "", Handler: h.Item.ListMine, Mw: authed},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Item.Get, Mw: authed},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Item.Update, Mw: authed},
				{Method: http.MethodPost, Path: "/:id/comments", Handler: h.Item.AddComment, Mw: authed},
			})
		}

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: authed},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListByBooker, Mw: authed},
				{Method: http.MethodGet, Path: "/owner", Handler: h.Booking.ListByOwner, Mw: authed},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get, Mw: authed},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Booking.Decide, Mw: authed},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			chain := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
			h = chainHandlers(chain...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
