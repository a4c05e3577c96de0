package api

import (
	"fmt"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace/internal/api/handler"
	"github.com/freelancehub/marketplace/internal/api/middleware"
	"github.com/freelancehub/marketplace/internal/api/view"
	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
	"github.com/freelancehub/marketplace/internal/pkg/metrics"
)

// Dependencies is everything the router needs to serve requests.
type Dependencies struct {
	Auth      ports.AuthService
	Directory ports.DirectoryService
	Projects  ports.ProjectService
	Reviews   ports.ReviewService

	// Readiness lists the dependencies probed by GET /health/ready.
	Readiness map[string]handler.Pinger

	SessionCookie middleware.SessionCookie

	// Registry backs GET /metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if err := metrics.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	httpMetrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "freelancehub",
		Subsystem:  "http",
		Registerer: reg,
		Skipper:    skipProbes,
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("http metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.Session(deps.Auth, deps.SessionCookie, deps.Logger))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(httpMetrics)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.SessionCookie)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	directoryHandler := handler.NewDirectoryHandler(deps.Directory, deps.Reviews)

	// --- Account routes ---
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Public pages ---
	e.GET("/", projectHandler.Index)
	e.GET("/projects", projectHandler.List)
	e.GET("/search", directoryHandler.Search)
	e.POST("/search", directoryHandler.Search)
	e.GET("/user/:username", directoryHandler.Profile)
	e.POST("/user/:username", directoryHandler.AddReview)

	// --- Publishing (freelancers only) ---
	publisherOnly := []echo.MiddlewareFunc{
		middleware.RequireSession("Please log in first!"),
		middleware.RequireRole("/", "Only freelancers can publish projects.", domain.ProjectPublisherRole),
	}
	e.GET("/add_project", projectHandler.NewForm, publisherOnly...)
	e.POST("/add_project", projectHandler.Create, publisherOnly...)

	// --- Probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))

	return e, nil
}

func skipProbes(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health")
}
