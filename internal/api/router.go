package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinemahub/catalog-api/internal/api/handler"
	"github.com/cinemahub/catalog-api/internal/api/middleware"
	"github.com/cinemahub/catalog-api/internal/core/domain"
	"github.com/cinemahub/catalog-api/internal/core/ports"
	"github.com/cinemahub/catalog-api/internal/core/service"
	"github.com/cinemahub/catalog-api/internal/infrastructure/config"
	mongouser "github.com/cinemahub/catalog-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, events ports.EventSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongouser.NewUserRepository(db)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	issuer := service.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, hasher, issuer, events, log)
	authHandler := handler.NewAuthHandler(authService)
	guard := middleware.Authenticate(issuer, userRepo)

	// --- Auth routes (no prior token required) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/login/access-token", authHandler.Refresh)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- Guarded routes ---
	profile := e.Group("/auth/profile", guard)
	profile.GET("", authHandler.Profile)
	profile.PUT("/password", authHandler.ChangePassword)

	admin := e.Group("/admin", guard, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
