package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/handler"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/middleware"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/policy"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/internal/repository"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/apperror"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/config"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/database"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/jwtutil"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/pkg/logger"
	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck
	zap.ReplaceGlobals(log)

	log.Info("Starting service...", cfg.LogConfig()...)

	// Open the database and migrate the schema. The handle is owned here and
	// injected into every component that needs it.
	db, err := database.Open(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connection established")

	// Wire stores, token service and handlers
	tenantStore := repository.NewTenantStore(db)
	userStore := repository.NewUserStore(db)
	projectStore := repository.NewProjectStore(db)

	tokens := jwtutil.NewService(&cfg.JWT)

	authHandler := handler.NewAuthHandler(tenantStore, userStore, tokens)
	tenantHandler := handler.NewTenantHandler(tenantStore)
	userHandler := handler.NewUserHandler(userStore)
	projectHandler := handler.NewProjectHandler(projectStore)
	healthHandler := handler.NewHealthHandler(cfg.Server.Env)

	authn := middleware.NewAuthenticator(tokens, userStore, tenantStore)

	if count, err := tenantStore.CountActive(); err == nil {
		prometheus.UpdateActiveTenants(count)
	}

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = apperror.EchoErrorHandler(log, cfg.Server.Env)

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", healthHandler.Metrics)

	api := e.Group("/api")

	// Authentication routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authn.Authenticate)
	auth.POST("/refresh", authHandler.Refresh, authn.Authenticate)

	// Tenant management
	tenants := api.Group("/tenants", authn.Authenticate)
	tenants.GET("", tenantHandler.List, middleware.RequireRole(policy.TenantList))
	tenants.POST("", tenantHandler.Create, middleware.RequireRole(policy.TenantCreate))
	tenants.GET("/:id", tenantHandler.Get, middleware.RequireRole(policy.TenantGet))
	tenants.PUT("/:id", tenantHandler.Update, middleware.RequireRole(policy.TenantUpdate))
	tenants.DELETE("/:id", tenantHandler.Delete, middleware.RequireRole(policy.TenantDelete))

	// User management
	users := api.Group("/users", authn.Authenticate)
	users.PUT("/me", userHandler.UpdateMe)
	users.GET("", userHandler.List, middleware.RequireRole(policy.UserList))
	users.POST("", userHandler.Create, middleware.RequireRole(policy.UserCreate))
	users.GET("/:id", userHandler.Get, middleware.RequireRole(policy.UserGet))
	users.PUT("/:id", userHandler.Update, middleware.RequireRole(policy.UserUpdate))
	users.DELETE("/:id", userHandler.Delete, middleware.RequireRole(policy.UserDelete))

	// Project management
	projects := api.Group("/projects", authn.Authenticate)
	projects.GET("", projectHandler.List, middleware.RequireRole(policy.ProjectList))
	projects.POST("", projectHandler.Create, middleware.RequireRole(policy.ProjectCreate))
	projects.GET("/:id", projectHandler.Get, middleware.RequireRole(policy.ProjectGet))
	projects.PUT("/:id", projectHandler.Update, middleware.RequireRole(policy.ProjectUpdate))
	projects.DELETE("/:id", projectHandler.Delete, middleware.RequireRole(policy.ProjectDelete))

	// Start server
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Block until a termination signal arrives, then drain in-flight
	// requests before closing the database.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
