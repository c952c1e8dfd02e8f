// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/dto"
	"candlepin/src/app/http/handler"
	"candlepin/src/app/http/translator"
	"candlepin/src/app/manifest"
	"candlepin/src/app/middleware"
	"candlepin/src/app/translate"
	"candlepin/src/core/ports"
	"candlepin/src/core/usecase"
	"candlepin/src/infra/config"
)

// Deps are the adapters the server is built on.
type Deps struct {
	Repo       ports.Repository
	Events     ports.EventPublisher
	Hasher     ports.PasswordHasher
	Translator *translate.ModelTranslator
}

// Translators returns a registry holding the API and manifest translators.
func Translators() *translate.ModelTranslator {
	return manifest.RegisterAll(translator.New())
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	userService *usecase.UserService

	healthHandler        *handler.HealthHandler
	ownerHandler         *handler.OwnerHandler
	productHandler       *handler.ProductHandler
	consumerHandler      *handler.ConsumerHandler
	poolHandler          *handler.PoolHandler
	activationKeyHandler *handler.ActivationKeyHandler
	accessHandler        *handler.AccessHandler
	jobHandler           *handler.JobHandler
	importHandler        *handler.ImportHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, deps Deps) (*Server, error) {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	mt := deps.Translator
	if mt == nil {
		mt = Translators()
	}

	router := gin.New()
	repo, events := deps.Repo, deps.Events

	healthService := usecase.NewHealthService(repo, log)
	statusService := usecase.NewStatusService(healthService, cfg.Status.Version, cfg.Status.Release, cfg.Status.Standalone)
	ownerService := usecase.NewOwnerService(repo, events, log)
	productService := usecase.NewProductService(repo, events, log)
	contentService := usecase.NewContentService(repo, events, log)
	poolService := usecase.NewPoolService(repo, events, log)
	entitlementService := usecase.NewEntitlementService(repo, events, log)
	consumerService := usecase.NewConsumerService(repo, entitlementService, events, log)
	keyService := usecase.NewActivationKeyService(repo, events, log)
	userService := usecase.NewUserService(repo, deps.Hasher, events, log)
	roleService := usecase.NewRoleService(repo, events, log)
	jobService := usecase.NewJobService(repo, log)
	eventService := usecase.NewEventService(repo)
	exportService := usecase.NewExportService(repo, manifest.NewExporter(mt, cfg.Status.Version), events, log)
	importService := usecase.NewImportService(repo, manifest.NewImporter(mt), entitlementService, events, log)

	s := &Server{
		cfg:                  cfg,
		log:                  log,
		router:               router,
		userService:          userService,
		healthHandler:        handler.NewHealthHandler(healthService, statusService),
		ownerHandler:         handler.NewOwnerHandler(ownerService, poolService, mt),
		productHandler:       handler.NewProductHandler(productService, contentService, mt),
		consumerHandler:      handler.NewConsumerHandler(consumerService, entitlementService, exportService, mt),
		poolHandler:          handler.NewPoolHandler(poolService, entitlementService, mt),
		activationKeyHandler: handler.NewActivationKeyHandler(keyService, mt),
		accessHandler:        handler.NewAccessHandler(userService, roleService, mt),
		jobHandler:           handler.NewJobHandler(jobService, eventService, mt),
		importHandler:        handler.NewImportHandler(importService, mt),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s, nil
}

// setupMiddleware configures global middleware. Recovery goes first so it
// catches panics from everything after it.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Logging(s.log))
	s.router.Use(middleware.RateLimit(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	root := s.router.Group("/candlepin")
	root.GET("/status", s.healthHandler.Status)

	api := root.Group("")
	api.Use(middleware.BasicAuth(s.userService, s.log))
	{
		api.GET("/owners", s.ownerHandler.List)
		api.POST("/owners", s.ownerHandler.Create)
		api.GET("/owners/:key", s.ownerHandler.Get)
		api.PUT("/owners/:key", s.ownerHandler.Update)
		api.GET("/owners/:key/environments", s.ownerHandler.ListEnvironments)
		api.POST("/owners/:key/environments", s.ownerHandler.CreateEnvironment)
		api.GET("/owners/:key/pools", s.ownerHandler.ListPools)
		api.POST("/owners/:key/pools", s.ownerHandler.CreatePool)
		api.GET("/owners/:key/subscriptions", s.ownerHandler.ListSubscriptions)
		api.POST("/owners/:key/imports", s.importHandler.Import)
		api.GET("/owners/:key/consumers", s.consumerHandler.ListForOwner)

		api.GET("/owners/:key/products", s.productHandler.List)
		api.POST("/owners/:key/products", s.productHandler.Create)
		api.GET("/owners/:key/products/:product_id", s.productHandler.Get)
		api.PUT("/owners/:key/products/:product_id", s.productHandler.Update)
		api.GET("/owners/:key/content", s.productHandler.ListContent)
		api.POST("/owners/:key/content", s.productHandler.CreateContent)
		api.GET("/owners/:key/content/:content_id", s.productHandler.GetContent)

		api.GET("/owners/:key/activation_keys", s.activationKeyHandler.ListForOwner)
		api.POST("/owners/:key/activation_keys", s.activationKeyHandler.Create)
		api.GET("/activation_keys/:id", s.activationKeyHandler.Get)
		api.POST("/activation_keys/:id/pools/:pool_id", s.activationKeyHandler.AddPool)
		api.DELETE("/activation_keys/:id/pools/:pool_id", s.activationKeyHandler.RemovePool)
		api.PUT("/activation_keys/:id/content_overrides", s.activationKeyHandler.SetContentOverrides)

		api.POST("/consumers", s.consumerHandler.Register)
		api.GET("/consumers/:uuid", s.consumerHandler.Get)
		api.PUT("/consumers/:uuid", s.consumerHandler.Update)
		api.DELETE("/consumers/:uuid", s.consumerHandler.Delete)
		api.GET("/consumers/:uuid/entitlements", s.consumerHandler.Entitlements)
		api.POST("/consumers/:uuid/entitlements", s.consumerHandler.Bind)
		api.GET("/consumers/:uuid/guestids", s.consumerHandler.GuestIDs)
		api.GET("/consumers/:uuid/export", s.consumerHandler.Export)

		api.GET("/pools/:id", s.poolHandler.GetPool)
		api.GET("/entitlements/:id", s.poolHandler.GetEntitlement)
		api.DELETE("/entitlements/:id", s.poolHandler.RevokeEntitlement)

		api.GET("/jobs", s.jobHandler.List)
		api.GET("/jobs/:id", s.jobHandler.Get)
		api.PUT("/jobs/:id/cancel", s.jobHandler.Cancel)
		api.GET("/events", s.jobHandler.Events)
	}

	admin := api.Group("")
	admin.Use(middleware.SuperAdmin())
	{
		admin.POST("/users", s.accessHandler.CreateUser)
		admin.GET("/users/:username", s.accessHandler.GetUser)
		admin.GET("/roles", s.accessHandler.ListRoles)
		admin.POST("/roles", s.accessHandler.CreateRole)
		admin.GET("/roles/:id", s.accessHandler.GetRole)
		admin.POST("/roles/:id/users/:username", s.accessHandler.AddRoleUser)
		admin.DELETE("/roles/:id/users/:username", s.accessHandler.RemoveRoleUser)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts
// down gracefully.
func (s *Server) Run() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// WaitForReady polls /health until it answers 200 or the timeout passes.
func (s *Server) WaitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", s.cfg.Server.Addr()))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}
