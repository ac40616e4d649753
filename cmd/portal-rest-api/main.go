// cmd/portal-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	// Europe/Berlin must resolve in minimal containers
	_ "time/tzdata"

	v1 "github.com/sommertheater/portal/internal/api/rest/v1"
	"github.com/sommertheater/portal/internal/bootstrap"
	"github.com/sommertheater/portal/internal/pkg/config"
	"github.com/sommertheater/portal/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	container, err := bootstrap.New(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Warn("failed to close database: ", err)
		}
	}()

	if err := container.Migrate(context.Background()); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, container, log)
}

// newRouter builds the gin engine with middleware, API routes and pages
func newRouter(cfg *config.RestConfig, c *bootstrap.Container, log logger.Logger) (*gin.Engine, error) {
	r := gin.Default()
	r.MaxMultipartMemory = 16 << 20

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{strings.TrimRight(cfg.Auth.BaseURL, "/")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	err := v1.SetupRoutes(r, v1.Services{
		Auth:         c.Auth,
		Members:      c.Members,
		Access:       c.Access,
		Onboarding:   c.Onboarding,
		Consent:      c.Consent,
		Measurements: c.Measurements,
		Dietary:      c.Dietary,
		Shows:        c.Shows,
		Gallery:      c.Gallery,
		Chronik:      c.Chronik,
		Posters:      c.Posters,
		Templates:    c.Templates,
		Rehearsals:   c.Rehearsals,
		Holidays:     c.Holidays,
		Finance:      c.Finance,
	}, v1.RouteSettings{
		Cookie: v1.CookieSettings{
			Name:   cfg.Auth.CookieName,
			Secure: strings.HasPrefix(cfg.Auth.BaseURL, "https://"),
		},
		Organization: cfg.Organization.Name,
		Location:     c.Location,
		Clock:        c.Clock,
		Ping:         c.Ping,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, c *bootstrap.Container, log logger.Logger) error {
	r, err := newRouter(cfg, c, log)
	if err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
