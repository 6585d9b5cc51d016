package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/david-mangena/e-commerce-site/internal/bookingapi"
	internalcli "github.com/david-mangena/e-commerce-site/internal/cli"
	"github.com/david-mangena/e-commerce-site/internal/config"
	"github.com/david-mangena/e-commerce-site/internal/database"
	"github.com/david-mangena/e-commerce-site/internal/handlers"
	"github.com/david-mangena/e-commerce-site/internal/models"
	"github.com/david-mangena/e-commerce-site/internal/observability"
	"github.com/david-mangena/e-commerce-site/internal/repository"
	"github.com/david-mangena/e-commerce-site/internal/services"
)

var version = "0.1.0"

// sandboxAdmin is the only account accepted by the sandbox booker
var sandboxAdmin = models.Credentials{Username: "admin", Password: "password123"}

// buildServerDependencies creates all dependencies needed for the sandbox servers
func buildServerDependencies(cfg config.ServerConfig, repo services.BookingRepository, logger *zap.Logger) (internalcli.ServerDependencies, error) {
	deps := internalcli.ServerDependencies{
		ServerConfig: cfg,
		Logger:       logger,
	}

	// Create service layer
	bookingService := services.NewBookingService(repo, services.NewTokenStore(), sandboxAdmin, logger.Named("booking"))
	cartService := services.NewCartService(cfg.PerformanceGlitchDelay, logger.Named("cart"))

	storefront, err := handlers.NewStorefrontHandler(cartService, logger.Named("storefront"))
	if err != nil {
		return deps, fmt.Errorf("failed to create storefront handler: %w", err)
	}
	deps.StorefrontHandler = storefront
	deps.BookerHandler = handlers.NewBookerRouter(bookingService, logger.Named("booker"))

	return deps, nil
}

// openBookingRepository returns the booking store selected by cfg and a
// function releasing it
func openBookingRepository(cfg config.ServerConfig, logger *zap.Logger) (services.BookingRepository, func(), error) {
	if cfg.BookingStore != config.BookingStorePostgres {
		return repository.NewMemoryBookingRepository(), func() {}, nil
	}

	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("missing required PostgreSQL configuration: %w", err)
	}

	// Connect to database
	db, err := database.Open(pgConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Connected to database successfully", zap.String("host", pgConfig.Host))

	// Run database migrations
	if err := database.RunMigrations(db, logger); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return repository.NewBookingRepository(db), closeDB(db, logger), nil
}

func closeDB(db *sql.DB, logger *zap.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}
}

// ServeCommand returns the serve command
func ServeCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the sandbox storefront and booking servers",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}

			repo, release, err := openBookingRepository(cfg, logger)
			if err != nil {
				return err
			}
			defer release()

			// Build all server dependencies
			deps, err := buildServerDependencies(cfg, repo, logger)
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// PingCommand returns the ping command
func PingCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "Check that a booking service is up",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "booking service base URL",
				Value:   config.DefaultAPIBaseURL,
				EnvVars: []string{"API_BASE_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "request timeout",
				Value: 10 * time.Second,
			},
		},
		Action: func(c *cli.Context) error {
			client := bookingapi.NewClient(c.String("url"),
				bookingapi.WithTimeout(c.Duration("timeout")),
				bookingapi.WithLogger(logger))

			resp, err := client.HealthCheck(context.Background())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			if !resp.OK() {
				return fmt.Errorf("health check failed: %w: %d", bookingapi.ErrUnexpectedStatus, resp.StatusCode)
			}

			fmt.Fprintf(c.App.Writer, "%s is up (%d in %s)\n", client.BaseURL(), resp.StatusCode, resp.Duration.Round(time.Millisecond))
			return nil
		},
	}
}

func main() {
	// Load environment variables from .env file
	loaded, envErr := config.LoadEnvFiles(".env")

	logger := observability.NewLogger(config.LoadLoggerConfig(os.Getenv, "swaglabs"))
	defer logger.Sync()

	if envErr != nil {
		logger.Warn("Failed to load env file", zap.String("path", loaded), zap.Error(envErr))
	} else if loaded == "" {
		logger.Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "swaglabs",
		Usage:   "Sandbox servers and tools for the Swag Labs and Restful Booker suites",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(logger),
			PingCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Fatal("Command failed", zap.Error(err))
	}
}
