package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/SscSPs/fin_manager_app/internal/adapters/authprovider"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	"github.com/SscSPs/fin_manager_app/internal/core/services"
	"github.com/SscSPs/fin_manager_app/internal/handlers"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/SscSPs/fin_manager_app/internal/platform/config"
	"github.com/SscSPs/fin_manager_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/fin_manager_app/internal/repositories/memory"
	redisrepo "github.com/SscSPs/fin_manager_app/internal/repositories/redis"
	"github.com/SscSPs/fin_manager_app/internal/utils"
	"github.com/SscSPs/fin_manager_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:generate swag init -g main.go -o ../docs --parseDependency --parseInternal -d ./,../../internal/handlers

// @title Finance Manager Backend API
// @version 1.0
// @description Entities, units, accounts, transactions and ledger transfers.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name custom-session

// @security SessionCookie
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool, logger)

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		logger.Info("Redis connection established.")
	}

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.DBTimeout)
	repos.Revocations = revocationStore(redisClient, logger)

	var providerClient services.ProviderClient
	if client := authprovider.NewClient(authprovider.Config{
		TokenURL:     cfg.AuthProviderTokenURL,
		UserURL:      cfg.AuthProviderUserURL,
		ClientID:     cfg.AuthProviderClientID,
		ClientSecret: cfg.AuthProviderClientSecret,
		APIKey:       cfg.AuthProviderAPIKey,
		Timeout:      cfg.AuthProviderTimeout,
	}, logger); client != nil {
		providerClient = client
	} else {
		logger.Info("Managed auth provider not configured; only the users table can sign users in.")
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, providerClient)

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loginLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to create login rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	cookies := middleware.SessionCookies{
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.CookieSecure,
		Domain: cfg.CookieDomain,
	}

	// Global middleware (logging, recovery, CORS, session gate, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.SessionGate(serviceContainer.Session, cookies))
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.Dependencies{
		Cookies:      cookies,
		LoginLimiter: loginLimiter,
		Analytics:    posthogClient,
	})

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// golang-migrate needs a database/sql handle; the pgx stdlib driver keeps one driver for both.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func revocationStore(redisClient *redis.Client, logger *slog.Logger) portsrepo.SessionRevocationStore {
	if redisClient == nil {
		logger.Warn("REDIS_URL not set; session revocations are kept in memory and lost on restart.")
		return memory.NewRevocationStore()
	}
	return redisrepo.NewRevocationStore(redisClient)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-ID")
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	if cfg.FrontendBaseURL != "" {
		corsCfg.AllowOrigins = []string{cfg.FrontendBaseURL}
	} else {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	return corsCfg
}
