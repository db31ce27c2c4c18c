package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/cache"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/config"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/database"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/handler"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/middleware"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/repository"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/service"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/storage"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/worker"
)

// main is the application entrypoint for the Sinath Travel backend.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting sinath travel api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis (optional; the catalog cache degrades to a no-op)
	var catalogCache *cache.CatalogCache
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		catalogCache = cache.NewCatalogCache(redisClient)
		log.Info().Msg("redis connected successfully")
	} else {
		log.Warn().Msg("REDIS_HOST not set - catalog cache disabled")
	}

	// 4. Image storage
	images, err := newImageStore(&cfg.Storage)
	if err != nil {
		log.Error().Err(err).Msg("image storage initialization failed")
		fmt.Fprintf(os.Stderr, "image storage initialization failed: %v\n", err)
		os.Exit(1)
	}

	// 5. Initialize repositories
	adminRepo := repository.NewAdminUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	// 6. Initialize services
	authSvc := service.NewAuthService(adminRepo, sessionRepo, cfg.Session.TTL)
	packageSvc := service.NewPackageService(packageRepo, images, catalogCache)
	emailSvc := service.NewEmailService(&cfg.Mail)
	if emailSvc == nil {
		log.Warn().Msg("MAILGUN_API_KEY not set - inquiry notifications disabled")
	}
	inquirySvc := service.NewInquiryService(inquiryRepo, notifierOrNil(emailSvc))

	// 7. Initialize handlers
	authHandler := handler.NewAuthHandler(authSvc, cfg.Session)
	packageHandler := handler.NewPackageHandler(packageSvc)
	inquiryHandler := handler.NewInquiryHandler(inquirySvc)
	catalogHandler := handler.NewCatalogHandler(packageSvc, serviceRepo, catalogCache)
	healthHandler := handler.NewHealthHandler(db)

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.Logging())
	setupRoutes(router, cfg, authSvc, authHandler, packageHandler, inquiryHandler, catalogHandler, healthHandler)

	// Serve uploaded images when using local storage.
	if cfg.Storage.Driver != "s3" {
		router.Static("/static", cfg.Storage.UploadDir)
	}

	// 9. Create context for background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go worker.NewSessionSweeper(sessionRepo, cfg.Session.SweepInterval).Start(ctx)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// setupRoutes registers all routes.
func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	authSvc *service.AuthService,
	auth *handler.AuthHandler,
	packages *handler.PackageHandler,
	inquiries *handler.InquiryHandler,
	catalog *handler.CatalogHandler,
	health *handler.HealthHandler,
) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.Error(c, 405, "Method not allowed")
	})
	router.NoRoute(func(c *gin.Context) {
		utils.Error(c, 404, "Not found")
	})

	api := router.Group("/api")

	// Public endpoints
	api.GET("/health", health.GetHealth)
	api.GET("/packages", catalog.ListPackages)
	api.GET("/services", catalog.ListServices)
	api.POST("/inquiries", inquiries.Create)

	// Auth endpoint: POST dispatches on ?action=, GET checks the session.
	sessionMw := middleware.SessionAuth(authSvc, cfg.Session.CookieName)
	api.POST("/auth", auth.HandleAction)
	api.GET("/auth", sessionMw, auth.Session)

	// Admin endpoints, all behind session verification.
	admin := api.Group("/admin")
	admin.Use(sessionMw)
	{
		admin.GET("/packages", packages.List)
		admin.POST("/packages", packages.Create)
		admin.PUT("/packages", packages.Update)
		admin.DELETE("/packages", packages.Delete)

		admin.GET("/inquiries", inquiries.List)
		admin.PUT("/inquiries", inquiries.UpdateStatus)
		admin.DELETE("/inquiries", inquiries.Delete)
	}
}

// newImageStore selects the configured image storage backend.
func newImageStore(cfg *config.StorageConfig) (storage.ImageStore, error) {
	if cfg.Driver == "s3" {
		return storage.NewS3Store(cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKeyID, cfg.S3SecretAccessKey)
	}
	return storage.NewLocalStore(cfg.UploadDir)
}

// notifierOrNil avoids handing the service a typed nil interface.
func notifierOrNil(s *service.EmailService) service.InquiryNotifier {
	if s == nil {
		return nil
	}
	return s
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
