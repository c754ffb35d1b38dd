package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	bulkapp "github.com/morabaat/backend/internal/application/bulk"
	directoryapp "github.com/morabaat/backend/internal/application/directory"
	identityapp "github.com/morabaat/backend/internal/application/identity"
	notificationapp "github.com/morabaat/backend/internal/application/notification"
	reviewapp "github.com/morabaat/backend/internal/application/review"
	seoapp "github.com/morabaat/backend/internal/application/seo"
	taxonomyapp "github.com/morabaat/backend/internal/application/taxonomy"
	"github.com/morabaat/backend/internal/infrastructure/auth"
	"github.com/morabaat/backend/internal/infrastructure/cache"
	"github.com/morabaat/backend/internal/infrastructure/config"
	"github.com/morabaat/backend/internal/infrastructure/importer"
	"github.com/morabaat/backend/internal/infrastructure/logger"
	"github.com/morabaat/backend/internal/infrastructure/mailer"
	"github.com/morabaat/backend/internal/infrastructure/persistence"
	"github.com/morabaat/backend/internal/infrastructure/scheduler"
	"github.com/morabaat/backend/internal/infrastructure/storage"
	"github.com/morabaat/backend/internal/infrastructure/telemetry"
	"github.com/morabaat/backend/internal/interfaces/http/handler"
	"github.com/morabaat/backend/internal/interfaces/http/middleware"
	"github.com/morabaat/backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Morabaat backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Tracing (optional)
	if cfg.Telemetry.Enabled {
		tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
		if err != nil {
			log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
		log.Info("Tracing enabled", zap.String("endpoint", cfg.Telemetry.CollectorEndpoint))
	}

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	var db *persistence.Database
	if cfg.Telemetry.Enabled {
		db, err = persistence.NewDatabaseWithTracing(&cfg.Database, gormLog)
	} else {
		db, err = persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	}
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis-backed token blacklist and stats cache, with in-memory fallbacks
	var blacklist auth.TokenBlacklist
	var statsCache cache.StatsCache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklistWithClient(rdb)
		statsCache = cache.NewRedisStatsCache(rdb)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		statsCache = cache.NewInMemoryStatsCache()
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	countryRepo := persistence.NewGormCountryRepository(db.DB)
	cityRepo := persistence.NewGormCityRepository(db.DB)
	subAreaRepo := persistence.NewGormSubAreaRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	subCategoryRepo := persistence.NewGormSubCategoryRepository(db.DB)
	countRefresher := persistence.NewGormCountRefresher(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	ownerRepo := persistence.NewGormCompanyOwnerRepository(db.DB)
	requestRepo := persistence.NewGormCompanyRequestRepository(db.DB)
	hoursRepo := persistence.NewGormWorkingHoursRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	reportRepo := persistence.NewGormReviewReportRepository(db.DB)
	voteRepo := persistence.NewGormHelpfulVoteRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	seoRepo := persistence.NewGormSeoOverrideRepository(db.DB)
	importRecordRepo := persistence.NewGormImportRecordRepository(db.DB)

	// File storage for uploaded images
	var store storage.FileStorage
	if cfg.Uploads.S3Enabled {
		s3, err := storage.NewS3Storage(cfg.Uploads, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		if err := s3.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure S3 bucket", zap.Error(err))
		}
		store = s3
	} else {
		local, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.BaseURL, cfg.Uploads.MaxSize, log)
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		store = local
	}

	// Outgoing mail (falls back to log-only delivery when SMTP is off)
	mail := mailer.ForConfig(cfg.SMTP, log)

	// Import session registry with background sweeping of finished sessions
	registry := importer.NewSessionRegistry(cfg.Import.SessionMaxAge, log)
	registry.StartSweeper(context.Background(), cfg.Import.SweepInterval)
	defer registry.Stop()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	taxonomyService := taxonomyapp.NewService(countryRepo, cityRepo, subAreaRepo, categoryRepo, subCategoryRepo, companyRepo, countRefresher, log)
	companyService := directoryapp.NewCompanyService(companyRepo, ownerRepo, log)
	searchService := directoryapp.NewSearchService(companyRepo, log)
	requestService := directoryapp.NewRequestService(requestRepo, companyRepo, ownerRepo, hoursRepo, userRepo, notificationRepo, mail, log)
	ownerService := directoryapp.NewOwnerService(ownerRepo, companyRepo, userRepo, log)
	hoursService := directoryapp.NewWorkingHoursService(hoursRepo, companyRepo, ownerRepo, log)
	statsService := directoryapp.NewStatsService(companyRepo, ownerRepo, reviewRepo, notificationRepo, categoryRepo, cityRepo, statsCache, log)
	exportService := directoryapp.NewExportService(companyRepo, reviewRepo, countryRepo, cityRepo, subAreaRepo, categoryRepo, subCategoryRepo, log)
	reviewService := reviewapp.NewService(reviewRepo, reportRepo, voteRepo, companyRepo, ownerRepo, notificationRepo, log)
	notificationService := notificationapp.NewService(notificationRepo, ownerRepo, userRepo, log)
	seoService := seoapp.NewService(seoRepo, companyRepo, categoryRepo, cityRepo, log)
	importService := bulkapp.NewService(registry, importRecordRepo, companyRepo, countryRepo, cityRepo, subAreaRepo, categoryRepo, subCategoryRepo, notificationRepo, cfg.Import.MaxFileSize, log)

	// Periodic refresh of denormalized taxonomy counters
	if cfg.Scheduler.Enabled {
		sched := scheduler.NewScheduler(log)
		sched.Register(scheduler.TaskFunc{
			TaskName: "taxonomy-count-refresh",
			Fn:       taxonomyService.RefreshCounts,
		}, cfg.Scheduler.RefreshInterval)
		if err := sched.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := sched.Stop(ctx); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyService)
	companyHandler := handler.NewCompanyHandler(companyService, searchService)
	requestHandler := handler.NewRequestHandler(requestService)
	memberHandler := handler.NewMemberHandler(ownerService)
	hoursHandler := handler.NewWorkingHoursHandler(hoursService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	seoHandler := handler.NewSEOHandler(seoService, cfg.Site.BaseURL)
	importHandler := handler.NewImportHandler(importService, exportService)
	statsHandler := handler.NewStatsHandler(statsService)
	uploadHandler := handler.NewUploadHandler(store, cfg.Uploads.MaxSize)
	healthHandler := handler.NewHealthHandler(db.DB, version)

	// Gin engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Language())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rl := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rl))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Public surface. OptionalAuth lets owners and admins see their own
	// unpublished listings and pending reviews.
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(middleware.OptionalAuth(authService)).
		Register(healthHandler).
		Register(authHandler).
		Register(taxonomyHandler).
		Register(companyHandler).
		Register(hoursHandler).
		Register(reviewHandler).
		Register(seoHandler).
		Register(statsHandler).
		Setup()

	// Authenticated surface
	protected := engine.Group("/api/v1", middleware.RequireAuth(authService))
	authHandler.RegisterProtectedRoutes(protected)
	userHandler.RegisterRoutes(protected)
	requestHandler.RegisterRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)
	notificationHandler.RegisterProtectedRoutes(protected)
	uploadHandler.RegisterProtectedRoutes(protected)

	// Owner dashboard
	dashboard := engine.Group("/api/v1/dashboard", middleware.RequireAuth(authService))
	companyHandler.RegisterDashboardRoutes(dashboard)
	memberHandler.RegisterRoutes(dashboard)
	hoursHandler.RegisterDashboardRoutes(dashboard)
	notificationHandler.RegisterDashboardRoutes(dashboard)
	reviewHandler.RegisterDashboardRoutes(dashboard)
	statsHandler.RegisterDashboardRoutes(dashboard)

	// Back office
	admin := engine.Group("/api/v1/admin", middleware.RequireAuth(authService), middleware.RequireAdmin())
	userHandler.RegisterAdminRoutes(admin)
	taxonomyHandler.RegisterAdminRoutes(admin)
	companyHandler.RegisterAdminRoutes(admin)
	requestHandler.RegisterAdminRoutes(admin)
	reviewHandler.RegisterAdminRoutes(admin)
	seoHandler.RegisterAdminRoutes(admin)
	importHandler.RegisterAdminRoutes(admin)
	notificationHandler.RegisterAdminRoutes(admin)

	// sitemap.xml and robots.txt live at the site root, outside the API prefix
	seoHandler.RegisterRootRoutes(engine)

	// Serve uploaded files directly when running on local disk
	if !cfg.Uploads.S3Enabled {
		engine.Static("/uploads", cfg.Uploads.Dir)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
