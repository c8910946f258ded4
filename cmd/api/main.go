package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/agrobissau/agrobissau-backend/internal/config"
	"github.com/agrobissau/agrobissau-backend/internal/domain"
	"github.com/agrobissau/agrobissau-backend/internal/gateway"
	"github.com/agrobissau/agrobissau-backend/internal/handler"
	"github.com/agrobissau/agrobissau-backend/internal/middleware"
	"github.com/agrobissau/agrobissau-backend/internal/migration"
	"github.com/agrobissau/agrobissau-backend/internal/repository"
	"github.com/agrobissau/agrobissau-backend/internal/scheduler"
	"github.com/agrobissau/agrobissau-backend/internal/service"
	"github.com/agrobissau/agrobissau-backend/internal/worker"
	"github.com/agrobissau/agrobissau-backend/pkg/cache"
	"github.com/agrobissau/agrobissau-backend/pkg/jwt"
	"github.com/agrobissau/agrobissau-backend/pkg/logger"
	pkgredis "github.com/agrobissau/agrobissau-backend/pkg/redis"
)

func main() {
	config.LoadDotEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.local.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.App.Env)
	log := logger.Get()

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to access database pool")
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migration")
	}

	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize,
	)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, cache and rate limiting disabled")
		redisClient = nil
	}
	cacheSvc := cache.New(redisClient)

	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLDays)*24*time.Hour,
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	listingRepo := repository.NewListingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	reportRepo := repository.NewReportRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	shortURLRepo := repository.NewShortURLRepository(db)

	// Side-effect workers
	outbox := worker.NewOutbox(256, 4, *log)
	outbox.Start()

	// Payment gateways
	gateways := map[domain.PaymentMethod]gateway.PaymentGateway{
		domain.PaymentOrangeMoney: gateway.NewOrangeMoneyGateway(cfg.Payment.OrangeMoney),
		domain.PaymentWave:        gateway.NewWaveGateway(cfg.Payment.Wave),
	}

	// Services
	notifier := service.NewNotifier(notificationRepo)
	subscriptionService := service.NewSubscriptionService(
		subscriptionRepo, transactionRepo, gateways, notifier, outbox,
		cfg.Payment.CallbackBaseURL, *log,
	)
	authService := service.NewAuthService(userRepo, jwtManager)
	categoryService := service.NewCategoryService(categoryRepo, cacheSvc)
	listingService := service.NewListingService(
		listingRepo, categoryRepo, favoriteRepo, messageRepo,
		subscriptionService, cacheSvc, *log,
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, listingRepo)
	badgeService := service.NewBadgeService(badgeRepo, listingRepo, reviewRepo, notifier)
	contactService := service.NewContactService(
		messageRepo, listingRepo, userRepo, badgeService, notifier, outbox, *log,
	)
	reviewService := service.NewReviewService(reviewRepo, userRepo, badgeService, notifier, outbox)
	reportService := service.NewReportService(reportRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	shortURLService := service.NewShortURLService(shortURLRepo, *log)

	// Background sweeps
	sched := scheduler.New(*log, time.Minute)
	sched.Register("featured-sweep", 10*time.Minute, func() error {
		n, err := listingService.SweepExpiredFeatured()
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info().Int64("count", n).Msg("expired featured listings cleared")
		}
		return nil
	})
	sched.Register("subscription-sweep", time.Hour, func() error {
		n, err := subscriptionService.SweepExpired()
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info().Int64("count", n).Msg("expired subscriptions closed")
		}
		return nil
	})
	sched.Start()

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers := &handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Listing:      handler.NewListingHandler(listingService),
		Category:     handler.NewCategoryHandler(categoryService),
		Favorite:     handler.NewFavoriteHandler(favoriteService),
		Message:      handler.NewMessageHandler(contactService),
		Review:       handler.NewReviewHandler(reviewService),
		Report:       handler.NewReportHandler(reportService),
		Badge:        handler.NewBadgeHandler(badgeService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Notification: handler.NewNotificationHandler(notificationService),
		ShortURL:     handler.NewShortURLHandler(shortURLService),
	}
	handler.SetupRoutes(router, handlers, jwtManager)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("env", cfg.App.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	sched.Stop()
	outbox.Stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	_ = sqlDB.Close()

	log.Info().Msg("server stopped")
}
