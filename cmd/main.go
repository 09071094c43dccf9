package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	configs "github.com/rentmoment/rental-api/config"
	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/handler"
	"github.com/rentmoment/rental-api/internal/middleware"
	"github.com/rentmoment/rental-api/internal/repository"
	"github.com/rentmoment/rental-api/internal/router"
	"github.com/rentmoment/rental-api/internal/service"
	"github.com/rentmoment/rental-api/pkg/cache"
	"github.com/rentmoment/rental-api/pkg/circuit"
	"github.com/rentmoment/rental-api/pkg/database"
	"github.com/rentmoment/rental-api/pkg/logger"
	"github.com/rentmoment/rental-api/pkg/redis"
)

const (
	shutdownTimeout        = 10 * time.Second
	refreshCleanupInterval = time.Hour
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
		zap.String("db_driver", config.Database.Driver),
	)

	db, err := database.Open(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			logger.GetLogger().Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	if err := database.ListingIndexes(db); err != nil {
		logger.GetLogger().Fatal("Failed to create listing indexes", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Seed failures are not fatal; the admin may already exist.
	if err := database.Seed(db, config.Seed); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	redisClient, err := redis.NewClient(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	var (
		store   service.CacheStore = redisClient
		breaker *circuit.Breaker
	)
	if redisClient.IsEnabled() {
		breaker = circuit.NewBreaker("redis", circuit.Config{
			Threshold: config.Redis.BreakerThreshold,
			Cooldown:  config.Redis.BreakerCooldown,
		})
	} else {
		memory := cache.NewCache(time.Minute)
		defer memory.Close()
		store = memory
	}
	logger.GetLogger().Info("Detail cache initialized",
		zap.Bool("redis", redisClient.IsEnabled()),
		zap.Duration("ttl", config.Redis.CacheTTL),
	)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	merchantRepo := repository.NewMerchantRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	listingOpts := service.ListingOptions(config.Listing)
	cacheService := service.NewCacheService(store, config.Redis.CacheTTL).WithBreaker(breaker)
	jwtService := service.NewJWTService(config.JWT.Secret, config.JWT.ExpirationTime, config.JWT.RefreshDuration)
	userService := service.NewUserService(userRepo, jwtService, listingOpts)
	merchantService := service.NewMerchantService(merchantRepo, listingOpts)
	categoryService := service.NewCategoryService(categoryRepo, cacheService,
		service.ListingOptions(config.Listing, service.CategoryListingSort...))
	productService := service.NewProductService(productRepo, categoryRepo, cacheService, listingOpts)
	orderService := service.NewOrderService(orderRepo, productRepo, listingOpts)
	uploadService, err := service.NewUploadService(config.Upload)
	if err != nil {
		logger.GetLogger().Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	r := router.NewRouter(router.Handlers{
		Auth:     handler.NewAuthHandler(userService),
		User:     handler.NewUserHandler(userService),
		Merchant: handler.NewMerchantHandler(merchantService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService),
		Order:    handler.NewOrderHandler(orderService),
		Upload:   handler.NewUploadHandler(uploadService),
		Health:   handler.NewHealthHandler(db, redisClient, breaker),
	}, middleware.NewJWTMiddleware(jwtService, userService), config).SetupRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cleanupRefreshTokens(ctx, userRepo)

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	<-ctx.Done()
	logger.GetLogger().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
	logger.GetLogger().Info("Server exited")
}

// cleanupRefreshTokens clears expired refresh tokens at startup and then
// hourly until ctx is done.
func cleanupRefreshTokens(ctx context.Context, repo *repository.UserRepository) {
	ticker := time.NewTicker(refreshCleanupInterval)
	defer ticker.Stop()

	for {
		if _, err := repo.CleanupExpiredRefreshTokens(ctx); err != nil && ctx.Err() == nil {
			logger.GetLogger().Warn("Refresh token cleanup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
