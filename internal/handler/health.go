package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/pkg/circuit"
	"github.com/rentmoment/rental-api/pkg/database"
	"github.com/rentmoment/rental-api/pkg/logger"
	"github.com/rentmoment/rental-api/pkg/redis"
)

const healthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	db          *gorm.DB
	redisClient *redis.Client
	breaker     *circuit.Breaker
	started     time.Time
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Stats   map[string]any `json:"stats,omitempty"`
}

// NewHealthHandler takes an optional redis client; nil or disabled means the
// cache is reported as disabled. breaker may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, breaker *circuit.Breaker) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		breaker:     breaker,
		started:     time.Now(),
	}
}

// HealthCheck pings the database and redis. Only the database decides the
// overall status.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   constants.AppVersion,
		Timestamp: time.Now(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Checks:    make(map[string]HealthCheck),
	}

	dbStatus := h.checkDatabase(ctx)
	response.Checks["database"] = dbStatus
	if dbStatus.Status != "healthy" {
		response.Status = "unhealthy"
	}

	// Redis is optional
	response.Checks["redis"] = h.checkRedis(ctx)

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	if h.db == nil {
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Database connection not initialized",
		}
	}

	if err := database.Ping(ctx, h.db); err != nil {
		logger.GetLogger().Error("Database ping failed", zap.Error(err))
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Database ping failed",
		}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return HealthCheck{Status: "healthy"}
	}
	stats := sqlDB.Stats()
	return HealthCheck{
		Status:  "healthy",
		Message: fmt.Sprintf("open: %d, idle: %d", stats.OpenConnections, stats.Idle),
		Stats: map[string]any{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
		},
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) HealthCheck {
	if !h.redisClient.IsEnabled() {
		return HealthCheck{
			Status:  "disabled",
			Message: "Redis cache is disabled",
		}
	}

	if err := h.redisClient.Ping(ctx); err != nil {
		logger.GetLogger().Warn("Redis ping failed", zap.Error(err))
		return HealthCheck{
			Status:  "unhealthy",
			Message: "Redis ping failed",
		}
	}

	stats := h.redisClient.PoolStats()
	if b := h.breaker.Stats(); b != nil {
		stats["breaker"] = b
	}
	return HealthCheck{
		Status:  "healthy",
		Message: "Redis connection is healthy",
		Stats:   stats,
	}
}
