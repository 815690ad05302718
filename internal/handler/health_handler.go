package handler

import (
	"context"
	"time"

	"quiz-master/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DBPinger is satisfied by *sqlx.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger is satisfied by domain.Cache.
type CachePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    DBPinger
	cache CachePinger
}

// NewHealthHandler accepts a nil cache when the server runs without redis.
func NewHealthHandler(db DBPinger, cache CachePinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check godoc
// @Summary Health check
// @Description Pings the database and the cache. The cache is optional; a
// @Description cache outage degrades the response without failing it.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"status": "ok", "database": "ok", "cache": "disabled"}
	code := fiber.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Error("Database health check failed", zap.Error(err))
		status["status"] = "unavailable"
		status["database"] = "down"
		code = fiber.StatusServiceUnavailable
	}

	if h.cache != nil {
		status["cache"] = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache health check failed", zap.Error(err))
			status["cache"] = "down"
			if code == fiber.StatusOK {
				status["status"] = "degraded"
			}
		}
	}

	return c.Status(code).JSON(status)
}
