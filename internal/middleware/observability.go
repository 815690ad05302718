package middleware

import (
	"strconv"
	"time"

	"quiz-master/internal/logger"
	"quiz-master/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()
		if err != nil {
			// Run the error handler now so the logged status is the final one.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("request_id", GetRequestID(c)),
		}
		if identity := CurrentIdentity(c); identity != nil {
			fields = append(fields, zap.Int64("user_id", identity.UserID))
		}
		logger.Get().Info("HTTP Request", fields...)

		return err
	}
}

// Metrics records request counts and latencies by route pattern.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		endpoint := c.Route().Path
		metrics.RequestCounter.WithLabelValues(c.Method(), endpoint, strconv.Itoa(c.Response().StatusCode())).Inc()
		metrics.RequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())
		return err
	}
}
