package telemetry

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Middleware tracks request count, latency and in-flight connections
// for every handled route. The route pattern is used as the endpoint
// label so path parameters do not explode the cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		APIActiveConnections.Inc()
		defer APIActiveConnections.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if ferr, ok := err.(*fiber.Error); ok {
				status = ferr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		endpoint := c.Route().Path
		statusCode := strconv.Itoa(status)
		duration := time.Since(start).Seconds()

		APIRequestDuration.WithLabelValues(c.Method(), endpoint, statusCode).Observe(duration)
		APIRequestsTotal.WithLabelValues(c.Method(), endpoint, statusCode).Inc()

		return err
	}
}
