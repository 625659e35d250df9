package api

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"schedsim/internal/telemetry"
)

// RegisterRoutes attaches the scheduler API to the fiber app.
func RegisterRoutes(app *fiber.App, handler SchedulerHandler) {
	app.Get("/health", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(telemetry.Handler()))

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Post("/schedule", handler.Schedule)
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/priority", handler.Priority)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/all", handler.AllAlgorithms)
		v1.Get("/algorithms", handler.Algorithms)
		v1.Get("/history", handler.History)
		v1.Delete("/history", handler.ClearHistory)
	}
}
