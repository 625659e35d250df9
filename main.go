package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"schedsim/api"
	"schedsim/config"
	"schedsim/internal/history"
	"schedsim/internal/logging"
	"schedsim/internal/telemetry"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "CPU scheduling algorithm simulator",
	Long:  "schedsim simulates classic CPU scheduling algorithms (FCFS, SJF, priority and round-robin) over virtual time and serves the resulting timing tables and Gantt timelines through an HTTP API.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scheduling API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it).
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	logger.Info().Msg("schedsim starting")

	store, err := history.New(history.Config{
		Backend:    cfg.History.Backend,
		Limit:      cfg.History.Limit,
		SQLitePath: cfg.History.SQLitePath,
		Redis: history.RedisConfig{
			Addr:     cfg.History.RedisAddr,
			Password: cfg.History.RedisPassword,
			DB:       cfg.History.RedisDB,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize history store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("history store close failed")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:               "schedsim",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(telemetry.Middleware())

	handler := api.NewSchedulerHandlerImpl(cfg, store, logger)
	api.RegisterRoutes(app, handler)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := app.Listen(addr); err != nil {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gracefully...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("schedsim stopped")
	return nil
}
