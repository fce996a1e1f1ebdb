package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"medequip-console/internal/api"
	"medequip-console/internal/config"
	"medequip-console/internal/jobs"
	"medequip-console/internal/lifecycle"
	"medequip-console/internal/logger"
	"medequip-console/internal/scheduler"
	"medequip-console/internal/session"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	password := flag.String("password", os.Getenv("CONSOLE_PASSWORD"), "Operator password (or CONSOLE_PASSWORD)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting equipment rental console...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Backend configuration", "base_url", cfg.Backend.BaseURL, "timeout", cfg.BackendTimeout())

	// Operator session (client-side gate only, not a security boundary)
	sessions := session.NewManager(cfg.Console.PasswordHash, cfg.Console.SessionSecret, cfg.SessionExpiry())
	token, err := sessions.Login(*password)
	if err != nil {
		logger.Error("Operator login failed", "error", err)
		log.Fatalf("Operator login failed: %v", err)
	}
	claims, err := sessions.Validate(token)
	if err != nil {
		log.Fatalf("Session validation failed: %v", err)
	}
	logger.Info("Operator session issued", "role", claims.Role, "expires_at", claims.ExpiresAt)

	// Backend client and dashboard controller
	client := api.NewClient(cfg.Backend.BaseURL, cfg.BackendTimeout())
	controller := lifecycle.NewController(client)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout())
	if err := controller.Refresh(ctx); err != nil {
		logger.Error("Initial dashboard fetch failed", "error", err)
	} else {
		stats := controller.Stats()
		logger.Info("Dashboard loaded",
			"rentals", stats.TotalRentals,
			"active", stats.ActiveRentals,
			"pending", stats.PendingRentals,
			"overdue", stats.OverdueRentals,
			"completed_revenue", stats.CompletedRevenue,
		)
	}
	cancel()

	// Background refresh jobs
	jobRunner := jobs.NewJobRunner(cfg, controller, client)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down console...")
	sched.Stop()
}
