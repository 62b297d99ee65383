// Package main is the back-office entry point.
// It loads the configuration, assembles the application and runs the
// operator console until quit, end of input or SIGINT/SIGTERM.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/app"
	"busline.mx/erp/internal/config"
)

func main() {
	setupLogging()

	log.Info("=== Back office starting ===")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := log.ParseLevel(cfg.AppLogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	application, err := app.New(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise application")
	}
	defer application.DB.Close()

	if cfg.FeatureJobsEnabled {
		if err := application.Scheduler.Start(ctx, cfg.JobsLedgerAuditCron, cfg.JobsSalesSummaryCron); err != nil {
			log.WithError(err).Fatal("Failed to start job scheduler")
		}
		defer application.Scheduler.Stop()
	}

	log.Info("=== Back office ready ===")

	if err := application.Console.Run(ctx); err != nil {
		log.WithError(err).Error("Console stopped with an error")
	}

	log.Info("=== Back office stopped ===")
}

// setupLogging sends logs to stderr so they do not mix with console output.
func setupLogging() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}
