package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nijaru/clipsai/config"
	"github.com/nijaru/clipsai/db"
	"github.com/nijaru/clipsai/handlers"
	"github.com/nijaru/clipsai/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()

	if err := config.ValidateConfig(cfg); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	logFile, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up logging")
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := db.InitializeDB(cfg.DBPath); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}
	defer func() {
		if err := db.DB.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close database")
		}
	}()

	handlers.InitHandlers(cfg)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logrus.WithField("port", cfg.ServerPort).Info("Listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatalf("Could not listen on :%s", cfg.ServerPort)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop

	logrus.Info("Shutting down the server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}
