// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Voidkillxx/FinalCaseStudy/internal/config"
	"github.com/Voidkillxx/FinalCaseStudy/internal/infrastructure/backend"
	"github.com/Voidkillxx/FinalCaseStudy/internal/infrastructure/database/redis"
	"github.com/Voidkillxx/FinalCaseStudy/internal/interfaces/http"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/auth"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/logger"
	"github.com/Voidkillxx/FinalCaseStudy/internal/pkg/pdf"
	"github.com/Voidkillxx/FinalCaseStudy/internal/session"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.New(cfg)
	logr.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	redisClient, err := redis.NewConnection(cfg, logr)
	if err != nil {
		logr.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logr)
	clients := func(token string) session.Backend {
		return api.WithToken(token)
	}

	sessions := session.NewManager(cfg.Session, redisClient, auth.NewJWTManager(cfg), clients, logr)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go sessions.RunJanitor(ctx, time.Minute)

	server := http.NewServer(cfg, logr, redisClient, sessions, pdf.NewService(cfg))

	go func() {
		if err := server.Start(); err != nil {
			logr.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("Shutting down gracefully")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logr.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logr.Info("Server shutdown completed")
}
