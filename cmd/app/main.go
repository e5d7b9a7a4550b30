package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/crime-alert/backend/internal/api/http"
	"github.com/crime-alert/backend/internal/cache"
	"github.com/crime-alert/backend/internal/config"
	"github.com/crime-alert/backend/internal/db"
	"github.com/crime-alert/backend/internal/queue/asynqserver"
	"github.com/crime-alert/backend/internal/queue/client"
	"github.com/crime-alert/backend/internal/repository"
	"github.com/crime-alert/backend/internal/server"
	"github.com/crime-alert/backend/internal/service"
	"github.com/crime-alert/backend/internal/worker"
	"github.com/crime-alert/backend/pkg/auth"
	"github.com/crime-alert/backend/pkg/email/smtp"
	"github.com/crime-alert/backend/pkg/hash"
	"github.com/crime-alert/backend/pkg/logger"
	"github.com/crime-alert/backend/pkg/otp"
)

func main() {
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer func() { _ = appLogger.Sync() }()

	logger.Info("starting crime alert backend", zap.String("env", cfg.Env))

	// Database
	dbConn, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("postgres connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("error when closing database", zap.Error(err))
		}
	}()
	logger.Info("postgres connection done")

	// Redis (health checks + task queue transport)
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("error when closing redis", zap.Error(err))
		}
	}()
	logger.Info("redis connection done")

	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	emailProvider, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation err", zap.Error(err))
		return
	}

	otpGenerator := otp.NewGOTPGenerator()

	repos := repository.NewRepositories(dbConn)

	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailProvider,
		Config:        cfg,
	})

	// Task queue: client for enqueueing, server for processing
	queueClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Error("error when closing queue client", zap.Error(err))
		}
	}()
	client.SetClient(queueClient)

	queueServer, queueMux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := queueServer.Run(queueMux); err != nil {
			logger.Error("queue server stopped", zap.Error(err))
		}
	}()

	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		OtpGenerator: otpGenerator,
		EmailSender:  workers.EmailSender,
		Repos:        repos,
	})

	handlers := apiHttp.NewHandlers(services, tokenManager, cfg, dbConn, redisClient)

	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	queueServer.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	logger.Info("app stopped")
}
