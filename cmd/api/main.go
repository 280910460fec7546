package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskboard/tracker-api/internal/api"
	"github.com/taskboard/tracker-api/internal/core/service"
	"github.com/taskboard/tracker-api/internal/infrastructure/config"
	"github.com/taskboard/tracker-api/internal/infrastructure/db/mongo"
	"github.com/taskboard/tracker-api/internal/infrastructure/db/redis"
	"github.com/taskboard/tracker-api/internal/infrastructure/queue"
	"github.com/taskboard/tracker-api/pkg/logger"
)

// @title          Tracker API
// @version        1.0
// @description    Role-based project, task and resolution ticket tracking API.
// @BasePath       /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	projectRepo := mongo.NewProjectRepository(db)
	taskRepo := mongo.NewTaskRepository(db)
	ticketRepo := mongo.NewTicketRepository(db)
	userRepo := mongo.NewUserRepository(db)
	analyticsRepo := mongo.NewAnalyticsRepository(db)
	activityRepo := mongo.NewActivityRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"projects": projectRepo,
		"tasks":    taskRepo,
		"tickets":  ticketRepo,
		"users":    userRepo,
		"activity": activityRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)
	dispatcher.Start(ctx)

	reportCache := redis.NewReportCache(rdb, cfg.Redis.ReportTTL)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	projectService := service.NewProjectService(projectRepo, taskRepo, ticketRepo, userRepo, dispatcher, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, ticketRepo, userRepo, dispatcher, log)
	ticketService := service.NewTicketService(ticketRepo, taskRepo, projectRepo, userRepo, dispatcher, log)
	userService := service.NewUserService(userRepo, dispatcher, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, projectRepo, reportCache, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
		Auth:      authService,
		Projects:  projectService,
		Tasks:     taskService,
		Tickets:   ticketService,
		Users:     userService,
		Analytics: analyticsService,
		Activity:  activityService,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
