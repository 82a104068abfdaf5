package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/handlers"
	"github.com/yukikurage/project-tracker-api/internal/logger"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Task suggestions stay disabled without an API key
	var suggester services.TaskSuggester
	if cfg.OpenAI.APIKey != "" {
		suggester = services.NewAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set, task suggestions disabled")
	}

	guard := services.NewOwnershipGuard(projectRepo)
	authService := services.NewAuthService(userRepo, time.Duration(cfg.JWT.ExpireHour)*time.Hour)
	uploadService := services.NewUploadService(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	r := gin.New()
	r.Use(logger.GinRecovery(), logger.GinLogger(), middleware.CORS(cfg.CORS.AllowOrigins))
	r.MaxMultipartMemory = cfg.Upload.MaxBytes

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Project: handlers.NewProjectHandler(services.NewProjectService(projectRepo, guard), guard),
		Task:    handlers.NewTaskHandler(services.NewTaskService(taskRepo, guard, suggester), guard),
		Comment: handlers.NewCommentHandler(services.NewCommentService(commentRepo, guard), guard),
		Upload:  handlers.NewUploadHandler(uploadService),
	}, uploadService.Dir())

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		ErrorLog:     logger.StdLogger(zerolog.WarnLevel),
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info().Msg("server exited")
}
