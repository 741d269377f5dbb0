package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyRecommender/app/echo-server/router"
	"studyRecommender/business/feedback"
	"studyRecommender/business/program"
	"studyRecommender/business/recommendation"
	"studyRecommender/business/recommender"
	"studyRecommender/business/student"
	"studyRecommender/internal/middleware"
	psqlRepo "studyRecommender/internal/repository/postgres"
	"studyRecommender/internal/rest"
	"studyRecommender/pkg/config"
	"studyRecommender/pkg/database"
	"studyRecommender/pkg/logger"
	"studyRecommender/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting study program recommender", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	metrics.Init()

	// Init validate
	validate := validator.New()

	// Init repo
	programRepo := psqlRepo.NewProgramRepository(db)
	studentRepo := psqlRepo.NewStudentRepository(db)
	recoRepo := psqlRepo.NewRecommendationRepository(db)
	feedbackRepo := psqlRepo.NewFeedbackRepository(db)
	settingsRepo := psqlRepo.NewSettingsRepository(db)

	// Init service
	engineCfg := recommender.Config{
		GradeThreshold:    cfg.Recommender.GradeThreshold,
		CategoricalWeight: cfg.Recommender.CategoricalWeight,
		StrengthWeight:    cfg.Recommender.StrengthWeight,
		ExplanationTerms:  cfg.Recommender.ExplanationTerms,
		IDFSmoothing:      cfg.Recommender.IDFSmoothing,
	}.Normalize()

	programService := program.NewProgramService(programRepo)
	studentService := student.NewStudentService(studentRepo, validate)
	feedbackService := feedback.NewFeedbackService(feedbackRepo)
	recoService := recommendation.NewService(studentRepo, programRepo, recoRepo, settingsRepo, engineCfg)

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := recoService.Warmup(warmCtx); err != nil {
		logger.Warn("Program index warmup failed, fitting on first request", "error", err)
	}
	warmCancel()

	// Init handler
	statusHandler := rest.NewStatusHandler(cfg.App.Name, cfg.App.Version)
	programHandler := rest.NewProgramHandler(programService, validate)
	studentHandler := rest.NewStudentHandler(studentService, validate)
	recoHandler := rest.NewRecommendationHandler(recoService, validate, cfg.Recommender.DefaultTopK, cfg.Recommender.MaxTopK)
	feedbackHandler := rest.NewFeedbackHandler(feedbackService, validate)
	adminHandler := rest.NewRecommenderAdminHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupStatusRoutes(e, api, statusHandler)
	router.SetupProgramRoutes(api, programHandler, authRequired, adminOnly)
	router.SetupStudentRoutes(api, studentHandler, recoHandler)
	router.SetRecommendationRoutes(api, recoHandler, feedbackHandler)
	router.SetRecommenderAdminRoutes(api, adminHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
