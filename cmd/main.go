package main

import (
	"fmt"
	"os"

	"github.com/yungbote/flowfactory-backend/internal/config"
	"github.com/yungbote/flowfactory-backend/internal/db"
	"github.com/yungbote/flowfactory-backend/internal/handlers"
	"github.com/yungbote/flowfactory-backend/internal/logger"
	"github.com/yungbote/flowfactory-backend/internal/middleware"
	"github.com/yungbote/flowfactory-backend/internal/repos"
	"github.com/yungbote/flowfactory-backend/internal/server"
	"github.com/yungbote/flowfactory-backend/internal/services"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(cfg, log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	defer postgresService.Close()
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	projectRepo := repos.NewProjectRepo(thePG, log)
	topicRepo := repos.NewTopicRepo(thePG, log)
	analysisRepo := repos.NewAnalysisRepo(thePG, log)
	outputRepo := repos.NewOutputRepo(thePG, log)
	seedTopicRepo := repos.NewSeedTopicRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	generationClient, err := services.NewGenerationClient(cfg, log)
	if err != nil {
		log.Fatal("Could not init generation client", "error", err)
	}
	authService := services.NewAuthService(cfg, log, userRepo, userTokenRepo)
	projectService := services.NewProjectService(thePG, log, projectRepo, topicRepo, analysisRepo, outputRepo)
	miningService := services.NewMiningService(log, generationClient, projectRepo, topicRepo)
	analysisService := services.NewAnalysisService(log, generationClient, projectRepo, topicRepo, analysisRepo)
	directorService := services.NewDirectorService(log, generationClient, projectRepo, topicRepo, analysisRepo, outputRepo)
	copywriterService := services.NewCopywriterService(log, generationClient, projectRepo, topicRepo, analysisRepo, outputRepo)
	planningService := services.NewPlanningService(log, generationClient, projectRepo, topicRepo, analysisRepo, outputRepo, seedTopicRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	miningHandler := handlers.NewMiningHandler(miningService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	directorHandler := handlers.NewDirectorHandler(directorService)
	copywriterHandler := handlers.NewCopywriterHandler(copywriterService)
	planningHandler := handlers.NewPlanningHandler(planningService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		CORSOrigins:       cfg.CORSOrigins,
		AuthMiddleware:    authMiddleware,
		AuthHandler:       authHandler,
		ProjectHandler:    projectHandler,
		MiningHandler:     miningHandler,
		AnalysisHandler:   analysisHandler,
		DirectorHandler:   directorHandler,
		CopywriterHandler: copywriterHandler,
		PlanningHandler:   planningHandler,
	})

	log.Info("Starting HTTP server...", "port", cfg.HTTPPort)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
