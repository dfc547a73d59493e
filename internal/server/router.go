package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/flowfactory-backend/internal/handlers"
	"github.com/yungbote/flowfactory-backend/internal/middleware"
)

type RouterConfig struct {
	CORSOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	AuthHandler       *handlers.AuthHandler
	ProjectHandler    *handlers.ProjectHandler
	MiningHandler     *handlers.MiningHandler
	AnalysisHandler   *handlers.AnalysisHandler
	DirectorHandler   *handlers.DirectorHandler
	CopywriterHandler *handlers.CopywriterHandler
	PlanningHandler   *handlers.PlanningHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	workflow := protected.Group("/workflow")
	// Projects
	workflow.POST("", cfg.ProjectHandler.Create)
	workflow.GET("", cfg.ProjectHandler.List)
	workflow.GET("/:id", cfg.ProjectHandler.GetDetail)
	workflow.PATCH("/:id", cfg.ProjectHandler.UpdateTitle)
	workflow.DELETE("/:id", cfg.ProjectHandler.Delete)
	// Pipeline stages
	workflow.POST("/mining", cfg.MiningHandler.Run)
	workflow.POST("/analysis", cfg.AnalysisHandler.Run)
	workflow.POST("/director", cfg.DirectorHandler.Run)
	workflow.POST("/copywriter", cfg.CopywriterHandler.Run)
	workflow.POST("/planning", cfg.PlanningHandler.Run)
	workflow.GET("/planning", cfg.PlanningHandler.List)
	workflow.POST("/planning/use", cfg.PlanningHandler.MarkUsed)

	return router
}
