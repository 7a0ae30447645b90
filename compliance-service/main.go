package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/compliance-service/handlers"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"

	"github.com/gin-gonic/gin"
)

// @title Compliance Service API
// @version 1.0
// @description Regulatory deadlines and framework assessments
// @host localhost:8001
// @BasePath /api

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "compliance-service",
			"status":  "healthy",
		})
	})

	api := router.Group("/api/compliance")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/deadlines", handlers.GetDeadlines)
		api.POST("/deadlines", handlers.CreateDeadline)
		api.POST("/deadlines/:id/extend", handlers.ExtendDeadline)
		api.POST("/deadlines/:id/complete", handlers.CompleteDeadline)

		api.GET("/assessments", handlers.GetAssessments)
		api.POST("/assessments", handlers.CreateAssessment)
		api.PUT("/assessments/:id/answers", handlers.SaveAssessmentAnswers)
		api.POST("/assessments/:id/complete", handlers.CompleteAssessment)
	}

	port := strings.Split(config.GetConfig().ComplianceServiceURL, ":")[2]
	log.Printf("📋 Compliance Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
