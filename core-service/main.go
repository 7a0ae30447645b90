package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/core-service/handlers"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"

	"github.com/gin-gonic/gin"
)

// @title Core Service API
// @version 1.0
// @description Organizations, members, profiles and audit summaries
// @host localhost:8003
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
			"service": "core-service",
			"status":  "healthy",
		})
	})

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/users/me", handlers.GetProfile)
		api.PUT("/users/me", handlers.UpdateProfile)

		api.GET("/organizations", handlers.GetOrganizations)
		api.GET("/organizations/:id", handlers.GetOrganization)
		api.PUT("/organizations/:id", handlers.UpdateOrganization)
		api.DELETE("/organizations/:id", handlers.DeleteOrganization)
		api.GET("/organizations/:id/permissions", handlers.GetMyPermissions)

		api.GET("/organizations/:id/members", handlers.GetMembers)
		api.PATCH("/organizations/:id/members/:userId", handlers.UpdateMemberRole)
		api.DELETE("/organizations/:id/members/:userId", handlers.RemoveMember)

		api.GET("/audit", handlers.GetAuditLog)
		api.GET("/audit/summary", handlers.GetAuditSummary)
		api.GET("/audit/filter-options", handlers.GetAuditFilterOptions)
	}

	port := strings.Split(config.GetConfig().CoreServiceURL, ":")[2]
	log.Printf("🏢 Core Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
