package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/notification-service/handlers"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"

	"github.com/gin-gonic/gin"
)

// @title Notification Service API
// @version 1.0
// @description In-app notifications and real-time delivery
// @host localhost:8004
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
			"service": "notification-service",
			"status":  "healthy",
		})
	})

	// Creation endpoint is called service-to-service, no session required
	router.POST("/api/notifications", handlers.CreateNotification)

	api := router.Group("/api/notifications")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("", handlers.GetNotifications)
		api.POST("/mark-read", handlers.MarkNotificationsRead)
		api.DELETE("/:id", handlers.DeleteNotification)
	}

	// WebSocket endpoint, token authenticated inside the handler
	router.GET("/ws/notifications", handlers.HandleWebSocket)

	// WebSocket message sending endpoint (for internal services)
	router.POST("/ws/send", handlers.SendWebSocketMessage)

	port := strings.Split(config.GetConfig().NotificationServiceURL, ":")[2]
	log.Printf("🔔 Notification Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
