package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/api-gateway/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/api-gateway/routes"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"

	_ "github.com/Polleschnerjulian-creator/caelex-assessment-sub018/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Caelex API
// @version 1.0
// @description Regulatory compliance platform for space and satellite operators

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @tag.name deadlines
// @tag.description Regulatory deadline tracking and extensions

// @tag.name assessments
// @tag.description Compliance framework assessments

// @tag.name submissions
// @tag.description NCA submission lifecycle

// @tag.name correspondence
// @tag.description Authority correspondence tracking

// @tag.name reports
// @tag.description Supervision report generation

// @tag.name portal
// @tag.description Supplier portal token management

// @tag.name organizations
// @tag.description Organization management operations

// @tag.name members
// @tag.description Organization membership and roles

// @tag.name notifications
// @tag.description In-app notifications

// @tag.name audit
// @tag.description Audit log summaries

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize global rate limiter
	rateLimiter := middleware.NewRateLimiter(5 * time.Minute) // Cleanup every 5 minutes

	// Global rate limit configuration from environment variables
	globalRateConfig := middleware.NewRateLimitConfig()

	router := gin.Default()

	// Add CORS middleware
	router.Use(cors.Default())

	// Global rate limiter middleware
	router.Use(rateLimiter.GlobalRateLimitMiddleware(globalRateConfig))

	// Health check endpoint
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "API Gateway is running", "Port": "8000"})
	})

	// Compliance service routes
	router.Any("/api/compliance/*path", routes.ProxyToService("compliance"))

	// Supervision service routes
	router.Any("/api/supervision/*path", routes.ProxyToService("supervision"))

	// Public supplier portal route (unauthenticated by design; rate limited)
	router.GET("/api/portal/tokens/:token/validate", routes.ProxyToService("supervision"))

	// Core service routes
	router.Any("/api/users/*path", routes.ProxyToService("core"))
	router.Any("/api/organizations", routes.ProxyToService("core"))
	router.Any("/api/organizations/*path", routes.ProxyToService("core"))
	router.Any("/api/audit", routes.ProxyToService("core"))
	router.Any("/api/audit/*path", routes.ProxyToService("core"))

	// Notification service routes
	router.Any("/api/notifications", routes.ProxyToService("notification"))
	router.Any("/api/notifications/*path", routes.ProxyToService("notification"))

	// WebSocket route
	router.GET("/ws/notifications", routes.ProxyToService("notification"))

	// Swagger documentation UI, development only
	router.GET("/swagger/*any", func(c *gin.Context) {
		if gin.Mode() == gin.DebugMode {
			ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
		} else {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "Swagger documentation not available in production",
			})
		}
	})

	// Server Start
	port := strings.Split(config.GetConfig().APIGatewayURL, ":")[2]
	log.Printf("🚪 API Gateway is running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
