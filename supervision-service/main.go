package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/supervision-service/handlers"

	"github.com/gin-gonic/gin"
)

// @title Supervision Service API
// @version 1.0
// @description NCA submissions, correspondence, reports and the supplier portal
// @host localhost:8002
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
			"service": "supervision-service",
			"status":  "healthy",
		})
	})

	// Public supplier portal endpoint, no authentication
	router.GET("/api/portal/tokens/:token/validate", handlers.ValidatePortalToken)

	api := router.Group("/api/supervision")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/submissions", handlers.GetSubmissions)
		api.POST("/submissions", handlers.CreateSubmission)
		api.GET("/submissions/:id", handlers.GetSubmission)
		api.PATCH("/submissions/:id/status", handlers.UpdateSubmissionStatus)
		api.POST("/submissions/:id/attachments", handlers.UploadSubmissionAttachment)
		api.GET("/submissions/:id/attachments/url", handlers.GetSubmissionAttachmentURL)

		api.GET("/correspondence", handlers.GetCorrespondence)
		api.POST("/correspondence", handlers.CreateCorrespondence)
		api.POST("/correspondence/:id/read", handlers.MarkCorrespondenceRead)
		api.POST("/correspondence/:id/respond", handlers.RecordCorrespondenceResponse)

		api.GET("/reports", handlers.GetReports)
		api.POST("/reports", handlers.CreateReport)
		api.GET("/reports/summary", handlers.GetReportSummary)
		api.POST("/reports/:id/file", handlers.UploadReportFile)
		api.GET("/reports/:id/file/url", handlers.GetReportFileURL)

		api.POST("/portal/requests", handlers.CreateInformationRequest)
		api.POST("/portal/requests/:id/complete", handlers.CompleteInformationRequest)
		api.POST("/portal/tokens/:id/revoke", handlers.RevokePortalToken)
	}

	port := strings.Split(config.GetConfig().SupervisionServiceURL, ":")[2]
	log.Printf("🛰️ Supervision Service starting on port %s...", port)
	log.Fatal(router.Run(":" + port))
}
