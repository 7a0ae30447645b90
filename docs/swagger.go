// Package docs Caelex API documentation
package docs

// Swagger documentation info
// @title Caelex API
// @version 1.0
// @description Central API documentation - regulatory compliance platform for space and satellite operators

// @host localhost:8000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

// Compliance Service Endpoints
// @tag.name deadlines
// @tag.description Regulatory deadline tracking and extensions
// @tag.name assessments
// @tag.description Compliance framework assessments

// Supervision Service Endpoints
// @tag.name submissions
// @tag.description NCA submission lifecycle
// @tag.name correspondence
// @tag.description Authority correspondence tracking
// @tag.name reports
// @tag.description Supervision report generation
// @tag.name portal
// @tag.description Supplier portal token management

// Core Service Endpoints
// @tag.name users
// @tag.description User profiles
// @tag.name organizations
// @tag.description Organization management
// @tag.name members
// @tag.description Organization membership and roles
// @tag.name audit
// @tag.description Audit log summaries

// Notification Service Endpoints
// @tag.name notifications
// @tag.description In-app notifications and real-time delivery
