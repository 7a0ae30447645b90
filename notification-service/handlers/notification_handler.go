package handlers

import (
	"net/http"
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/notification-service/services"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/middleware"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/query"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationResponse represents a notification with its display configuration
type NotificationResponse struct {
	notification.Notification
	Display notification.DisplayConfig `json:"display"`
}

// CreateNotificationRequest represents the payload producing services send
type CreateNotificationRequest struct {
	UserID   uuid.UUID                      `json:"user_id" binding:"required"`
	Type     string                         `json:"type" binding:"required"`
	Level    notification.NotificationLevel `json:"level"`
	Title    string                         `json:"title" binding:"required"`
	Message  string                         `json:"message" binding:"required"`
	Entity   string                         `json:"entity"`
	EntityID *uuid.UUID                     `json:"entity_id"`
}

// MarkReadRequest represents request body for the bulk mark-read operation
type MarkReadRequest struct {
	NotificationIDs []uuid.UUID `json:"notification_ids" binding:"omitempty,min=1,max=100"`
	All             bool        `json:"all"`
}

// GetNotifications lists the caller's notifications
// @Summary List notifications
// @Description List the current user's notifications with per-type display config, newest first
// @Tags notifications
// @Accept json
// @Produce json
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Page size (default: 20)"
// @Param offset query int false "Page offset (default: 0)"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /notifications [get]
func GetNotifications(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, offset := query.ParseLimitOffset(c)
	db := database.GetDB()

	dbQuery := db.Model(&notification.Notification{}).Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		dbQuery = dbQuery.Where("is_read = ?", false)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		response.SanitizedInternalError(c, "failed to count notifications", err)
		return
	}

	var notifications []notification.Notification
	if err := dbQuery.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error; err != nil {
		response.SanitizedInternalError(c, "failed to retrieve notifications", err)
		return
	}

	unread, err := services.CountUnread(db, userID)
	if err != nil {
		response.SanitizedInternalError(c, "failed to count unread notifications", err)
		return
	}

	items := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, NotificationResponse{
			Notification: n,
			Display:      notification.GetDisplayConfig(n.Type),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"total":         total,
		"unread":        unread,
		"limit":         limit,
		"offset":        offset,
	})
}

// CreateNotification creates a notification for a user
// @Summary Create notification
// @Description Create a notification. Called by the producing services; the new notification is also pushed over WebSocket when the user is connected.
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body CreateNotificationRequest true "Notification data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 500 {object} map[string]string "Server error"
// @Router /notifications [post]
func CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if req.Level == "" {
		req.Level = notification.NotificationLevelInfo
	}

	notif := notification.Notification{
		UserID:   req.UserID,
		Type:     req.Type,
		Level:    req.Level,
		Title:    req.Title,
		Message:  req.Message,
		Entity:   req.Entity,
		EntityID: req.EntityID,
	}

	db := database.GetDB()
	if err := db.Create(&notif).Error; err != nil {
		response.SanitizedInternalError(c, "failed to create notification", err)
		return
	}

	// Push to the user if connected; delivery failure is not an error
	wsManager := services.GetWebSocketManager()
	_ = wsManager.SendToUser(notif.UserID.String(), &notification.WebSocketMessage{
		Type:      notif.Type,
		Level:     notif.Level,
		Title:     notif.Title,
		Message:   notif.Message,
		Timestamp: time.Now().UTC(),
		Entity:    notif.Entity,
		EntityID:  notif.EntityID,
		UserID:    &notif.UserID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"notification": NotificationResponse{
			Notification: notif,
			Display:      notification.GetDisplayConfig(notif.Type),
		},
	})
}

// MarkNotificationsRead marks notifications as read in bulk
// @Summary Mark notifications as read
// @Description Mark up to 100 of the current user's notifications as read, or all of them with all=true. Returns the number of rows updated. Idempotent.
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body MarkReadRequest true "Notification IDs or all=true"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid request data"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /notifications/mark-read [post]
func MarkNotificationsRead(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if !req.All && len(req.NotificationIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide notification_ids or all=true"})
		return
	}

	db := database.GetDB()

	var (
		updated int64
		err     error
	)
	if req.All {
		updated, err = services.MarkAllAsRead(db, userID)
	} else {
		updated, err = services.MarkAsRead(db, userID, req.NotificationIDs)
	}
	if err != nil {
		response.SanitizedInternalError(c, "failed to mark notifications as read", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": updated,
	})
}

// DeleteNotification deletes one of the caller's notifications
// @Summary Delete notification
// @Description Delete one of the current user's notifications
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID" format(uuid)
// @Security BearerAuth
// @Success 204
// @Failure 400 {object} map[string]string "Invalid notification ID format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Notification not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /notifications/{id} [delete]
func DeleteNotification(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	db := database.GetDB()

	result := db.Where("id = ? AND user_id = ?", notifID, userID).Delete(&notification.Notification{})
	if result.Error != nil {
		response.SanitizedInternalError(c, "failed to delete notification", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
