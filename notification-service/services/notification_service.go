package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
)

// MarkAsRead marks the given notifications as read for one user. IDs that
// belong to another user match zero rows and are silently excluded. The
// transition is unconditional, so retries are safe and count already-read
// rows again. Returns the number of rows updated.
func MarkAsRead(db *gorm.DB, userID uuid.UUID, notificationIDs []uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	result := db.Model(&notification.Notification{}).
		Where("user_id = ? AND id IN ?", userID, notificationIDs).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	return result.RowsAffected, result.Error
}

// MarkAllAsRead marks every notification of one user as read and returns
// the number of rows updated.
func MarkAllAsRead(db *gorm.DB, userID uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	result := db.Model(&notification.Notification{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	return result.RowsAffected, result.Error
}

// CountUnread returns the user's unread notification count
func CountUnread(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
