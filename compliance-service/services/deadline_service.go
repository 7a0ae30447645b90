package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/compliance"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/audit"
)

var (
	// ErrDeadlineNotFound means the deadline is absent or not owned by the caller
	ErrDeadlineNotFound = errors.New("deadline not found")
	// ErrDeadlineCompleted means a completed deadline was targeted for a due-date change
	ErrDeadlineCompleted = errors.New("completed deadlines cannot be extended")
	// ErrInvalidDueDate means the new due date is not strictly after the current one
	ErrInvalidDueDate = errors.New("new due date must be after the current due date")
	// ErrReasonRequired means the extension reason was empty
	ErrReasonRequired = errors.New("extension reason is required")
)

// dueSoonWindow is the horizon inside which a deadline counts as due soon
const dueSoonWindow = 7 * 24 * time.Hour

// DeriveExtensionStatus computes the status a deadline takes when extended to
// newDueDate, evaluated at now: more than 7 days out is UPCOMING, still in
// the future is DUE_SOON, anything else stays marked EXTENDED.
func DeriveExtensionStatus(now, newDueDate time.Time) compliance.DeadlineStatus {
	switch {
	case newDueDate.After(now.Add(dueSoonWindow)):
		return compliance.DeadlineStatusUpcoming
	case newDueDate.After(now):
		return compliance.DeadlineStatusDueSoon
	default:
		return compliance.DeadlineStatusExtended
	}
}

// ExtendDeadline moves a deadline's due date forward on behalf of its owner.
// The pre-extension due date is preserved as OriginalDueDate on the first
// extension only; later extensions never overwrite it.
func ExtendDeadline(db *gorm.DB, deadlineID, userID uuid.UUID, newDueDate time.Time, reason, approvedBy string) (*compliance.Deadline, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	var deadline compliance.Deadline
	if err := db.Where("id = ? AND user_id = ?", deadlineID, userID).First(&deadline).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDeadlineNotFound
		}
		return nil, err
	}

	if deadline.Status == compliance.DeadlineStatusCompleted {
		return nil, ErrDeadlineCompleted
	}

	if !newDueDate.After(deadline.DueDate) {
		return nil, ErrInvalidDueDate
	}

	previousDueDate := deadline.DueDate
	previousStatus := deadline.Status

	if deadline.OriginalDueDate == nil {
		original := deadline.DueDate
		deadline.OriginalDueDate = &original
	}

	deadline.DueDate = newDueDate
	deadline.Status = DeriveExtensionStatus(time.Now().UTC(), newDueDate)
	deadline.ExtensionReason = reason
	deadline.ApprovedBy = approvedBy

	if err := db.Save(&deadline).Error; err != nil {
		return nil, err
	}

	audit.Record(db, userID, audit.ActionDeadlineExtended, audit.EntityDeadline, &deadline.ID,
		"Deadline '"+deadline.Title+"' extended from "+previousDueDate.Format(time.RFC3339)+" to "+newDueDate.Format(time.RFC3339),
		map[string]interface{}{"due_date": previousDueDate, "status": previousStatus},
		map[string]interface{}{"due_date": deadline.DueDate, "status": deadline.Status},
	)

	return &deadline, nil
}

// CompleteDeadline marks a deadline as completed. Completed deadlines are
// immutable with respect to due-date changes from then on.
func CompleteDeadline(db *gorm.DB, deadlineID, userID uuid.UUID) (*compliance.Deadline, error) {
	var deadline compliance.Deadline
	if err := db.Where("id = ? AND user_id = ?", deadlineID, userID).First(&deadline).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDeadlineNotFound
		}
		return nil, err
	}

	if deadline.Status == compliance.DeadlineStatusCompleted {
		return &deadline, nil
	}

	now := time.Now().UTC()
	previousStatus := deadline.Status
	deadline.Status = compliance.DeadlineStatusCompleted
	deadline.CompletedAt = &now

	if err := db.Save(&deadline).Error; err != nil {
		return nil, err
	}

	audit.Record(db, userID, audit.ActionDeadlineCompleted, audit.EntityDeadline, &deadline.ID,
		"Deadline '"+deadline.Title+"' marked as completed",
		map[string]interface{}{"status": previousStatus},
		map[string]interface{}{"status": deadline.Status},
	)

	return &deadline, nil
}
