package audit

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
)

// Audit actions recorded by the domain services
const (
	ActionDeadlineExtended       = "deadline.extended"
	ActionDeadlineCompleted      = "deadline.completed"
	ActionDeadlineCreated        = "deadline.created"
	ActionAssessmentCompleted    = "assessment.completed"
	ActionSubmissionCreated      = "submission.created"
	ActionSubmissionStatusChange = "submission.status_changed"
	ActionMemberRoleChanged      = "member.role_changed"
	ActionMemberRemoved          = "member.removed"
	ActionOrganizationUpdated    = "organization.updated"
	ActionReportGenerated        = "report.generated"
	ActionPortalTokenIssued      = "portal_token.issued"
)

// Entity types referenced by audit records
const (
	EntityDeadline       = "deadline"
	EntityAssessment     = "assessment"
	EntitySubmission     = "nca_submission"
	EntityMember         = "organization_member"
	EntityOrganization   = "organization"
	EntityCorrespondence = "correspondence"
	EntityReport         = "supervision_report"
	EntityPortalToken    = "portal_token"
)

// Record appends one audit log row. Best effort: a failed audit write is
// logged but never fails the operation that triggered it.
func Record(db *gorm.DB, userID uuid.UUID, action, entityType string, entityID *uuid.UUID, description string, oldValues, newValues interface{}) {
	entry := notification.AuditLog{
		UserID:      userID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		OldValues:   oldValues,
		NewValues:   newValues,
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Printf("⚠️  Failed to write audit log (%s): %v", action, err)
	}
}
