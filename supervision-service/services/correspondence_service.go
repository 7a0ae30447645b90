package services

import (
	"time"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
)

// IsCorrespondenceOverdue reports whether an entry that requires a response
// is overdue at the given instant: no response recorded and the response
// deadline has passed. Derived at query time, never stored.
func IsCorrespondenceOverdue(entry *supervision.Correspondence, now time.Time) bool {
	if !entry.RequiresResponse {
		return false
	}
	if entry.RespondedAt != nil {
		return false
	}
	if entry.ResponseDeadline == nil {
		return false
	}
	return entry.ResponseDeadline.Before(now)
}
