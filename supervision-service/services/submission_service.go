package services

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/cache"
)

// ErrInvalidTransition means the requested status change is not allowed
// from the submission's current status
var ErrInvalidTransition = errors.New("invalid submission status transition")

// authorityNames maps NCA authority codes to their display names
var authorityNames = map[string]string{
	"DE-BNetzA": "Federal Network Agency (Germany)",
	"FR-CNES":   "Centre National d'Études Spatiales (France)",
	"LU-LSA":    "Luxembourg Space Agency",
	"UK-CAA":    "Civil Aviation Authority (United Kingdom)",
	"BE-BELSPO": "Belgian Federal Science Policy Office",
	"NL-RDI":    "Rijksinspectie Digitale Infrastructuur (Netherlands)",
	"IT-ASI":    "Agenzia Spaziale Italiana",
	"ES-AEE":    "Agencia Espacial Española",
}

// methodNames maps submission methods to display names
var methodNames = map[string]string{
	supervision.MethodPortal: "Authority portal",
	supervision.MethodEmail:  "Email",
	supervision.MethodPost:   "Postal mail",
	supervision.MethodAPI:    "API filing",
}

// statusNames maps submission statuses to display names
var statusNames = map[supervision.SubmissionStatus]string{
	supervision.SubmissionStatusDraft:         "Draft",
	supervision.SubmissionStatusSubmitted:     "Submitted",
	supervision.SubmissionStatusReceived:      "Received",
	supervision.SubmissionStatusUnderReview:   "Under review",
	supervision.SubmissionStatusInfoRequested: "Information requested",
	supervision.SubmissionStatusApproved:      "Approved",
	supervision.SubmissionStatusRejected:      "Rejected",
	supervision.SubmissionStatusWithdrawn:     "Withdrawn",
}

// statusColors maps submission statuses to display colors
var statusColors = map[supervision.SubmissionStatus]string{
	supervision.SubmissionStatusDraft:         "gray",
	supervision.SubmissionStatusSubmitted:     "blue",
	supervision.SubmissionStatusReceived:      "teal",
	supervision.SubmissionStatusUnderReview:   "yellow",
	supervision.SubmissionStatusInfoRequested: "orange",
	supervision.SubmissionStatusApproved:      "green",
	supervision.SubmissionStatusRejected:      "red",
	supervision.SubmissionStatusWithdrawn:     "slate",
}

// allowedTransitions is the submission status state machine. Approved,
// rejected and withdrawn are terminal.
var allowedTransitions = map[supervision.SubmissionStatus][]supervision.SubmissionStatus{
	supervision.SubmissionStatusDraft: {
		supervision.SubmissionStatusSubmitted,
		supervision.SubmissionStatusWithdrawn,
	},
	supervision.SubmissionStatusSubmitted: {
		supervision.SubmissionStatusReceived,
		supervision.SubmissionStatusWithdrawn,
	},
	supervision.SubmissionStatusReceived: {
		supervision.SubmissionStatusUnderReview,
		supervision.SubmissionStatusWithdrawn,
	},
	supervision.SubmissionStatusUnderReview: {
		supervision.SubmissionStatusInfoRequested,
		supervision.SubmissionStatusApproved,
		supervision.SubmissionStatusRejected,
		supervision.SubmissionStatusWithdrawn,
	},
	supervision.SubmissionStatusInfoRequested: {
		supervision.SubmissionStatusUnderReview,
		supervision.SubmissionStatusWithdrawn,
	},
}

// AuthorityName returns the display name for an NCA authority code,
// falling back to the code itself for unknown authorities.
func AuthorityName(code string) string {
	if name, ok := authorityNames[code]; ok {
		return name
	}
	return code
}

// IsKnownAuthority reports whether code is a registered NCA authority
func IsKnownAuthority(code string) bool {
	_, ok := authorityNames[code]
	return ok
}

// MethodName returns the display name for a submission method
func MethodName(method string) string {
	if name, ok := methodNames[method]; ok {
		return name
	}
	return method
}

// IsValidMethod reports whether method is an accepted submission method
func IsValidMethod(method string) bool {
	_, ok := methodNames[method]
	return ok
}

// StatusName returns the display name for a submission status
func StatusName(status supervision.SubmissionStatus) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return string(status)
}

// StatusColor returns the display color for a submission status
func StatusColor(status supervision.SubmissionStatus) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return "gray"
}

// CanTransition reports whether a submission may move from one status to another
func CanTransition(from, to supervision.SubmissionStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DecodeAttachments parses the stored attachment list. Malformed stored
// JSON degrades to an empty list, never an error.
func DecodeAttachments(stored string) []supervision.Attachment {
	if stored == "" {
		return []supervision.Attachment{}
	}

	var attachments []supervision.Attachment
	if err := json.Unmarshal([]byte(stored), &attachments); err != nil {
		return []supervision.Attachment{}
	}
	return attachments
}

// DecodeStatusHistory parses the stored status history log. Malformed
// stored JSON degrades to an empty log, never an error.
func DecodeStatusHistory(stored string) []supervision.StatusChange {
	if stored == "" {
		return []supervision.StatusChange{}
	}

	var history []supervision.StatusChange
	if err := json.Unmarshal([]byte(stored), &history); err != nil {
		return []supervision.StatusChange{}
	}
	return history
}

// EncodeAttachments serializes an attachment list for storage
func EncodeAttachments(attachments []supervision.Attachment) string {
	data, err := json.Marshal(attachments)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// AppendStatusChange appends one entry to the encoded status history and
// returns the new encoded form. The history is append-only.
func AppendStatusChange(stored string, change supervision.StatusChange) string {
	history := append(DecodeStatusHistory(stored), change)
	data, err := json.Marshal(history)
	if err != nil {
		return stored
	}
	return string(data)
}

// SubmissionFilters narrows a submission listing
type SubmissionFilters struct {
	ReportID     *uuid.UUID
	NCAAuthority string
	Status       string
	FromDate     *time.Time
	ToDate       *time.Time
	Limit        int
	Offset       int
}

func filteredQuery(db *gorm.DB, userID uuid.UUID, filters SubmissionFilters) *gorm.DB {
	q := db.Model(&supervision.NCASubmission{}).Where("user_id = ?", userID)
	if filters.ReportID != nil {
		q = q.Where("report_id = ?", *filters.ReportID)
	}
	if filters.NCAAuthority != "" {
		q = q.Where("nca_authority = ?", filters.NCAAuthority)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.FromDate != nil {
		q = q.Where("created_at >= ?", *filters.FromDate)
	}
	if filters.ToDate != nil {
		q = q.Where("created_at <= ?", *filters.ToDate)
	}
	return q
}

// ListSubmissions returns one page of the user's submissions plus the
// total count for pagination math, newest first.
func ListSubmissions(db *gorm.DB, userID uuid.UUID, filters SubmissionFilters) ([]supervision.NCASubmission, int64, error) {
	var total int64
	if err := filteredQuery(db, userID, filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var submissions []supervision.NCASubmission
	err := filteredQuery(db, userID, filters).
		Order("created_at DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

type statCount struct {
	Key   string
	Count int64
}

// ComputeSubmissionStats aggregates the user's submissions by authority and
// by status. Results are cached; the cache is invalidated on every write.
func ComputeSubmissionStats(db *gorm.DB, userID uuid.UUID) (*cache.SubmissionStatsData, error) {
	if cm := cache.GetCacheManager(); cm != nil {
		if cached, ok := cm.GetSubmissionStats(userID); ok {
			return cached, nil
		}
	}

	stats := &cache.SubmissionStatsData{
		ByAuthority: map[string]int64{},
		ByStatus:    map[string]int64{},
	}

	var byAuthority []statCount
	err := db.Model(&supervision.NCASubmission{}).
		Select("nca_authority AS key, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("nca_authority").
		Scan(&byAuthority).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byAuthority {
		stats.ByAuthority[row.Key] = row.Count
		stats.Total += row.Count
	}

	var byStatus []statCount
	err = db.Model(&supervision.NCASubmission{}).
		Select("status AS key, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Key] = row.Count
	}

	if cm := cache.GetCacheManager(); cm != nil {
		_ = cm.SetSubmissionStats(userID, stats)
	}

	return stats, nil
}

// ListSubmissionsWithStats issues the page query and the aggregate query as
// independent concurrent reads and joins them. The two results carry no
// cross-consistency guarantee under concurrent writers.
func ListSubmissionsWithStats(db *gorm.DB, userID uuid.UUID, filters SubmissionFilters) ([]supervision.NCASubmission, int64, *cache.SubmissionStatsData, error) {
	var (
		wg          sync.WaitGroup
		submissions []supervision.NCASubmission
		total       int64
		stats       *cache.SubmissionStatsData
		listErr     error
		statsErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		submissions, total, listErr = ListSubmissions(db, userID, filters)
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = ComputeSubmissionStats(db, userID)
	}()
	wg.Wait()

	if listErr != nil {
		return nil, 0, nil, listErr
	}
	if statsErr != nil {
		return nil, 0, nil, statsErr
	}

	return submissions, total, stats, nil
}

// UpdateSubmissionStatus applies a validated status transition, appends the
// change to the append-only history and invalidates cached aggregates.
func UpdateSubmissionStatus(db *gorm.DB, submission *supervision.NCASubmission, newStatus supervision.SubmissionStatus, note string, actorID uuid.UUID) error {
	if !CanTransition(submission.Status, newStatus) {
		return ErrInvalidTransition
	}

	now := time.Now().UTC()
	submission.StatusHistory = AppendStatusChange(submission.StatusHistory, supervision.StatusChange{
		From:      submission.Status,
		To:        newStatus,
		Note:      note,
		ChangedBy: actorID,
		ChangedAt: now,
	})
	submission.Status = newStatus
	if newStatus == supervision.SubmissionStatusSubmitted && submission.SubmittedAt == nil {
		submission.SubmittedAt = &now
	}

	if err := db.Save(submission).Error; err != nil {
		return err
	}

	if cm := cache.GetCacheManager(); cm != nil {
		_ = cm.InvalidateSubmissionStats(submission.UserID)
	}

	return nil
}
