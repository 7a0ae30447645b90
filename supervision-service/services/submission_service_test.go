package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from supervision.SubmissionStatus
		to   supervision.SubmissionStatus
		want bool
	}{
		{supervision.SubmissionStatusDraft, supervision.SubmissionStatusSubmitted, true},
		{supervision.SubmissionStatusDraft, supervision.SubmissionStatusWithdrawn, true},
		{supervision.SubmissionStatusDraft, supervision.SubmissionStatusApproved, false},
		{supervision.SubmissionStatusSubmitted, supervision.SubmissionStatusReceived, true},
		{supervision.SubmissionStatusSubmitted, supervision.SubmissionStatusDraft, false},
		{supervision.SubmissionStatusReceived, supervision.SubmissionStatusUnderReview, true},
		{supervision.SubmissionStatusUnderReview, supervision.SubmissionStatusInfoRequested, true},
		{supervision.SubmissionStatusUnderReview, supervision.SubmissionStatusApproved, true},
		{supervision.SubmissionStatusUnderReview, supervision.SubmissionStatusRejected, true},
		{supervision.SubmissionStatusInfoRequested, supervision.SubmissionStatusUnderReview, true},
		{supervision.SubmissionStatusInfoRequested, supervision.SubmissionStatusApproved, false},
		// Terminal statuses allow no further transitions
		{supervision.SubmissionStatusApproved, supervision.SubmissionStatusUnderReview, false},
		{supervision.SubmissionStatusRejected, supervision.SubmissionStatusUnderReview, false},
		{supervision.SubmissionStatusWithdrawn, supervision.SubmissionStatusDraft, false},
		// Self-transitions are not allowed
		{supervision.SubmissionStatusUnderReview, supervision.SubmissionStatusUnderReview, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestEveryStatusCanReachWithdrawnUnlessTerminal(t *testing.T) {
	open := []supervision.SubmissionStatus{
		supervision.SubmissionStatusDraft,
		supervision.SubmissionStatusSubmitted,
		supervision.SubmissionStatusReceived,
		supervision.SubmissionStatusUnderReview,
		supervision.SubmissionStatusInfoRequested,
	}
	for _, status := range open {
		assert.True(t, CanTransition(status, supervision.SubmissionStatusWithdrawn), "status %s should allow withdrawal", status)
	}
}

func TestDecodeAttachmentsDegradesToEmpty(t *testing.T) {
	assert.Empty(t, DecodeAttachments(""))
	assert.Empty(t, DecodeAttachments("not json"))
	assert.Empty(t, DecodeAttachments(`{"file_name":"x"}`)) // object, not array

	decoded := DecodeAttachments(`[{"file_name":"annex-a.pdf","file_key":"k","file_size":10}]`)
	require.Len(t, decoded, 1)
	assert.Equal(t, "annex-a.pdf", decoded[0].FileName)
	assert.Equal(t, int64(10), decoded[0].FileSize)
}

func TestDecodeStatusHistoryDegradesToEmpty(t *testing.T) {
	assert.Empty(t, DecodeStatusHistory(""))
	assert.Empty(t, DecodeStatusHistory("{broken"))
}

func TestAppendStatusChangeIsAppendOnly(t *testing.T) {
	actor := uuid.New()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	encoded := AppendStatusChange("", supervision.StatusChange{
		From:      supervision.SubmissionStatusDraft,
		To:        supervision.SubmissionStatusSubmitted,
		ChangedBy: actor,
		ChangedAt: now,
	})
	encoded = AppendStatusChange(encoded, supervision.StatusChange{
		From:      supervision.SubmissionStatusSubmitted,
		To:        supervision.SubmissionStatusReceived,
		Note:      "acknowledged by NCA",
		ChangedBy: actor,
		ChangedAt: now.Add(time.Hour),
	})

	history := DecodeStatusHistory(encoded)
	require.Len(t, history, 2)
	assert.Equal(t, supervision.SubmissionStatusSubmitted, history[0].To)
	assert.Equal(t, supervision.SubmissionStatusReceived, history[1].To)
	assert.Equal(t, "acknowledged by NCA", history[1].Note)
}

func TestAppendStatusChangeOnMalformedHistoryStartsFresh(t *testing.T) {
	encoded := AppendStatusChange("{broken", supervision.StatusChange{
		From: supervision.SubmissionStatusDraft,
		To:   supervision.SubmissionStatusSubmitted,
	})

	history := DecodeStatusHistory(encoded)
	require.Len(t, history, 1)
}

func TestDisplayLabelFallbacks(t *testing.T) {
	assert.Equal(t, "Luxembourg Space Agency", AuthorityName("LU-LSA"))
	assert.Equal(t, "XX-UNKNOWN", AuthorityName("XX-UNKNOWN"))

	assert.Equal(t, "Email", MethodName(supervision.MethodEmail))
	assert.Equal(t, "carrier_pigeon", MethodName("carrier_pigeon"))

	assert.Equal(t, "Under review", StatusName(supervision.SubmissionStatusUnderReview))
	assert.Equal(t, "BOGUS", StatusName(supervision.SubmissionStatus("BOGUS")))

	assert.Equal(t, "yellow", StatusColor(supervision.SubmissionStatusUnderReview))
	assert.Equal(t, "gray", StatusColor(supervision.SubmissionStatus("BOGUS")))
}

func TestAuthorityAndMethodValidation(t *testing.T) {
	assert.True(t, IsKnownAuthority("DE-BNetzA"))
	assert.False(t, IsKnownAuthority("ZZ-NONE"))

	assert.True(t, IsValidMethod(supervision.MethodPortal))
	assert.False(t, IsValidMethod("fax"))
}
