package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
)

func TestIsCorrespondenceOverdue(t *testing.T) {
	now := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	tests := []struct {
		name  string
		entry supervision.Correspondence
		want  bool
	}{
		{
			"no response required",
			supervision.Correspondence{RequiresResponse: false, ResponseDeadline: &past},
			false,
		},
		{
			"already responded",
			supervision.Correspondence{RequiresResponse: true, ResponseDeadline: &past, RespondedAt: &now},
			false,
		},
		{
			"no deadline set",
			supervision.Correspondence{RequiresResponse: true},
			false,
		},
		{
			"deadline in the future",
			supervision.Correspondence{RequiresResponse: true, ResponseDeadline: &future},
			false,
		},
		{
			"deadline passed without response",
			supervision.Correspondence{RequiresResponse: true, ResponseDeadline: &past},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrespondenceOverdue(&tt.entry, now))
		})
	}
}
