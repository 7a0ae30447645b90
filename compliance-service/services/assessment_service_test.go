package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		want    int
	}{
		{"empty answer set scores zero", map[string]string{}, 0},
		{"nil answer set scores zero", nil, 0},
		{
			"all compliant",
			map[string]string{"q1": "yes", "q2": "compliant", "q3": "implemented", "q4": "not_applicable"},
			100,
		},
		{
			"none compliant",
			map[string]string{"q1": "no", "q2": "partial", "q3": ""},
			0,
		},
		{
			"rounds down",
			map[string]string{"q1": "yes", "q2": "no", "q3": "no"},
			33,
		},
		{
			"two of three",
			map[string]string{"q1": "yes", "q2": "not_applicable", "q3": "no"},
			66,
		},
		{
			"answer values are case sensitive",
			map[string]string{"q1": "YES", "q2": "yes"},
			50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeScore(tt.answers))
		})
	}
}

func TestDecodeAnswers(t *testing.T) {
	assert.Equal(t, map[string]string{}, DecodeAnswers(""))
	assert.Equal(t, map[string]string{}, DecodeAnswers("not json"))
	assert.Equal(t, map[string]string{}, DecodeAnswers(`{"q1": 42}`))
	assert.Equal(t, map[string]string{"q1": "yes"}, DecodeAnswers(`{"q1":"yes"}`))
}

func TestEncodeDecodeAnswersRoundTrip(t *testing.T) {
	answers := map[string]string{"q1": "yes", "q2": "no"}
	assert.Equal(t, answers, DecodeAnswers(EncodeAnswers(answers)))
}
