package services

import (
	"encoding/json"
)

// Answer values counted as compliant when scoring an assessment
var compliantAnswers = map[string]bool{
	"yes":            true,
	"compliant":      true,
	"implemented":    true,
	"not_applicable": true,
}

// ComputeScore returns the percentage of answers counted as compliant,
// rounded down. An empty answer set scores zero.
func ComputeScore(answers map[string]string) int {
	if len(answers) == 0 {
		return 0
	}

	compliant := 0
	for _, answer := range answers {
		if compliantAnswers[answer] {
			compliant++
		}
	}

	return compliant * 100 / len(answers)
}

// DecodeAnswers parses the stored JSON answer map. Malformed stored JSON
// degrades to an empty map instead of failing the request.
func DecodeAnswers(stored string) map[string]string {
	if stored == "" {
		return map[string]string{}
	}

	var answers map[string]string
	if err := json.Unmarshal([]byte(stored), &answers); err != nil {
		return map[string]string{}
	}
	return answers
}

// EncodeAnswers serializes an answer map for storage
func EncodeAnswers(answers map[string]string) string {
	data, err := json.Marshal(answers)
	if err != nil {
		return "{}"
	}
	return string(data)
}
