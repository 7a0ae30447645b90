package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
)

func TestParsePortalToken(t *testing.T) {
	id := uuid.New()

	tokenID, secret, err := ParsePortalToken(id.String() + ".s3cret-part")
	require.NoError(t, err)
	assert.Equal(t, id, tokenID)
	assert.Equal(t, "s3cret-part", secret)
}

func TestParsePortalTokenMalformed(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		uuid.New().String(),        // missing secret entirely
		uuid.New().String() + ".",  // empty secret
		"not-a-uuid.secret",        // bad id part
		".secret",                  // empty id part
	}

	for _, raw := range cases {
		_, _, err := ParsePortalToken(raw)
		assert.ErrorIs(t, err, ErrMalformedToken, "raw=%q", raw)
	}
}

func TestParsePortalTokenSecretMayContainDots(t *testing.T) {
	id := uuid.New()

	_, secret, err := ParsePortalToken(id.String() + ".abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", secret)
}

func TestValidateTokenStatePrecedence(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(30 * 24 * time.Hour)

	// Revoked wins even when also expired and completed
	result := ValidateTokenState(&supervision.PortalToken{
		RevokedAt:   &past,
		ExpiresAt:   past,
		CompletedAt: &past,
	}, now)
	assert.Equal(t, TokenValidationResult{Revoked: true}, result)

	// Expired wins over completed
	result = ValidateTokenState(&supervision.PortalToken{
		ExpiresAt:   past,
		CompletedAt: &past,
	}, now)
	assert.Equal(t, TokenValidationResult{Expired: true}, result)

	// Completed when live but already fulfilled
	result = ValidateTokenState(&supervision.PortalToken{
		ExpiresAt:   future,
		CompletedAt: &past,
	}, now)
	assert.Equal(t, TokenValidationResult{Completed: true}, result)

	// Otherwise valid
	result = ValidateTokenState(&supervision.PortalToken{ExpiresAt: future}, now)
	assert.Equal(t, TokenValidationResult{Valid: true}, result)
}
