package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/supervision"
	utils "github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/utils/auth"
)

// ErrMalformedToken means the presented token is not in "<id>.<secret>" form
var ErrMalformedToken = errors.New("malformed portal token")

// TokenValidationResult is the public validation outcome returned to
// unauthenticated supplier portal callers.
type TokenValidationResult struct {
	Valid     bool                            `json:"valid"`
	Revoked   bool                            `json:"revoked,omitempty"`
	Expired   bool                            `json:"expired,omitempty"`
	Completed bool                            `json:"completed,omitempty"`
	Request   *supervision.InformationRequest `json:"request,omitempty"`
}

// IssuePortalToken creates a portal token for an information request and
// returns the raw token string. The secret is stored bcrypt-hashed only;
// the raw token cannot be recovered later.
func IssuePortalToken(db *gorm.DB, requestID uuid.UUID) (string, *supervision.PortalToken, error) {
	secret, err := utils.GenerateRandomToken(24)
	if err != nil {
		return "", nil, err
	}

	secretHash, err := utils.HashPortalSecret(secret)
	if err != nil {
		return "", nil, err
	}

	expireDays := config.GetConfig().GetPortalTokenExpireDays()
	token := supervision.PortalToken{
		RequestID:  requestID,
		SecretHash: secretHash,
		ExpiresAt:  time.Now().UTC().AddDate(0, 0, expireDays),
	}

	if err := db.Create(&token).Error; err != nil {
		return "", nil, err
	}

	return token.ID.String() + "." + secret, &token, nil
}

// ParsePortalToken splits a raw portal token into its ID and secret parts
func ParsePortalToken(raw string) (uuid.UUID, string, error) {
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 || parts[1] == "" {
		return uuid.Nil, "", ErrMalformedToken
	}

	tokenID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, "", ErrMalformedToken
	}

	return tokenID, parts[1], nil
}

// ValidateTokenState classifies a token record at the given instant. Pure;
// the caller decides whether to count the access.
func ValidateTokenState(token *supervision.PortalToken, now time.Time) TokenValidationResult {
	if token.RevokedAt != nil {
		return TokenValidationResult{Revoked: true}
	}
	if token.ExpiresAt.Before(now) {
		return TokenValidationResult{Expired: true}
	}
	if token.CompletedAt != nil {
		return TokenValidationResult{Completed: true}
	}
	return TokenValidationResult{Valid: true}
}

// ValidatePortalToken resolves and validates a raw portal token. A valid
// lookup increments the token's access counters: the public GET is
// deliberately side-effectful, the counters feed access tracking.
func ValidatePortalToken(db *gorm.DB, raw string) (*TokenValidationResult, error) {
	tokenID, secret, err := ParsePortalToken(raw)
	if err != nil {
		return nil, err
	}

	var token supervision.PortalToken
	if err := db.First(&token, "id = ?", tokenID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &TokenValidationResult{}, nil
		}
		return nil, err
	}

	if !utils.VerifyPortalSecret(secret, token.SecretHash) {
		return &TokenValidationResult{}, nil
	}

	now := time.Now().UTC()
	result := ValidateTokenState(&token, now)
	if !result.Valid {
		return &result, nil
	}

	var request supervision.InformationRequest
	if err := db.First(&request, "id = ?", token.RequestID).Error; err == nil {
		result.Request = &request
	}

	token.AccessCount++
	token.LastAccessedAt = &now
	if err := db.Save(&token).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
