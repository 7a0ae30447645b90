package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performMarkRead(t *testing.T, userID *uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/api/notifications/mark-read", func(c *gin.Context) {
		if userID != nil {
			c.Set("userID", *userID)
		}
		MarkNotificationsRead(c)
	})

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/notifications/mark-read", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMarkNotificationsReadUnauthorized(t *testing.T) {
	w := performMarkRead(t, nil, gin.H{"all": true})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestMarkNotificationsReadRequiresIDsOrAll(t *testing.T) {
	userID := uuid.New()
	w := performMarkRead(t, &userID, gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "notification_ids or all=true")
}

func TestMarkNotificationsReadRejectsOversizedIDList(t *testing.T) {
	userID := uuid.New()

	ids := make([]string, 101)
	for i := range ids {
		ids[i] = uuid.New().String()
	}

	w := performMarkRead(t, &userID, gin.H{"notification_ids": ids})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestMarkNotificationsReadRejectsMalformedIDs(t *testing.T) {
	userID := uuid.New()
	w := performMarkRead(t, &userID, gin.H{"notification_ids": []string{"not-a-uuid"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
