package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/config"
	"github.com/Polleschnerjulian-creator/caelex-assessment-sub018/shared/database/models/notification"
)

// NotificationClient handles communication with the notification service.
// Producing services (compliance, supervision, core) use it to create
// in-app notifications; delivery failures are logged, never propagated.
type NotificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNotificationClient creates a new notification client
func NewNotificationClient() *NotificationClient {
	cfg := config.GetConfig()
	return &NotificationClient{
		baseURL: cfg.NotificationServiceURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CreateNotificationRequest is the payload accepted by the notification service
type CreateNotificationRequest struct {
	UserID   uuid.UUID                      `json:"user_id"`
	Type     string                         `json:"type"`
	Level    notification.NotificationLevel `json:"level"`
	Title    string                         `json:"title"`
	Message  string                         `json:"message"`
	Entity   string                         `json:"entity,omitempty"`
	EntityID *uuid.UUID                     `json:"entity_id,omitempty"`
}

// Notify creates a notification for a user. Best effort: errors are
// logged and swallowed so domain operations never fail on delivery.
func (nc *NotificationClient) Notify(req CreateNotificationRequest) {
	if err := nc.send("/api/notifications", req); err != nil {
		log.Printf("⚠️  Failed to deliver notification (%s): %v", req.Type, err)
	}
}

func (nc *NotificationClient) send(endpoint string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("%s%s", nc.baseURL, endpoint)
	resp, err := nc.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("notification service returned status: %d", resp.StatusCode)
	}

	return nil
}
