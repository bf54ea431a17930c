package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/config"
	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/logging"
)

// NotificationClient sends push notifications through the hosted delivery
// service. Sends are best-effort; callers log failures and move on.
type NotificationClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewNotificationClient creates a notification client.
func NewNotificationClient(cfg config.ServiceConfig, logger *logging.Logger) *NotificationClient {
	return &NotificationClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type notificationRequest struct {
	Target  string `json:"target"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notify sends a notification to the given target (the shop channel or a
// customer identifier).
func (c *NotificationClient) Notify(ctx context.Context, target, title, message string) error {
	body, err := json.Marshal(notificationRequest{
		Target:  target,
		Title:   title,
		Message: message,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/notifications", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Notification send failed", logging.Fields{
			"target": target,
			"error":  err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}
	return nil
}
