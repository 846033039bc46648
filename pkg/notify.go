/*
 * This file is part of privacy-logic.
 *
 * privacy-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * privacy-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with privacy-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookNotificationSink posts consent propagation events to a configured
// webhook. An empty endpoint turns the sink into a no-op, which is the
// default for standalone deployments.
type WebhookNotificationSink struct {
	Endpoint string
	Client   *http.Client
}

func NewWebhookNotificationSink(endpoint string) *WebhookNotificationSink {
	return &WebhookNotificationSink{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send implements NotificationSink.
func (s *WebhookNotificationSink) Send(ctx context.Context, notificationType string, payload map[string]interface{}) error {
	if s.Endpoint == "" {
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"type":    notificationType,
		"sentAt":  time.Now().UTC(),
		"payload": payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint answered status %d", resp.StatusCode)
	}
	return nil
}
