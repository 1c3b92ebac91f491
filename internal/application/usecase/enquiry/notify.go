package enquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/trafylabs/academy-api/adapters/event"
	"github.com/trafylabs/academy-api/pkg/logger"
)

// NotifyUseCase delivers the secondary enquiry notification to the external
// endpoint. It is best-effort telemetry: the visitor already saw their
// success notice, so a delivery failure is only logged by the caller.
type NotifyUseCase struct {
	httpClient *http.Client
	notifyURL  string
	logger     logger.Logger
}

func NewNotifyUseCase(notifyURL string, timeout time.Duration, log logger.Logger) *NotifyUseCase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &NotifyUseCase{
		httpClient: &http.Client{Timeout: timeout},
		notifyURL:  notifyURL,
		logger:     log,
	}
}

type notifyPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"fname"`
	Course    string `json:"course"`
}

func (uc *NotifyUseCase) Execute(ctx context.Context, payload event.EnquiryEventPayload) error {
	body, err := json.Marshal(notifyPayload{
		Email:     payload.Email,
		FirstName: payload.FirstName,
		Course:    payload.Course,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notify payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uc.notifyURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify endpoint rejected payload: %d", resp.StatusCode)
	}
	return nil
}
