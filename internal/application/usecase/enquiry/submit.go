package enquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trafylabs/academy-api/adapters/event"
	"github.com/trafylabs/academy-api/internal/domain/enquiry"
	"github.com/trafylabs/academy-api/pkg/apperror"
	"github.com/trafylabs/academy-api/pkg/logger"
	"github.com/trafylabs/academy-api/pkg/validation"
)

// SubmitUseCase validates a course enquiry, forwards it to the course's
// sink endpoint, and records it. Success is defined by the sink accepting
// the forward with a 2xx status; everything after that is best effort.
type SubmitUseCase struct {
	repo       enquiry.Repository
	events     event.Publisher
	httpClient *http.Client
	sinkURL    string
	logger     logger.Logger
}

func NewSubmitUseCase(
	repo enquiry.Repository,
	events event.Publisher,
	sinkURL string,
	log logger.Logger,
) *SubmitUseCase {
	return &SubmitUseCase{
		repo:       repo,
		events:     events,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sinkURL:    sinkURL,
		logger:     log,
	}
}

type SubmitInput struct {
	Course    string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
	// SinkURL overrides the configured sink for course pages that carry
	// their own endpoint.
	SinkURL string
}

type SubmitOutput struct {
	EnquiryID uuid.UUID
}

type sinkPayload struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

func (uc *SubmitUseCase) Execute(ctx context.Context, input SubmitInput) (*SubmitOutput, error) {
	defects := validation.ValidateForm(map[validation.FieldKind]string{
		validation.FieldFirstName: input.FirstName,
		validation.FieldLastName:  input.LastName,
		validation.FieldEmail:     input.Email,
		validation.FieldPhone:     input.Phone,
		validation.FieldMessage:   input.Message,
	})
	if len(defects) > 0 {
		return nil, apperror.NewValidationFailed(defects)
	}

	sinkURL := input.SinkURL
	if sinkURL == "" {
		sinkURL = uc.sinkURL
	}

	if err := uc.forward(ctx, sinkURL, input); err != nil {
		return nil, err
	}

	e := &enquiry.Enquiry{
		ID:        uuid.New(),
		Course:    input.Course,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}

	// The sink accepted the enquiry; a local save failure loses only the
	// backing record, not the submission.
	if err := uc.repo.Save(ctx, e); err != nil {
		uc.logger.Error("Failed to save enquiry", err, zap.String("enquiry_id", e.ID.String()))
	}

	go func() {
		payload := event.EnquiryEventPayload{
			EventType: event.EnquiryEventTypeReceived,
			EnquiryID: e.ID,
			Course:    e.Course,
			Email:     e.Email,
			FirstName: e.FirstName,
			CreatedAt: e.CreatedAt,
		}
		if err := uc.events.PublishEnquiryEvent(context.Background(), payload); err != nil {
			uc.logger.Error("Failed to publish 'enquiry.received' event", err, zap.String("enquiry_id", e.ID.String()))
		}
	}()

	return &SubmitOutput{EnquiryID: e.ID}, nil
}

func (uc *SubmitUseCase) forward(ctx context.Context, sinkURL string, input SubmitInput) error {
	body, err := json.Marshal(sinkPayload{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
	})
	if err != nil {
		return apperror.NewInternal("failed to marshal enquiry payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sinkURL, bytes.NewReader(body))
	if err != nil {
		return apperror.NewInternal("failed to build enquiry request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return apperror.NewInternal("enquiry sink unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.NewInternal(fmt.Sprintf("enquiry sink rejected submission: %d", resp.StatusCode), nil)
	}
	return nil
}
