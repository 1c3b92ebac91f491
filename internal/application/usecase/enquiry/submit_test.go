package enquiry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trafylabs/academy-api/adapters/event"
	"github.com/trafylabs/academy-api/internal/domain/enquiry"
	"github.com/trafylabs/academy-api/pkg/apperror"
	"github.com/trafylabs/academy-api/pkg/logger"
	"github.com/trafylabs/academy-api/pkg/validation"
)

type fakeEnquiryRepo struct {
	saved   []*enquiry.Enquiry
	saveErr error
}

func (r *fakeEnquiryRepo) Save(_ context.Context, e *enquiry.Enquiry) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, e)
	return nil
}

type fakePublisher struct {
	enquiries atomic.Int64
	profiles  atomic.Int64
}

func (p *fakePublisher) PublishEnquiryEvent(context.Context, event.EnquiryEventPayload) error {
	p.enquiries.Add(1)
	return nil
}

func (p *fakePublisher) PublishProfileEvent(context.Context, event.ProfileEventPayload) error {
	p.profiles.Add(1)
	return nil
}

func validInput() SubmitInput {
	return SubmitInput{
		Course:    "product-design",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "5551234567",
		Message:   "Interested in the next cohort.",
	}
}

func TestSubmit_ForwardsToSink(t *testing.T) {
	var hits atomic.Int64
	var got map[string]string
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	repo := &fakeEnquiryRepo{}
	uc := NewSubmitUseCase(repo, &fakePublisher{}, sink.URL, logger.NewNop())

	output, err := uc.Execute(context.Background(), validInput())
	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.NotEqual(t, output.EnquiryID.String(), "00000000-0000-0000-0000-000000000000")

	assert.Equal(t, int64(1), hits.Load())
	assert.Equal(t, "Jane", got["fname"])
	assert.Equal(t, "jane@example.com", got["email"])

	assert.Len(t, repo.saved, 1)
	assert.Equal(t, "product-design", repo.saved[0].Course)
}

func TestSubmit_InvalidFormNeverReachesSink(t *testing.T) {
	var hits atomic.Int64
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer sink.Close()

	uc := NewSubmitUseCase(&fakeEnquiryRepo{}, &fakePublisher{}, sink.URL, logger.NewNop())

	input := validInput()
	input.Phone = "12345"
	_, err := uc.Execute(context.Background(), input)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, validation.DefectPhone, appErr.Fields["phone"])
	assert.Zero(t, hits.Load())
}

func TestSubmit_RequiredFieldDefects(t *testing.T) {
	uc := NewSubmitUseCase(&fakeEnquiryRepo{}, &fakePublisher{}, "http://unused.invalid", logger.NewNop())

	_, err := uc.Execute(context.Background(), SubmitInput{Message: "only a message"})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Please enter your first name.", appErr.Fields["fname"])
	assert.Equal(t, "Please enter your last name.", appErr.Fields["lname"])
	assert.Equal(t, "Please enter your email address.", appErr.Fields["email"])
	assert.Equal(t, "Please enter your phone number.", appErr.Fields["phone"])
}

func TestSubmit_SinkRejectionFailsSubmission(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer sink.Close()

	repo := &fakeEnquiryRepo{}
	uc := NewSubmitUseCase(repo, &fakePublisher{}, sink.URL, logger.NewNop())

	_, err := uc.Execute(context.Background(), validInput())
	assert.Error(t, err)
	assert.Empty(t, repo.saved)
}

func TestSubmit_SaveFailureDoesNotFailSubmission(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	repo := &fakeEnquiryRepo{saveErr: errors.New("db down")}
	uc := NewSubmitUseCase(repo, &fakePublisher{}, sink.URL, logger.NewNop())

	output, err := uc.Execute(context.Background(), validInput())
	assert.NoError(t, err)
	assert.NotNil(t, output)
}

func TestSubmit_PerCourseSinkOverride(t *testing.T) {
	var defaultHits, overrideHits atomic.Int64
	defaultSink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defaultHits.Add(1)
	}))
	defer defaultSink.Close()
	overrideSink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		overrideHits.Add(1)
	}))
	defer overrideSink.Close()

	uc := NewSubmitUseCase(&fakeEnquiryRepo{}, &fakePublisher{}, defaultSink.URL, logger.NewNop())

	input := validInput()
	input.SinkURL = overrideSink.URL
	_, err := uc.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Zero(t, defaultHits.Load())
	assert.Equal(t, int64(1), overrideHits.Load())
}
