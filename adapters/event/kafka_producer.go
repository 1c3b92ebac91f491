package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/trafylabs/academy-api/internal/config"
)

const (
	TopicEnquiryEvents = "enquiry.events"
	TopicProfileEvents = "profile.events"
)

const (
	EnquiryEventTypeReceived = "enquiry.received"
	ProfileEventTypeUpdated  = "profile.updated"
)

type EnquiryEventPayload struct {
	EventType string    `json:"event_type"`
	EnquiryID uuid.UUID `json:"enquiry_id"`
	Course    string    `json:"course"`
	Email     string    `json:"email"`
	FirstName string    `json:"fname"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileEventPayload struct {
	EventType     string    `json:"event_type"`
	UID           uuid.UUID `json:"uid"`
	ProfilePicURL string    `json:"profile_pic_url,omitempty"`
}

// Publisher is what the usecases depend on; the Kafka client below is the
// production implementation.
type Publisher interface {
	PublishEnquiryEvent(ctx context.Context, payload EnquiryEventPayload) error
	PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error
}

type KafkaProducerClient struct {
	EnquiryEventsWriter *kafka.Writer
	ProfileEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	enquiryWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicEnquiryEvents,
		Balancer: &kafka.LeastBytes{},
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		EnquiryEventsWriter: enquiryWriter,
		ProfileEventsWriter: profileWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishEnquiryEvent(ctx context.Context, payload EnquiryEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal enquiry event: %w", err)
	}
	return c.EnquiryEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.EnquiryID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.EnquiryEventsWriter != nil {
		c.EnquiryEventsWriter.Close()
	}
	if c.ProfileEventsWriter != nil {
		c.ProfileEventsWriter.Close()
	}
}
