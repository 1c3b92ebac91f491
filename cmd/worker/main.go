package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/trafylabs/academy-api/adapters/event"
	enquiryUC "github.com/trafylabs/academy-api/internal/application/usecase/enquiry"
	"github.com/trafylabs/academy-api/internal/config"
	"github.com/trafylabs/academy-api/pkg/logger"
)

func main() {
	fmt.Println("Starting Trafy Academy Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Worker Use Case
	notifyUseCase := enquiryUC.NewNotifyUseCase(cfg.Enquiry.NotifyURL, cfg.Enquiry.NotifyTimeout, appLogger)

	// Kafka Consumer
	enquiryConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicEnquiryEvents,
		GroupID:  "enquiry-notifier-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer enquiryConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicEnquiryEvents)

	ctx := context.Background()
	for {
		msg, err := enquiryConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		log.Printf("Received message from [Topic: %s], [Key: %s]", msg.Topic, string(msg.Key))

		var payload event.EnquiryEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(enquiryConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for EnquiryID: %s", payload.EventType, payload.EnquiryID)

		// The secondary notification is best effort: a failure is logged
		// and the message committed, never retried into a hot loop.
		if err := notifyUseCase.Execute(ctx, payload); err != nil {
			log.Printf("ERROR: Failed to notify for EnquiryID %s: %v", payload.EnquiryID, err)
		}

		commitMessage(enquiryConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
