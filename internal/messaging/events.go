package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/mercata/affinity/internal/config"
	"github.com/mercata/affinity/pkg/models"
)

// RecommendationEvent is published whenever a recommendation set is
// refreshed, so downstream consumers (notification senders, analytics) can
// react without polling the store.
type RecommendationEvent struct {
	EventID         uuid.UUID               `json:"event_id"`
	UserID          int                     `json:"user_id"`
	Recommendations []models.Recommendation `json:"recommendations"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

// EventPublisher writes recommendation events to kafka. With no brokers
// configured it becomes a no-op, which keeps local development free of a
// broker dependency.
type EventPublisher struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewEventPublisher(cfg *config.Config, logger *logrus.Logger) *EventPublisher {
	p := &EventPublisher{logger: logger}

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("Kafka brokers not configured, event publication disabled")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.Hash{}, // key by user id so one user's events stay ordered
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
	}
	return p
}

func (p *EventPublisher) Enabled() bool {
	return p.writer != nil
}

func (p *EventPublisher) PublishGenerated(ctx context.Context, userID int, recommendations []models.Recommendation) error {
	if !p.Enabled() {
		return nil
	}

	event := RecommendationEvent{
		EventID:         uuid.New(),
		UserID:          userID,
		Recommendations: recommendations,
		GeneratedAt:     time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strconv.Itoa(userID)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "generated_at", Value: []byte(event.GeneratedAt.Format(time.RFC3339))},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		p.logger.WithError(err).WithField("user_id", userID).Error("Failed to publish recommendation event")
		return fmt.Errorf("failed to write recommendation event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"event_id": event.EventID,
		"user_id":  userID,
		"count":    len(recommendations),
	}).Info("Recommendation event published")

	return nil
}

func (p *EventPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
