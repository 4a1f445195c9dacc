package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/SpaceNomad/internal/domain"
	"github.com/SpaceNomad/internal/infra/metrics"
	"github.com/segmentio/kafka-go"
)

type KafkaConsumer struct {
	reader      *kafka.Reader
	dlqProducer domain.EventProducer
}

func NewKafkaConsumer(brokers []string, topic string, groupID string, dlqProducer domain.EventProducer) *KafkaConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	slog.Info("Kafka Consumer initialized", "brokers", brokers, "topic", topic, "group", groupID)
	return &KafkaConsumer{
		reader:      r,
		dlqProducer: dlqProducer,
	}
}

type MessageHandler func(ctx context.Context, mission *domain.Mission) error

func (c *KafkaConsumer) Start(ctx context.Context, handler MessageHandler) {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			slog.Error("Error reading kafka message", "error", err)
			break
		}

		var mission domain.Mission
		if err := json.Unmarshal(m.Value, &mission); err != nil {
			slog.Error("Error unmarshaling mission", "error", err)
			continue
		}

		slog.Debug("Received mission from Kafka", "id", mission.ID, "partition", m.Partition)

		if err := handler(ctx, &mission); err != nil {
			slog.Error("Error handling mission event", "id", mission.ID, "error", err)

			// Publish to Dead Letter Queue
			if c.dlqProducer != nil {
				slog.Info("Publishing failed event to DLQ", "mission_id", mission.ID)
				if dlqErr := c.dlqProducer.Publish(ctx, &mission); dlqErr != nil {
					slog.Error("Failed to publish to DLQ", "mission_id", mission.ID, "error", dlqErr)
				} else {
					metrics.DLQMessagesPublished.Inc()
				}
			}
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
