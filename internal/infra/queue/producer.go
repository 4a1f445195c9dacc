package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/SpaceNomad/internal/domain"
	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{}, // Hash balancer ensures messages with same key go to same partition
	}
	slog.Info("Kafka Producer initialized", "brokers", brokers, "topic", topic)
	return &KafkaProducer{writer: w}
}

func (p *KafkaProducer) Publish(ctx context.Context, mission *domain.Mission) error {
	payload, err := json.Marshal(mission)
	if err != nil {
		return err
	}

	// Key by mission ID so updates for the same mission stay ordered within
	// a partition.
	msg := kafka.Message{
		Key:   []byte(mission.ID),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("Failed to write to kafka", "error", err)
		return err
	}

	slog.Debug("Published mission to Kafka", "id", mission.ID, "name", mission.Name)
	return nil
}

func (p *KafkaProducer) PublishBatch(ctx context.Context, missions []domain.Mission) error {
	if len(missions) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(missions))
	for i := range missions {
		payload, err := json.Marshal(&missions[i])
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(missions[i].ID),
			Value: payload,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		slog.Error("Failed to write batch to kafka", "count", len(msgs), "error", err)
		return err
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
