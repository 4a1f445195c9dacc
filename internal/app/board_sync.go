package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/SpaceNomad/internal/domain"
	"github.com/SpaceNomad/internal/infra/metrics"
	"github.com/SpaceNomad/internal/infra/queue"
)

// BoardSyncService consumes mission events from Kafka and pushes them to the
// downstream mission board.
type BoardSyncService struct {
	consumer *queue.KafkaConsumer
	board    domain.BoardGateway
}

func NewBoardSyncService(consumer *queue.KafkaConsumer, board domain.BoardGateway) *BoardSyncService {
	return &BoardSyncService{
		consumer: consumer,
		board:    board,
	}
}

func (s *BoardSyncService) Start(ctx context.Context) {
	slog.Info("Starting board sync service (Kafka consumer)")
	go s.consumer.Start(ctx, s.handleEvent)
}

func (s *BoardSyncService) handleEvent(ctx context.Context, mission *domain.Mission) error {
	start := time.Now()
	slog.Info("Consuming mission event", "mission_id", mission.ID, "name", mission.Name)

	err := s.board.SyncMission(ctx, mission)
	metrics.BoardSyncDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Error("Failed to sync mission to board", "mission_id", mission.ID, "error", err)
		metrics.BoardSyncErrors.WithLabelValues(mission.Status).Inc()
		return err
	}

	metrics.BoardSyncSuccess.WithLabelValues(mission.Status).Inc()
	return nil
}

func (s *BoardSyncService) Stop() error {
	return s.consumer.Close()
}
