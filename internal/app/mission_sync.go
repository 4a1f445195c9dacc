package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SpaceNomad/internal/domain"
	"github.com/SpaceNomad/internal/infra/metrics"
	"github.com/SpaceNomad/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// MissionSyncService keeps the local mission store in step with the external
// launches API: one sync at startup, then one per interval, plus manual
// triggers from the HTTP layer.
type MissionSyncService struct {
	repo     domain.MissionRepository
	source   domain.LaunchSource
	producer domain.EventProducer
	interval time.Duration
	sampler  *logging.ErrorSampler
	trigger  chan struct{}
}

func NewMissionSyncService(
	repo domain.MissionRepository,
	source domain.LaunchSource,
	producer domain.EventProducer,
	interval time.Duration,
) *MissionSyncService {
	return &MissionSyncService{
		repo:     repo,
		source:   source,
		producer: producer,
		interval: interval,
		sampler:  logging.NewErrorSampler(10),
		trigger:  make(chan struct{}, 1),
	}
}

func (s *MissionSyncService) Start(ctx context.Context) {
	slog.Info("Starting mission sync service", "interval", s.interval)

	// Initial sync at startup, mirroring the periodic behavior
	if err := s.SyncOnce(ctx); err != nil {
		slog.Error("Initial mission sync failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Mission sync service stopped")
			return
		case <-ticker.C:
			s.runSync(ctx)
		case <-s.trigger:
			s.runSync(ctx)
		}
	}
}

// TriggerSync requests an out-of-band sync. It never blocks; a trigger while
// one is already pending is coalesced.
func (s *MissionSyncService) TriggerSync() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *MissionSyncService) runSync(ctx context.Context) {
	if err := s.SyncOnce(ctx); err != nil {
		if s.sampler.ShouldLog("launch_sync_error") {
			slog.Error("Mission sync failed", "error", err, "occurrences", s.sampler.GetCount("launch_sync_error"))
		}
		return
	}
	s.sampler.Reset("launch_sync_error")
}

// SyncOnce fetches the launch list, converts it to missions, upserts the
// batch, and publishes the missions whose content actually changed.
func (s *MissionSyncService) SyncOnce(ctx context.Context) error {
	tr := otel.Tracer("space-nomad")
	ctx, span := tr.Start(ctx, "syncMissions")
	defer span.End()

	start := time.Now()

	launches, err := s.source.FetchLaunches(ctx)
	if err != nil {
		span.RecordError(err)
		metrics.MissionsSynced.WithLabelValues("error_fetch").Inc()
		return fmt.Errorf("fetching launches: %w", err)
	}

	now := time.Now().UTC()
	missions := make([]domain.Mission, 0, len(launches))
	var ids []string
	for _, launch := range launches {
		mission, ok := launch.Mission()
		if !ok {
			slog.Warn("Skipping invalid launch", "id", launch.ID, "name", launch.Name)
			metrics.MissionsSynced.WithLabelValues("skipped_invalid").Inc()
			continue
		}
		mission.ContentHash = mission.ComputeHash()
		mission.FetchedAt = now
		missions = append(missions, mission)
		ids = append(ids, mission.ID)
	}
	span.SetAttributes(attribute.Int("missions", len(missions)))

	if len(missions) == 0 {
		slog.Warn("No launches returned from API")
		return nil
	}

	existingHashes, err := s.repo.GetContentHashes(ctx, ids)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("fetching content hashes: %w", err)
	}

	var changed []domain.Mission
	skipped := 0
	for i := range missions {
		oldHash, exists := existingHashes[missions[i].ID]
		switch {
		case !exists:
			slog.Info("Mission new", "id", missions[i].ID, "name", missions[i].Name)
		case oldHash != missions[i].ContentHash:
			slog.Info("Mission changed", "id", missions[i].ID, "name", missions[i].Name)
		default:
			skipped++
			continue
		}
		missions[i].UpdatedAt = now
		changed = append(changed, missions[i])
	}

	if skipped > 0 {
		metrics.MissionsUnchangedSkipped.Add(float64(skipped))
	}

	if len(changed) == 0 {
		slog.Debug("No mission changes this cycle", "checked", len(missions))
		metrics.SyncDuration.Observe(time.Since(start).Seconds())
		return nil
	}

	// Only changed missions are written: an unchanged mission's stored
	// updated_at must survive the cycle, and $set replaces the whole document.
	if err := s.repo.BulkUpsert(ctx, changed); err != nil {
		span.RecordError(err)
		metrics.MissionsSynced.WithLabelValues("error_store").Inc()
		return fmt.Errorf("bulk upsert failed: %w", err)
	}
	metrics.MissionsSynced.WithLabelValues("success").Add(float64(len(changed)))

	slog.Info("Publishing changed missions", "count", len(changed))
	if err := s.producer.PublishBatch(ctx, changed); err != nil {
		// Data is already in the store; the board catches up next cycle.
		slog.Error("Error publishing mission batch", "count", len(changed), "error", err)
		metrics.PublishErrors.Inc()
	} else {
		metrics.MissionEventsPublished.Add(float64(len(changed)))
	}

	metrics.SyncDuration.Observe(time.Since(start).Seconds())
	return nil
}
