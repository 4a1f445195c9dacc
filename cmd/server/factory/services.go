package factory

import (
	"errors"
	"fmt"

	"github.com/SpaceNomad/internal/app"
	"github.com/SpaceNomad/internal/domain"
	"github.com/SpaceNomad/internal/infra/queue"
	"github.com/SpaceNomad/internal/infra/repository"
	transport "github.com/SpaceNomad/internal/transport/http"
	"github.com/SpaceNomad/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewMissionRepository creates a MongoDB-backed mission repository.
func NewMissionRepository(client *mongo.Client, cfg *config.Config) (domain.MissionRepository, error) {
	if cfg.MongoDBName == "" {
		return nil, errors.New("mongo database name not configured")
	}
	if cfg.MongoColl == "" {
		return nil, errors.New("mongo collection name not configured")
	}
	return repository.NewMongoRepository(client, cfg.MongoDBName, cfg.MongoColl)
}

// NewNewsPager creates the news pager with validation.
func NewNewsPager(source domain.NewsSource, cfg *config.Config) (*app.NewsPager, error) {
	if source == nil {
		return nil, errors.New("news source is nil")
	}
	if cfg.NewsPageSize < 1 || cfg.NewsPageSize > 100 {
		return nil, fmt.Errorf("invalid news page size: %d (must be 1-100)", cfg.NewsPageSize)
	}
	return app.NewNewsPager(source, cfg.NewsPageSize), nil
}

// NewMissionSyncService creates the launch sync service with validation.
func NewMissionSyncService(
	repo domain.MissionRepository,
	source domain.LaunchSource,
	producer domain.EventProducer,
	cfg *config.Config,
) (*app.MissionSyncService, error) {
	if repo == nil {
		return nil, errors.New("repository is nil")
	}
	if source == nil {
		return nil, errors.New("launch source is nil")
	}
	if producer == nil {
		return nil, errors.New("event producer is nil")
	}
	if cfg.SyncInterval <= 0 {
		return nil, fmt.Errorf("invalid sync interval: %s", cfg.SyncInterval)
	}

	return app.NewMissionSyncService(repo, source, producer, cfg.SyncInterval), nil
}

// NewBoardSyncService creates the board sync service.
func NewBoardSyncService(consumer *queue.KafkaConsumer, board domain.BoardGateway) (*app.BoardSyncService, error) {
	if consumer == nil {
		return nil, errors.New("kafka consumer is nil")
	}
	if board == nil {
		return nil, errors.New("board gateway is nil")
	}
	return app.NewBoardSyncService(consumer, board), nil
}

// NewHTTPHandlers assembles the HTTP handler set.
func NewHTTPHandlers(
	pager *app.NewsPager,
	repo domain.MissionRepository,
	launches domain.LaunchSource,
	syncService *app.MissionSyncService,
) (*transport.Handlers, error) {
	return transport.NewHandlers(pager, repo, launches, syncService)
}
