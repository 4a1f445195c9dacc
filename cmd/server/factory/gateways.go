package factory

import (
	"errors"

	"github.com/SpaceNomad/internal/domain"
	"github.com/SpaceNomad/internal/infra/gateway"
	"github.com/SpaceNomad/internal/infra/queue"
	"github.com/SpaceNomad/pkg/config"
)

// NewNewsSource creates the Spaceflight News API gateway.
func NewNewsSource(cfg *config.Config) (domain.NewsSource, error) {
	if cfg.NewsAPIURL == "" {
		return nil, errors.New("news API URL not configured")
	}
	return gateway.NewSpaceflightGateway(cfg.NewsAPIURL), nil
}

// NewLaunchSource creates the SpaceX launches gateway.
func NewLaunchSource(cfg *config.Config) (domain.LaunchSource, error) {
	if cfg.SpaceXAPIURL == "" {
		return nil, errors.New("SpaceX API URL not configured")
	}
	return gateway.NewSpaceXGateway(cfg.SpaceXAPIURL), nil
}

// NewBoardGateway creates the downstream mission board gateway.
func NewBoardGateway() (domain.BoardGateway, error) {
	return gateway.NewBoardMockGateway(), nil
}

// NewEventProducer wraps the Kafka producer as an EventProducer.
func NewEventProducer(p *queue.KafkaProducer) (domain.EventProducer, error) {
	if p == nil {
		return nil, errors.New("kafka producer is nil")
	}
	return p, nil
}
