package gateway

import (
	"context"
	"log/slog"

	"github.com/SpaceNomad/internal/domain"
)

// BoardMockGateway stands in for the downstream mission board until a real
// integration exists.
type BoardMockGateway struct{}

func NewBoardMockGateway() *BoardMockGateway {
	return &BoardMockGateway{}
}

func (g *BoardMockGateway) SyncMission(ctx context.Context, mission *domain.Mission) error {
	slog.Info("Board sync", "mission_id", mission.ID, "name", mission.Name, "status", mission.Status, "launch_date", mission.LaunchDate)
	return nil
}
