package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// Mission statuses derived from launch data.
const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrMissionExists is returned when creating a mission whose name is taken.
var ErrMissionExists = errors.New("mission already exists")

// Mission is a space mission tracked in the local store, either created by a
// user or synced from the launches API.
type Mission struct {
	ID          string    `json:"id" bson:"_id"`
	ExternalID  string    `json:"external_id" bson:"external_id"`
	Name        string    `json:"name" bson:"name"`
	Status      string    `json:"status" bson:"status"`
	LaunchDate  time.Time `json:"launch_date" bson:"launch_date"`
	Details     string    `json:"details" bson:"details"`
	PatchURL    string    `json:"patch_url" bson:"patch_url"`
	ContentHash string    `json:"content_hash" bson:"content_hash"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
	FetchedAt   time.Time `json:"fetched_at" bson:"fetched_at"`
}

// ComputeHash generates a deterministic hash of the mission's content.
// Sync timestamps are excluded so an unchanged launch does not look like an
// update on every cycle.
func (m *Mission) ComputeHash() string {
	hasher := sha256.New()
	hasher.Write([]byte(m.Name))
	hasher.Write([]byte(m.Status))
	hasher.Write([]byte(m.LaunchDate.UTC().Format(time.RFC3339)))
	hasher.Write([]byte(m.Details))
	hasher.Write([]byte(m.PatchURL))
	return hex.EncodeToString(hasher.Sum(nil))
}

// MissionFilter narrows and orders a mission search.
type MissionFilter struct {
	StartDate time.Time
	EndDate   time.Time
	Keyword   string
	SortBy    string
	SortOrder string
	Page      int
	Size      int
}

// MissionWriter handles mission persistence operations.
type MissionWriter interface {
	Create(ctx context.Context, mission *Mission) error
	Upsert(ctx context.Context, mission *Mission) error
	BulkUpsert(ctx context.Context, missions []Mission) error
}

// MissionReader handles mission retrieval operations.
type MissionReader interface {
	GetByName(ctx context.Context, name string) (*Mission, error)
	List(ctx context.Context, page, size int) ([]Mission, error)
	Search(ctx context.Context, filter MissionFilter) ([]Mission, error)
	StatusCounts(ctx context.Context) (map[string]int64, error)
}

// HashReader handles content hash retrieval for change detection.
type HashReader interface {
	GetContentHashes(ctx context.Context, ids []string) (map[string]string, error)
}

// MissionRepository is the composite persistence interface. Services should
// depend on the narrower interfaces where possible.
type MissionRepository interface {
	MissionWriter
	MissionReader
	HashReader
}

// Launch is one launch as reported by the external launches API.
type Launch struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	DateUTC  time.Time `json:"date_utc"`
	Success  *bool     `json:"success"`
	Upcoming bool      `json:"upcoming"`
	Details  string    `json:"details"`
	PatchURL string    `json:"patch_url"`
}

// Mission converts the launch to a mission record. It reports false when the
// launch carries no name or no derivable status; such launches are skipped.
func (l Launch) Mission() (Mission, bool) {
	if l.Name == "" {
		return Mission{}, false
	}

	var status string
	switch {
	case l.Upcoming:
		status = StatusOngoing
	case l.Success != nil && *l.Success:
		status = StatusCompleted
	case l.Success != nil:
		status = StatusFailed
	default:
		return Mission{}, false
	}

	return Mission{
		ID:         "spacex_" + l.ID,
		ExternalID: l.ID,
		Name:       l.Name,
		Status:     status,
		LaunchDate: l.DateUTC,
		Details:    l.Details,
		PatchURL:   l.PatchURL,
	}, true
}

// LaunchSource fetches the full launch list from an external API.
type LaunchSource interface {
	FetchLaunches(ctx context.Context) ([]Launch, error)
}

// EventProducer publishes mission events to a queue.
type EventProducer interface {
	Publish(ctx context.Context, mission *Mission) error
	PublishBatch(ctx context.Context, missions []Mission) error
	Close() error
}

// BoardGateway pushes mission updates to the downstream mission board.
type BoardGateway interface {
	SyncMission(ctx context.Context, mission *Mission) error
}
