package app

import (
	"context"
	"testing"
	"time"

	"github.com/SpaceNomad/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mocks
type MockRepository struct {
	mock.Mock
}

var _ domain.MissionRepository = (*MockRepository)(nil)

func (m *MockRepository) Create(ctx context.Context, mission *domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockRepository) Upsert(ctx context.Context, mission *domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockRepository) BulkUpsert(ctx context.Context, missions []domain.Mission) error {
	args := m.Called(ctx, missions)
	return args.Error(0)
}

func (m *MockRepository) GetByName(ctx context.Context, name string) (*domain.Mission, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mission), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, page, size int) ([]domain.Mission, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mission), args.Error(1)
}

func (m *MockRepository) Search(ctx context.Context, filter domain.MissionFilter) ([]domain.Mission, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Mission), args.Error(1)
}

func (m *MockRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockRepository) GetContentHashes(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

type MockLaunchSource struct {
	mock.Mock
}

func (m *MockLaunchSource) FetchLaunches(ctx context.Context) ([]domain.Launch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Launch), args.Error(1)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) Publish(ctx context.Context, mission *domain.Mission) error {
	args := m.Called(ctx, mission)
	return args.Error(0)
}

func (m *MockEventProducer) PublishBatch(ctx context.Context, missions []domain.Mission) error {
	args := m.Called(ctx, missions)
	return args.Error(0)
}

func (m *MockEventProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

func boolPtr(b bool) *bool { return &b }

func TestMissionSyncService_SyncOnce_NewMissionIsStoredAndPublished(t *testing.T) {
	repo := new(MockRepository)
	source := new(MockLaunchSource)
	producer := new(MockEventProducer)

	launch := domain.Launch{
		ID:      "l1",
		Name:    "Demo Flight",
		DateUTC: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Success: boolPtr(true),
	}

	source.On("FetchLaunches", mock.Anything).Return([]domain.Launch{launch}, nil)
	repo.On("GetContentHashes", mock.Anything, []string{"spacex_l1"}).Return(map[string]string{}, nil)
	repo.On("BulkUpsert", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishBatch", mock.Anything, mock.MatchedBy(func(missions []domain.Mission) bool {
		return len(missions) == 1 && missions[0].ID == "spacex_l1" && missions[0].Status == domain.StatusCompleted
	})).Return(nil)

	svc := NewMissionSyncService(repo, source, producer, time.Hour)
	err := svc.SyncOnce(context.Background())

	require.NoError(t, err)
	source.AssertExpectations(t)
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestMissionSyncService_SyncOnce_UnchangedMissionIsNotPublished(t *testing.T) {
	repo := new(MockRepository)
	source := new(MockLaunchSource)
	producer := new(MockEventProducer)

	launch := domain.Launch{
		ID:       "l2",
		Name:     "Starlink Group",
		DateUTC:  time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC),
		Upcoming: true,
	}
	stored, ok := launch.Mission()
	require.True(t, ok)

	source.On("FetchLaunches", mock.Anything).Return([]domain.Launch{launch}, nil)
	repo.On("GetContentHashes", mock.Anything, []string{"spacex_l2"}).
		Return(map[string]string{"spacex_l2": stored.ComputeHash()}, nil)

	svc := NewMissionSyncService(repo, source, producer, time.Hour)
	err := svc.SyncOnce(context.Background())

	require.NoError(t, err)
	producer.AssertNotCalled(t, "PublishBatch", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestMissionSyncService_SyncOnce_UnchangedMissionIsNeverRewritten(t *testing.T) {
	repo := new(MockRepository)
	source := new(MockLaunchSource)
	producer := new(MockEventProducer)

	fresh := domain.Launch{
		ID:      "l5",
		Name:    "Europa Flyby",
		DateUTC: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
		Success: boolPtr(true),
	}
	unchanged := domain.Launch{
		ID:       "l6",
		Name:     "Crew Rotation",
		DateUTC:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		Upcoming: true,
	}
	stored, ok := unchanged.Mission()
	require.True(t, ok)

	source.On("FetchLaunches", mock.Anything).Return([]domain.Launch{fresh, unchanged}, nil)
	repo.On("GetContentHashes", mock.Anything, []string{"spacex_l5", "spacex_l6"}).
		Return(map[string]string{"spacex_l6": stored.ComputeHash()}, nil)
	// The write must carry only the changed mission; a zero UpdatedAt reaching
	// the upsert would overwrite the stored timestamp.
	repo.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(missions []domain.Mission) bool {
		if len(missions) != 1 || missions[0].ID != "spacex_l5" {
			return false
		}
		return !missions[0].UpdatedAt.IsZero()
	})).Return(nil)
	producer.On("PublishBatch", mock.Anything, mock.Anything).Return(nil)

	svc := NewMissionSyncService(repo, source, producer, time.Hour)
	require.NoError(t, svc.SyncOnce(context.Background()))
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestMissionSyncService_SyncOnce_InvalidLaunchesAreSkipped(t *testing.T) {
	repo := new(MockRepository)
	source := new(MockLaunchSource)
	producer := new(MockEventProducer)

	launches := []domain.Launch{
		// One launch without a name, one without a derivable status
		{ID: "l3"},
		{ID: "l4", Name: "Mystery", Success: nil},
	}
	source.On("FetchLaunches", mock.Anything).Return(launches, nil)

	svc := NewMissionSyncService(repo, source, producer, time.Hour)
	err := svc.SyncOnce(context.Background())

	require.NoError(t, err)
	repo.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
	producer.AssertNotCalled(t, "PublishBatch", mock.Anything, mock.Anything)
}

func TestMissionSyncService_SyncOnce_FetchErrorPropagates(t *testing.T) {
	repo := new(MockRepository)
	source := new(MockLaunchSource)
	producer := new(MockEventProducer)

	source.On("FetchLaunches", mock.Anything).Return(nil, assert.AnError)

	svc := NewMissionSyncService(repo, source, producer, time.Hour)
	err := svc.SyncOnce(context.Background())

	require.Error(t, err)
	repo.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
}

func TestMissionSyncService_TriggerSyncCoalesces(t *testing.T) {
	svc := NewMissionSyncService(new(MockRepository), new(MockLaunchSource), new(MockEventProducer), time.Hour)

	// A second trigger while one is pending must not block
	svc.TriggerSync()
	svc.TriggerSync()

	assert.Len(t, svc.trigger, 1)
}
