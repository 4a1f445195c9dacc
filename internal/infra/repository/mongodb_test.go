package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/SpaceNomad/internal/domain"
	"github.com/SpaceNomad/internal/infra/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// 1. Start MongoDB Container
	mongodbContainer, err := mongodb.Run(ctx, "mongo:6")
	require.NoError(t, err)
	defer func() {
		if err := mongodbContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}()

	endpoint, err := mongodbContainer.ConnectionString(ctx)
	require.NoError(t, err)

	// 2. Connect to it
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	require.NoError(t, err)
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("failed to disconnect client: %s", err)
		}
	}()

	repo, err := repository.NewMongoRepository(client, "test_space_nomad", "missions")
	require.NoError(t, err)

	t.Run("Create and GetByName", func(t *testing.T) {
		mission := &domain.Mission{
			ID:         "manual_apollo-11",
			Name:       "Apollo 11",
			Status:     domain.StatusCompleted,
			LaunchDate: time.Date(1969, 7, 16, 13, 32, 0, 0, time.UTC),
		}

		require.NoError(t, repo.Create(ctx, mission))

		fetched, err := repo.GetByName(ctx, "Apollo 11")
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, mission.ID, fetched.ID)
		assert.WithinDuration(t, mission.LaunchDate, fetched.LaunchDate, time.Millisecond)

		// Duplicate name is rejected
		dup := &domain.Mission{ID: "manual_apollo-11-bis", Name: "Apollo 11", Status: domain.StatusCompleted}
		assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrMissionExists)

		// Unknown name is (nil, nil)
		missing, err := repo.GetByName(ctx, "Apollo 18")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("BulkUpsert and GetContentHashes", func(t *testing.T) {
		missions := []domain.Mission{
			{ID: "spacex_b1", Name: "Batch 1", Status: domain.StatusOngoing, ContentHash: "h1", LaunchDate: time.Now()},
			{ID: "spacex_b2", Name: "Batch 2", Status: domain.StatusCompleted, ContentHash: "h2", LaunchDate: time.Now()},
		}

		require.NoError(t, repo.BulkUpsert(ctx, missions))

		hashes, err := repo.GetContentHashes(ctx, []string{"spacex_b1", "spacex_b2", "non-existent"})
		require.NoError(t, err)
		assert.Equal(t, "h1", hashes["spacex_b1"])
		assert.Equal(t, "h2", hashes["spacex_b2"])
		assert.Len(t, hashes, 2)
	})

	t.Run("Search with filters", func(t *testing.T) {
		missions := []domain.Mission{
			{ID: "spacex_s1", Name: "Starlink Group 1", Status: domain.StatusCompleted, LaunchDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "spacex_s2", Name: "Starlink Group 2", Status: domain.StatusCompleted, LaunchDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "spacex_crew", Name: "Crew-8", Status: domain.StatusOngoing, LaunchDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		}
		require.NoError(t, repo.BulkUpsert(ctx, missions))

		found, err := repo.Search(ctx, domain.MissionFilter{Keyword: "starlink"})
		require.NoError(t, err)
		assert.Len(t, found, 2)

		found, err = repo.Search(ctx, domain.MissionFilter{
			StartDate: time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC),
			Keyword:   "Starlink",
			SortBy:    "launch_date",
			SortOrder: "desc",
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Starlink Group 2", found[0].Name)
	})

	t.Run("StatusCounts", func(t *testing.T) {
		counts, err := repo.StatusCounts(ctx)
		require.NoError(t, err)
		assert.Greater(t, counts[domain.StatusCompleted], int64(0))
		assert.Greater(t, counts[domain.StatusOngoing], int64(0))
	})
}
