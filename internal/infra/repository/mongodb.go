package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SpaceNomad/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Columns accepted by Search's sort_by; anything else is ignored.
var sortableFields = map[string]string{
	"name":        "name",
	"status":      "status",
	"launch_date": "launch_date",
	"updated_at":  "updated_at",
}

type MongoRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoRepository(client *mongo.Client, dbName, collectionName string) (*MongoRepository, error) {
	db := client.Database(dbName)
	repo := &MongoRepository{
		db:         db,
		collection: db.Collection(collectionName),
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return repo, nil
}

func (r *MongoRepository) createIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: 1},
			},
			Options: options.Index().SetName("name_unique_idx").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "launch_date", Value: -1},
			},
			Options: options.Index().SetName("status_launch_date_idx"),
		},
	}

	opts := options.CreateIndexes().SetMaxTime(10 * time.Second)
	_, err := r.collection.Indexes().CreateMany(ctx, models, opts)
	return err
}

// Create inserts a new mission. A mission whose name is already taken
// returns domain.ErrMissionExists.
func (r *MongoRepository) Create(ctx context.Context, mission *domain.Mission) error {
	_, err := r.collection.InsertOne(ctx, mission)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrMissionExists
	}
	if err != nil {
		return fmt.Errorf("failed to create mission: %w", err)
	}
	return nil
}

func (r *MongoRepository) Upsert(ctx context.Context, mission *domain.Mission) error {
	filter := bson.M{"_id": mission.ID}
	update := bson.M{"$set": mission}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert mission: %w", err)
	}
	return nil
}

func (r *MongoRepository) BulkUpsert(ctx context.Context, missions []domain.Mission) error {
	if len(missions) == 0 {
		return nil
	}

	var models []mongo.WriteModel
	for _, mission := range missions {
		filter := bson.M{"_id": mission.ID}
		update := bson.M{"$set": mission}
		model := mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true)
		models = append(models, model)
	}

	opts := options.BulkWrite().SetOrdered(false)
	_, err := r.collection.BulkWrite(ctx, models, opts)
	if err != nil {
		return fmt.Errorf("failed to bulk upsert missions: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetByName(ctx context.Context, name string) (*domain.Mission, error) {
	filter := bson.M{"name": name}

	var mission domain.Mission
	err := r.collection.FindOne(ctx, filter).Decode(&mission)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &mission, err
}

func (r *MongoRepository) List(ctx context.Context, page, size int) ([]domain.Mission, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "launch_date", Value: -1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	return r.find(ctx, bson.M{}, opts)
}

func (r *MongoRepository) Search(ctx context.Context, f domain.MissionFilter) ([]domain.Mission, error) {
	filter := bson.M{}
	if !f.StartDate.IsZero() || !f.EndDate.IsZero() {
		dateFilter := bson.M{}
		if !f.StartDate.IsZero() {
			dateFilter["$gte"] = f.StartDate
		}
		if !f.EndDate.IsZero() {
			dateFilter["$lte"] = f.EndDate
		}
		filter["launch_date"] = dateFilter
	}
	if f.Keyword != "" {
		filter["name"] = bson.M{"$regex": f.Keyword, "$options": "i"}
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.Size
	if size < 1 {
		size = 10
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))

	if field, ok := sortableFields[f.SortBy]; ok {
		order := 1
		if f.SortOrder == "desc" {
			order = -1
		}
		opts.SetSort(bson.D{{Key: field, Value: order}})
	}

	return r.find(ctx, filter, opts)
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Mission, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query missions: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			slog.Warn("Failed to close cursor", "error", err)
		}
	}()

	var missions []domain.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		return nil, fmt.Errorf("failed to decode missions: %w", err)
	}
	return missions, nil
}

func (r *MongoRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate statuses: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			slog.Warn("Failed to close cursor", "error", err)
		}
	}()

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var doc struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&doc); err != nil {
			continue // Skip malformed
		}
		counts[doc.Status] = doc.Count
	}
	return counts, cursor.Err()
}

func (r *MongoRepository) GetContentHashes(ctx context.Context, ids []string) (map[string]string, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}
	opts := options.Find()
	// Only fetch _id and content_hash
	opts.SetProjection(bson.M{"_id": 1, "content_hash": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			slog.Warn("Failed to close cursor", "error", err)
		}
	}()

	results := make(map[string]string)
	for cursor.Next(ctx) {
		var doc struct {
			ID          string `bson:"_id"`
			ContentHash string `bson:"content_hash"`
		}
		if err := cursor.Decode(&doc); err != nil {
			continue // Skip malformed
		}
		results[doc.ID] = doc.ContentHash
	}
	return results, cursor.Err()
}
