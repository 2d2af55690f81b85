package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindcheck/internal/model"
)

// EntryRepo handles MongoDB operations for survey entries
type EntryRepo interface {
	Create(ctx context.Context, entry *model.SurveyEntry) error
	GetByID(ctx context.Context, id string) (*model.SurveyEntry, error)
	List(ctx context.Context) ([]*model.SurveyEntry, error)
	CountByResult(ctx context.Context) (map[model.Result]int64, error)
}

type entryRepo struct {
	collection *mongo.Collection
}

// NewEntryRepo creates a new survey entry repository
func NewEntryRepo(db *mongo.Database) EntryRepo {
	return &entryRepo{
		collection: db.Collection(EntriesCollection),
	}
}

func (r *entryRepo) Create(ctx context.Context, entry *model.SurveyEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

// GetByID returns nil, nil when the entry does not exist or the id is not an ObjectID
func (r *entryRepo) GetByID(ctx context.Context, id string) (*model.SurveyEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var entry model.SurveyEntry
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepo) List(ctx context.Context) ([]*model.SurveyEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []*model.SurveyEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) CountByResult(ctx context.Context) (map[model.Result]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$result"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Result model.Result `bson:"_id"`
		Count  int64        `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[model.Result]int64, len(rows))
	for _, row := range rows {
		counts[row.Result] = row.Count
	}
	return counts, nil
}
