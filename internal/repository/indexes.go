package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	QuestionsCollection = "questions"
	EntriesCollection   = "survey_entries"
	AdminsCollection    = "admins"
)

// EnsureIndexes creates the unique indexes the application relies on.
// The qid index makes concurrent question seeding safe; the email index
// backs admin email uniqueness.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		QuestionsCollection: {
			{Keys: bson.D{{Key: "qid", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "position", Value: 1}}},
		},
		EntriesCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		AdminsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func isDuplicateKeyCode(code int) bool {
	return code == 11000 || code == 11001 || code == 12582
}
