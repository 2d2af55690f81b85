package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindcheck/internal/model"
)

// QuestionRepo handles MongoDB operations for survey questions
type QuestionRepo interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]*model.Question, error)
	// Seed inserts any question whose qid is not stored yet and returns how
	// many were inserted. Existing questions are left untouched.
	Seed(ctx context.Context, questions []model.Question) (int64, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection(QuestionsCollection),
	}
}

func (r *questionRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *questionRepo) List(ctx context.Context) ([]*model.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	questions := []*model.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) Seed(ctx context.Context, questions []model.Question) (int64, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(questions))
	for _, q := range questions {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"qid": q.QID}).
			SetUpdate(bson.M{"$setOnInsert": bson.M{
				"qid":      q.QID,
				"text":     q.Text,
				"position": q.Position,
				"options":  q.Options,
			}}).
			SetUpsert(true))
	}

	result, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		// a concurrent seeder won the unique qid index for some documents
		if onlyDuplicateKeys(err) {
			if result != nil {
				return result.UpsertedCount, nil
			}
			return 0, nil
		}
		return 0, err
	}
	return result.UpsertedCount, nil
}

// onlyDuplicateKeys reports whether every write error in a bulk write is a
// duplicate key violation
func onlyDuplicateKeys(err error) bool {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return mongo.IsDuplicateKeyError(err)
	}
	if bwe.WriteConcernError != nil || len(bwe.WriteErrors) == 0 {
		return false
	}
	for _, we := range bwe.WriteErrors {
		if !isDuplicateKeyCode(we.Code) {
			return false
		}
	}
	return true
}
