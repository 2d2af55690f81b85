package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"mindcheck/internal/model"
)

func ns(coll string) string {
	return "mindcheck." + coll
}

func TestEntryRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns id and timestamp", func(mt *mtest.T) {
		repo := NewEntryRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		entry := &model.SurveyEntry{Answers: model.Answers{"q1": "a"}, Result: model.ResultAtRisk, Meter: 7}
		require.NoError(mt, repo.Create(ctx, entry))
		assert.Len(mt, entry.ID, 24)
		assert.False(mt, entry.CreatedAt.IsZero())
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewEntryRepo(mt.DB)
		oid := primitive.NewObjectID()
		created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(EntriesCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "answers", Value: bson.D{{Key: "q1", Value: "b"}}},
			{Key: "result", Value: "Mild Concerns"},
			{Key: "meter", Value: int32(67)},
			{Key: "createdAt", Value: created},
		}))

		entry, err := repo.GetByID(ctx, oid.Hex())
		require.NoError(mt, err)
		require.NotNil(mt, entry)
		assert.Equal(mt, oid.Hex(), entry.ID)
		assert.Equal(mt, model.Answers{"q1": "b"}, entry.Answers)
		assert.Equal(mt, model.ResultMildConcerns, entry.Result)
		assert.Equal(mt, 67, entry.Meter)
		assert.True(mt, created.Equal(entry.CreatedAt))
	})

	mt.Run("get by id missing or malformed", func(mt *mtest.T) {
		repo := NewEntryRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(EntriesCollection), mtest.FirstBatch))

		entry, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Nil(mt, entry)

		entry, err = repo.GetByID(ctx, "not-an-object-id")
		require.NoError(mt, err)
		assert.Nil(mt, entry)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewEntryRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(EntriesCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "result", Value: "At Risk"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "result", Value: "Healthy"}},
		))

		entries, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, entries, 2)
		assert.Equal(mt, model.ResultAtRisk, entries[0].Result)
	})

	mt.Run("count by result", func(mt *mtest.T) {
		repo := NewEntryRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(EntriesCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Healthy"}, {Key: "count", Value: int32(2)}},
			bson.D{{Key: "_id", Value: "At Risk"}, {Key: "count", Value: int32(1)}},
		))

		counts, err := repo.CountByResult(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, map[model.Result]int64{model.ResultHealthy: 2, model.ResultAtRisk: 1}, counts)
	})
}

func TestAdminRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		repo := NewAdminRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		admin := &model.AdminAccount{Email: "a@x.com", PasswordHash: "hash", Status: model.AdminPending}
		require.NoError(mt, repo.Create(ctx, admin))
		assert.Len(mt, admin.ID, 24)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewAdminRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: mindcheck.admins index: email_1",
		}))

		err := repo.Create(ctx, &model.AdminAccount{Email: "a@x.com", PasswordHash: "hash"})
		assert.ErrorIs(mt, err, ErrDuplicateEmail)
	})

	mt.Run("get by email decodes hash", func(mt *mtest.T) {
		repo := NewAdminRepo(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(AdminsCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "$2a$10$hash"},
			{Key: "status", Value: "approved"},
		}))

		admin, err := repo.GetByEmail(ctx, "a@x.com")
		require.NoError(mt, err)
		require.NotNil(mt, admin)
		assert.Equal(mt, oid.Hex(), admin.ID)
		assert.Equal(mt, "$2a$10$hash", admin.PasswordHash)
		assert.True(mt, admin.IsApproved())
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := NewAdminRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(AdminsCollection), mtest.FirstBatch))

		admin, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Nil(mt, admin)

		admin, err = repo.GetByID(ctx, "zzz")
		require.NoError(mt, err)
		assert.Nil(mt, admin)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewAdminRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(AdminsCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "b@x.com"}, {Key: "status", Value: "pending"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "a@x.com"}, {Key: "status", Value: "approved"}},
		))

		admins, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, admins, 2)
		assert.Equal(mt, "b@x.com", admins[0].Email)
		assert.Equal(mt, model.AdminPending, admins[0].Status)
	})

	mt.Run("update status", func(mt *mtest.T) {
		repo := NewAdminRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}, bson.E{Key: "nModified", Value: int32(1)}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}, bson.E{Key: "nModified", Value: int32(0)}),
		)

		found, err := repo.UpdateStatus(ctx, primitive.NewObjectID().Hex(), model.AdminApproved, "reviewer")
		require.NoError(mt, err)
		assert.True(mt, found)

		found, err = repo.UpdateStatus(ctx, primitive.NewObjectID().Hex(), model.AdminApproved, "reviewer")
		require.NoError(mt, err)
		assert.False(mt, found)

		found, err = repo.UpdateStatus(ctx, "bad-id", model.AdminApproved, "reviewer")
		require.NoError(mt, err)
		assert.False(mt, found)
	})
}

func TestQuestionRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	questions := []model.Question{
		{QID: "q1", Text: "First", Position: 0, Options: []model.Option{{Key: "a", Text: "Yes", Weight: 3}}},
		{QID: "q2", Text: "Second", Position: 1, Options: []model.Option{{Key: "a", Text: "Yes", Weight: 3}}},
	}

	mt.Run("count", func(mt *mtest.T) {
		repo := NewQuestionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(QuestionsCollection), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(15)}},
		))

		n, err := repo.Count(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, int64(15), n)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewQuestionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(QuestionsCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "qid", Value: "q1"},
				{Key: "text", Value: "First"},
				{Key: "position", Value: int32(0)},
				{Key: "options", Value: bson.A{bson.D{{Key: "key", Value: "a"}, {Key: "text", Value: "Yes"}, {Key: "weight", Value: int32(3)}}}},
			},
		))

		list, err := repo.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, "q1", list[0].QID)
		assert.Equal(mt, []model.Option{{Key: "a", Text: "Yes", Weight: 3}}, list[0].Options)
	})

	mt.Run("seed counts upserts", func(mt *mtest.T) {
		repo := NewQuestionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(2)},
			bson.E{Key: "nModified", Value: int32(0)},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: int32(0)}, {Key: "_id", Value: primitive.NewObjectID()}},
				bson.D{{Key: "index", Value: int32(1)}, {Key: "_id", Value: primitive.NewObjectID()}},
			}},
		))

		inserted, err := repo.Seed(ctx, questions)
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), inserted)
	})

	mt.Run("seed tolerates a concurrent seeder", func(mt *mtest.T) {
		repo := NewQuestionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(
			mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"},
			mtest.WriteError{Index: 1, Code: 11000, Message: "E11000 duplicate key error"},
		))

		inserted, err := repo.Seed(ctx, questions)
		require.NoError(mt, err)
		assert.Zero(mt, inserted)
	})

	mt.Run("seed reports other write errors", func(mt *mtest.T) {
		repo := NewQuestionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(
			mtest.WriteError{Index: 0, Code: 121, Message: "Document failed validation"},
		))

		_, err := repo.Seed(ctx, questions)
		assert.Error(mt, err)
	})

	mt.Run("seed nothing", func(mt *mtest.T) {
		repo := NewQuestionRepo(mt.DB)
		inserted, err := repo.Seed(ctx, nil)
		require.NoError(mt, err)
		assert.Zero(mt, inserted)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates all", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		require.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("wraps failures", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))
		err := EnsureIndexes(context.Background(), mt.DB)
		assert.ErrorContains(mt, err, "create indexes on")
	})
}

func TestIsDuplicateKeyCode(t *testing.T) {
	for _, code := range []int{11000, 11001, 12582} {
		assert.True(t, isDuplicateKeyCode(code), code)
	}
	assert.False(t, isDuplicateKeyCode(121))
}
