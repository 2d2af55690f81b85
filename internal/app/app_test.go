package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"mindcheck/internal/config"
	"mindcheck/internal/model"
	"mindcheck/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "app-test-secret",
		TokenTTL:         time.Hour,
		QuestionCacheTTL: time.Minute,
		StatsCacheTTL:    time.Minute,
	}
}

func TestBuildWithoutRedis(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("caches disabled", func(mt *mtest.T) {
		a := Build(testConfig(), slog.Default(), mt.DB, nil)
		defer a.Close()

		assert.Nil(mt, a.QuestionCache)
		assert.Nil(mt, a.StatsCache)

		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(mt, http.StatusOK, rec.Code)
	})
}

func TestBuildWithRedisCachesQuestions(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("questions", func(mt *mtest.T) {
		a := Build(testConfig(), slog.Default(), mt.DB, rdb)
		require.NotNil(mt, a.QuestionCache)
		require.NotNil(mt, a.StatsCache)

		ns := "mindcheck." + repository.QuestionsCollection
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "qid", Value: "q1"},
				{Key: "text", Value: "How are you?"},
				{Key: "options", Value: bson.A{bson.D{{Key: "key", Value: "a"}, {Key: "text", Value: "Fine"}, {Key: "weight", Value: int32(3)}}}},
			}),
		)

		questions, err := a.Questions.Questions(context.Background())
		require.NoError(mt, err)
		require.Len(mt, questions, 1)
		assert.True(mt, mr.Exists("survey:questions"))

		// served from Redis, no further mock responses needed
		res, err := a.Surveys.Check(context.Background(), model.Answers{"q1": "a"})
		require.NoError(mt, err)
		assert.Equal(mt, 100, res.Meter)

		a.Close()
		_, err = rdb.Ping(context.Background()).Result()
		assert.Error(mt, err, "Close releases the Redis client")
	})
}

func TestBootstrapAdminSkipsWithoutCredentials(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no credentials", func(mt *mtest.T) {
		a := Build(testConfig(), slog.Default(), mt.DB, nil)
		// no mock responses queued, so any database call would fail
		assert.NoError(mt, a.BootstrapAdmin(context.Background()))
	})
}
