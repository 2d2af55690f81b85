package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mindcheck/internal/model"
)

// QuestionCache holds a shared copy of the question set
type QuestionCache interface {
	Get(ctx context.Context) ([]*model.Question, error)
	Set(ctx context.Context, questions []*model.Question) error
	Invalidate(ctx context.Context) error
}

type questionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuestionCache creates a new question cache
func NewQuestionCache(client *redis.Client, ttl time.Duration) QuestionCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &questionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *questionCache) key() string {
	return "survey:questions"
}

// Get returns nil, nil on a miss
func (c *questionCache) Get(ctx context.Context) ([]*model.Question, error) {
	data, err := c.client.Get(ctx, c.key()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var questions []*model.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *questionCache) Set(ctx context.Context, questions []*model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(), data, c.ttl).Err()
}

func (c *questionCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key()).Err()
}
