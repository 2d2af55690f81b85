package service

import (
	"context"
	"fmt"
	"log/slog"

	"mindcheck/internal/cache"
	"mindcheck/internal/model"
	"mindcheck/internal/repository"
)

// QuestionSource provides the current question set
type QuestionSource interface {
	Questions(ctx context.Context) ([]*model.Question, error)
}

// QuestionService reads questions, seeding the store on first use
type QuestionService struct {
	repo     repository.QuestionRepo
	cache    cache.QuestionCache // nil when Redis is not configured
	defaults []model.Question
	logger   *slog.Logger
}

// NewQuestionService creates a new question service seeded with DefaultQuestions
func NewQuestionService(repo repository.QuestionRepo, questionCache cache.QuestionCache, logger *slog.Logger) *QuestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuestionService{
		repo:     repo,
		cache:    questionCache,
		defaults: DefaultQuestions(),
		logger:   logger,
	}
}

// Questions returns every question in seed order. An empty store is seeded
// first; concurrent seeders are reconciled by the unique qid index.
func (s *QuestionService) Questions(ctx context.Context) ([]*model.Question, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("question cache read failed", "error", err)
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if count == 0 {
		if _, err := s.seed(ctx); err != nil {
			return nil, err
		}
	}

	questions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	if s.cache != nil && len(questions) > 0 {
		if err := s.cache.Set(ctx, questions); err != nil {
			s.logger.Warn("question cache write failed", "error", err)
		}
	}
	return questions, nil
}

// Seed inserts any missing default question and drops the cached set
func (s *QuestionService) Seed(ctx context.Context) (int64, error) {
	inserted, err := s.seed(ctx)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("question cache invalidate failed", "error", err)
		}
	}
	return inserted, nil
}

func (s *QuestionService) seed(ctx context.Context) (int64, error) {
	inserted, err := s.repo.Seed(ctx, s.defaults)
	if err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}
	if inserted > 0 {
		s.logger.Info("seeded default questions", "inserted", inserted)
	}
	return inserted, nil
}

// PublicQuestions returns the question set without weights
func (s *QuestionService) PublicQuestions(ctx context.Context) ([]model.PublicQuestion, error) {
	questions, err := s.Questions(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]model.PublicQuestion, len(questions))
	for i, q := range questions {
		public[i] = q.Public()
	}
	return public, nil
}
