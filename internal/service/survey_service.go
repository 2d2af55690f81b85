package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"mindcheck/internal/cache"
	"mindcheck/internal/metrics"
	"mindcheck/internal/model"
	"mindcheck/internal/repository"
)

// SurveyService scores answer sets and stores survey entries
type SurveyService struct {
	questions QuestionSource
	entries   repository.EntryRepo
	stats     cache.StatsCache // nil when Redis is not configured
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewSurveyService creates a new survey service
func NewSurveyService(
	questions QuestionSource,
	entries repository.EntryRepo,
	stats cache.StatsCache,
	m *metrics.Metrics,
	logger *slog.Logger,
) *SurveyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SurveyService{
		questions: questions,
		entries:   entries,
		stats:     stats,
		metrics:   m,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *SurveyService) assess(ctx context.Context, answers model.Answers) (Assessment, error) {
	if answers == nil {
		return Assessment{}, ErrAnswersRequired
	}
	questions, err := s.questions.Questions(ctx)
	if err != nil {
		return Assessment{}, err
	}
	return Score(NewWeightTable(questions), answers), nil
}

// Check scores answers without storing them and includes feedback
func (s *SurveyService) Check(ctx context.Context, answers model.Answers) (*model.CheckResponse, error) {
	a, err := s.assess(ctx, answers)
	if err != nil {
		return nil, err
	}
	s.metrics.SurveyScored(a.Result, false)
	return &model.CheckResponse{Meter: a.Meter, Result: a.Result, Feedback: a.Feedback}, nil
}

// Submit scores answers and stores a new entry. Nothing is stored when
// scoring fails.
func (s *SurveyService) Submit(ctx context.Context, answers model.Answers) (*model.SubmitResponse, error) {
	a, err := s.assess(ctx, answers)
	if err != nil {
		return nil, err
	}

	entry := &model.SurveyEntry{
		Answers:   answers,
		Result:    a.Result,
		Meter:     a.Meter,
		CreatedAt: s.now(),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("store survey entry: %w", err)
	}
	s.metrics.SurveyScored(a.Result, true)

	if s.stats != nil {
		if err := s.stats.Increment(ctx, a.Result); err != nil {
			s.logger.Warn("stats increment failed", "result", a.Result, "error", err)
		}
	}

	s.logger.Info("survey submitted", "entryId", entry.ID, "meter", a.Meter, "result", a.Result)
	return &model.SubmitResponse{Meter: a.Meter, Result: a.Result}, nil
}

// Entries lists stored entries, newest first
func (s *SurveyService) Entries(ctx context.Context) ([]*model.SurveyEntry, error) {
	return s.entries.List(ctx)
}

// Entry returns one entry with its answers resolved against the current
// question set, ordered like the questions
func (s *SurveyService) Entry(ctx context.Context, id string) (*model.EntryDetail, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	questions, err := s.questions.Questions(ctx)
	if err != nil {
		return nil, err
	}
	byQID := make(map[string]*model.Question, len(questions))
	for _, q := range questions {
		byQID[q.QID] = q
	}

	resolved := make([]model.ResolvedAnswer, 0, len(entry.Answers))
	for qid, key := range entry.Answers {
		ra := model.ResolvedAnswer{QID: qid, Key: key}
		if q, ok := byQID[qid]; ok {
			ra.Question = q.Text
			if opt, ok := q.FindOption(key); ok {
				ra.OptionText = opt.Text
				ra.Weight = opt.Weight
				ra.Known = true
			}
		}
		resolved = append(resolved, ra)
	}
	sort.Slice(resolved, func(i, j int) bool {
		oi, oj := order(byQID, resolved[i].QID), order(byQID, resolved[j].QID)
		if oi != oj {
			return oi < oj
		}
		return resolved[i].QID < resolved[j].QID
	})

	return &model.EntryDetail{SurveyEntry: *entry, Resolved: resolved}, nil
}

// order sorts unknown questions after known ones
func order(byQID map[string]*model.Question, qid string) int {
	if q, ok := byQID[qid]; ok {
		return q.Position
	}
	return math.MaxInt
}

// Stats counts entries per result. Counts come from Redis when available
// and are rebuilt from MongoDB on a cold cache. A rebuild that overlaps a
// submission is not cached; the next call rebuilds again.
func (s *SurveyService) Stats(ctx context.Context) (*model.SurveyStats, error) {
	var counts map[model.Result]int64
	if s.stats != nil {
		cached, err := s.stats.Counts(ctx)
		if err != nil {
			s.logger.Warn("stats cache read failed", "error", err)
		}
		counts = cached
	}

	if counts == nil {
		rebuild := s.stats != nil
		var gen int64
		if rebuild {
			var err error
			if gen, err = s.stats.Generation(ctx); err != nil {
				s.logger.Warn("stats cache generation read failed", "error", err)
				rebuild = false
			}
		}

		stored, err := s.entries.CountByResult(ctx)
		if err != nil {
			return nil, fmt.Errorf("count entries: %w", err)
		}
		counts = stored

		if rebuild {
			replaced, err := s.stats.Replace(ctx, gen, counts)
			switch {
			case err != nil:
				s.logger.Warn("stats cache rebuild failed", "error", err)
			case !replaced:
				s.logger.Debug("stats cache rebuild skipped, submissions arrived meanwhile")
			}
		}
	}

	stats := &model.SurveyStats{ByResult: make(map[model.Result]int64, len(model.Results))}
	for _, r := range model.Results {
		stats.ByResult[r] = 0
	}
	for r, n := range counts {
		stats.ByResult[r] = n
		stats.Total += n
	}
	return stats, nil
}
