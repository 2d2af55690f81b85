package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"mindcheck/internal/model"
	"mindcheck/internal/repository"
)

// memQuestionRepo enforces qid uniqueness like the MongoDB index does
type memQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]model.Question
	seedCalls int
	failList  error
}

func newMemQuestionRepo(initial ...model.Question) *memQuestionRepo {
	r := &memQuestionRepo{questions: map[string]model.Question{}}
	for _, q := range initial {
		r.questions[q.QID] = q
	}
	return r
}

func (r *memQuestionRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.questions)), nil
}

func (r *memQuestionRepo) List(ctx context.Context) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]*model.Question, 0, len(r.questions))
	for _, q := range r.questions {
		q := q
		out = append(out, &q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *memQuestionRepo) Seed(ctx context.Context, questions []model.Question) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seedCalls++
	var inserted int64
	for _, q := range questions {
		if _, ok := r.questions[q.QID]; ok {
			continue
		}
		r.questions[q.QID] = q
		inserted++
	}
	return inserted, nil
}

type memEntryRepo struct {
	mu        sync.Mutex
	entries   []*model.SurveyEntry
	failWrite error
	nextID    int
}

func (r *memEntryRepo) Create(ctx context.Context, entry *model.SurveyEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	r.nextID++
	entry.ID = fmt.Sprintf("e%d", r.nextID)
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *memEntryRepo) GetByID(ctx context.Context, id string) (*model.SurveyEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memEntryRepo) List(ctx context.Context) ([]*model.SurveyEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.SurveyEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *memEntryRepo) CountByResult(ctx context.Context) (map[model.Result]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[model.Result]int64{}
	for _, e := range r.entries {
		counts[e.Result]++
	}
	return counts, nil
}

type memAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*model.AdminAccount
	nextID int
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: map[string]*model.AdminAccount{}}
}

func (r *memAdminRepo) Create(ctx context.Context, admin *model.AdminAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.nextID++
	admin.ID = fmt.Sprintf("%024x", r.nextID)
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Unix(int64(r.nextID), 0).UTC()
	}
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *memAdminRepo) GetByID(ctx context.Context, id string) (*model.AdminAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.admins[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (r *memAdminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memAdminRepo) List(ctx context.Context) ([]model.AdminSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AdminSummary, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, a.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memAdminRepo) UpdateStatus(ctx context.Context, id string, status model.AdminStatus, reviewerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return false, nil
	}
	a.Status = status
	a.ReviewedBy = reviewerID
	return true, nil
}

// staticQuestions serves a fixed question set
type staticQuestions []*model.Question

func (s staticQuestions) Questions(ctx context.Context) ([]*model.Question, error) {
	return s, nil
}

type failingQuestions struct{ err error }

func (f failingQuestions) Questions(ctx context.Context) ([]*model.Question, error) {
	return nil, f.err
}

var errBoom = errors.New("boom")
