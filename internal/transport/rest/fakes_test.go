package rest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mindcheck/internal/model"
	"mindcheck/internal/repository"
)

type memQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]model.Question
}

func (r *memQuestionRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.questions)), nil
}

func (r *memQuestionRepo) List(ctx context.Context) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	if r.questions == nil {
		r.questions = map[string]model.Question{}
	}
	var inserted int64
	for _, q := range questions {
		if _, ok := r.questions[q.QID]; !ok {
			r.questions[q.QID] = q
			inserted++
		}
	}
	return inserted, nil
}

type memEntryRepo struct {
	mu      sync.Mutex
	entries []*model.SurveyEntry
}

func (r *memEntryRepo) Create(ctx context.Context, entry *model.SurveyEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = fmt.Sprintf("%024x", len(r.entries)+1)
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
	admins []*model.AdminAccount
}

func (r *memAdminRepo) Create(ctx context.Context, admin *model.AdminAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return repository.ErrDuplicateEmail
		}
	}
	admin.ID = fmt.Sprintf("%024x", len(r.admins)+1)
	admin.CreatedAt = time.Unix(int64(len(r.admins)+1), 0).UTC()
	copied := *admin
	r.admins = append(r.admins, &copied)
	return nil
}

func (r *memAdminRepo) find(match func(*model.AdminAccount) bool) *model.AdminAccount {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if match(a) {
			copied := *a
			return &copied
		}
	}
	return nil
}

func (r *memAdminRepo) GetByID(ctx context.Context, id string) (*model.AdminAccount, error) {
	return r.find(func(a *model.AdminAccount) bool { return a.ID == id }), nil
}

func (r *memAdminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminAccount, error) {
	return r.find(func(a *model.AdminAccount) bool { return a.Email == email }), nil
}

func (r *memAdminRepo) List(ctx context.Context) ([]model.AdminSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AdminSummary, 0, len(r.admins))
	for i := len(r.admins) - 1; i >= 0; i-- {
		out = append(out, r.admins[i].Summary())
	}
	return out, nil
}

func (r *memAdminRepo) UpdateStatus(ctx context.Context, id string, status model.AdminStatus, reviewerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.ID == id {
			a.Status = status
			a.ReviewedBy = reviewerID
			return true, nil
		}
	}
	return false, nil
}
