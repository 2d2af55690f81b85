package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mindcheck/internal/metrics"
	"mindcheck/internal/model"
	"mindcheck/internal/repository"
)

// AdminService handles admin registration, login and review
type AdminService struct {
	admins   repository.AdminRepo
	auth     *AuthService
	metrics  *metrics.Metrics
	logger   *slog.Logger
	hashCost int
}

// NewAdminService creates a new admin service
func NewAdminService(admins repository.AdminRepo, auth *AuthService, m *metrics.Metrics, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		admins:   admins,
		auth:     auth,
		metrics:  m,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// bcrypt only looks at the first 72 bytes and refuses longer input
const maxPasswordBytes = 72

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AdminService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a pending account
func (s *AdminService) Register(ctx context.Context, email, password string) (*model.AdminAccount, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	existing, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	admin := &model.AdminAccount{
		Email:        email,
		PasswordHash: hash,
		Status:       model.AdminPending,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("admin registered", "adminId", admin.ID, "email", admin.Email)
	return admin, nil
}

// Authenticate checks credentials and returns a signed token for approved accounts
func (s *AdminService) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		s.metrics.LoginAttempt("invalid_request")
		return "", ErrCredentialsRequired
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		s.metrics.LoginAttempt("invalid_credentials")
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.metrics.LoginAttempt("invalid_credentials")
		return "", ErrInvalidCredentials
	}
	if !admin.IsApproved() {
		s.metrics.LoginAttempt("not_approved")
		return "", ErrNotApproved
	}

	token, err := s.auth.IssueToken(admin)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	s.metrics.LoginAttempt("ok")
	return token, nil
}

// Review approves or rejects the target account. The reviewer must be an
// approved admin; reviewing one's own account is allowed.
func (s *AdminService) Review(ctx context.Context, reviewer *model.AdminAccount, targetID string, approve bool) (model.AdminStatus, error) {
	if !reviewer.IsApproved() {
		return "", ErrNotAuthorized
	}
	if targetID == "" {
		return "", ErrInvalidReview
	}

	status := model.AdminRejected
	if approve {
		status = model.AdminApproved
	}

	found, err := s.admins.UpdateStatus(ctx, targetID, status, reviewer.ID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrAdminNotFound
	}

	s.metrics.Reviewed(status)
	s.logger.Info("admin reviewed", "targetId", targetID, "status", status, "reviewerId", reviewer.ID)
	return status, nil
}

// List returns every account without password hashes, newest first
func (s *AdminService) List(ctx context.Context) ([]model.AdminSummary, error) {
	return s.admins.List(ctx)
}

// Bootstrap makes sure an approved account exists for email so the first
// reviewer can sign in. An existing account is approved as is; its password
// is not changed.
func (s *AdminService) Bootstrap(ctx context.Context, email, password string) (*model.AdminAccount, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	if len(password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	existing, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsApproved() {
			if _, err := s.admins.UpdateStatus(ctx, existing.ID, model.AdminApproved, "bootstrap"); err != nil {
				return nil, err
			}
			existing.Status = model.AdminApproved
		}
		return existing, nil
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	admin := &model.AdminAccount{
		Email:        email,
		PasswordHash: hash,
		Status:       model.AdminApproved,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	s.logger.Info("bootstrap admin created", "adminId", admin.ID, "email", admin.Email)
	return admin, nil
}
