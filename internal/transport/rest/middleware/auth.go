package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"mindcheck/internal/model"
	"mindcheck/internal/service"
)

type contextKey string

const adminKey contextKey = "admin"

// AuthMiddleware gates admin routes behind a bearer token
type AuthMiddleware struct {
	authSvc *service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{authSvc: authSvc, logger: logger}
}

// RequireApprovedAdmin resolves the bearer token to an approved admin and
// stores the account in the request context. A missing token is 401; a bad
// token or an account that is not approved is 403.
func (m *AuthMiddleware) RequireApprovedAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, err := m.authSvc.Authorize(r.Context(), extractBearerToken(r))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingToken):
				writeError(w, http.StatusUnauthorized, "missing_token", err.Error())
			case errors.Is(err, service.ErrInvalidToken):
				writeError(w, http.StatusForbidden, "invalid_token", err.Error())
			case errors.Is(err, service.ErrMalformedClaims):
				writeError(w, http.StatusForbidden, "malformed_claims", err.Error())
			case errors.Is(err, service.ErrNotAuthorized):
				writeError(w, http.StatusForbidden, "not_authorized", err.Error())
			default:
				m.logger.Error("authorize failed", "path", r.URL.Path, "error", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), adminKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdmin returns the admin resolved by RequireApprovedAdmin
func GetAdmin(ctx context.Context) *model.AdminAccount {
	if v, ok := ctx.Value(adminKey).(*model.AdminAccount); ok {
		return v
	}
	return nil
}

// WithAdmin stores admin in ctx the way RequireApprovedAdmin does
func WithAdmin(ctx context.Context, admin *model.AdminAccount) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
