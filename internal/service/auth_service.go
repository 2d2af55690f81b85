package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mindcheck/internal/model"
	"mindcheck/internal/repository"
)

// DefaultTokenTTL is the lifetime of an admin console token
const DefaultTokenTTL = 8 * time.Hour

// AuthService issues admin tokens and gates privileged operations
type AuthService struct {
	admins    repository.AdminRepo
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(admins repository.AdminRepo, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		admins:    admins,
		jwtSecret: []byte(secret),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// IssueToken signs a token binding the account id and email
func (s *AuthService) IssueToken(admin *model.AdminAccount) (string, error) {
	now := s.now()
	claims := &model.AdminClaims{
		ID:    admin.ID,
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken verifies signature and expiry and decodes the claims.
// Undecodable tokens and claims without an account id yield
// ErrMalformedClaims; every other failure is ErrInvalidToken.
func (s *AuthService) ParseToken(tokenString string) (*model.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrMalformedClaims
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, ErrMalformedClaims
	}
	return claims, nil
}

// Authorize resolves a bearer token to an approved admin account. It fails
// closed: any problem with the token, a missing account or a status other
// than approved is an error.
func (s *AuthService) Authorize(ctx context.Context, tokenString string) (*model.AdminAccount, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("load admin %s: %w", claims.ID, err)
	}
	if !admin.IsApproved() {
		return nil, ErrNotAuthorized
	}
	return admin, nil
}
