package service

import "errors"

var (
	ErrAnswersRequired     = errors.New("answers are required")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes")
	ErrInvalidReview       = errors.New("adminId and approve are required")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("account not approved")

	ErrMissingToken    = errors.New("missing authorization token")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrMalformedClaims = errors.New("malformed token claims")
	ErrNotAuthorized   = errors.New("not authorized")

	ErrAdminNotFound = errors.New("admin not found")
	ErrEntryNotFound = errors.New("survey entry not found")
)

// IsUnauthenticated reports whether err means the caller presented no usable token
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrMalformedClaims)
}
