package model

import "time"

// AdminStatus is the approval state of an admin account
type AdminStatus string

const (
	AdminPending  AdminStatus = "pending"
	AdminApproved AdminStatus = "approved"
	AdminRejected AdminStatus = "rejected"
)

// AdminAccount is a console user. PasswordHash is a bcrypt hash and never leaves the server.
type AdminAccount struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"-" bson:"password"`
	Status       AdminStatus `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
	ReviewedAt   *time.Time  `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
	ReviewedBy   string      `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
}

// IsApproved reports whether the account may use the console
func (a *AdminAccount) IsApproved() bool {
	return a != nil && a.Status == AdminApproved
}

// Summary drops the password hash
func (a *AdminAccount) Summary() AdminSummary {
	return AdminSummary{
		ID:        a.ID,
		Email:     a.Email,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}

// AdminSummary is the listing view of an admin account
type AdminSummary struct {
	ID        string      `json:"id" bson:"_id"`
	Email     string      `json:"email" bson:"email"`
	Status    AdminStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
}

// ReviewRequest is the body of POST /admin/review
type ReviewRequest struct {
	AdminID string `json:"adminId"`
	Approve *bool  `json:"approve"`
}

// ReviewResponse is returned by POST /admin/review
type ReviewResponse struct {
	Status AdminStatus `json:"status"`
}
