package users

import "time"

// User is a recruiter account created on first Google sign-in. Terms
// acceptance is recorded once and never reset.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FullName        string     `json:"fullName"`
	TermsAccepted   bool       `json:"termsAccepted"`
	TermsAcceptedAt *time.Time `json:"termsAcceptedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
