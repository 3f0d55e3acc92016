package identity

import (
	"time"

	"github.com/hms/hms/internal/platform/auth"
)

// User mirrors an identity-provider account so other tables can reference it.
type User struct {
	ID              string    `db:"id" json:"id"`
	Email           *string   `db:"email" json:"email,omitempty"`
	FirstName       *string   `db:"first_name" json:"firstName,omitempty"`
	LastName        *string   `db:"last_name" json:"lastName,omitempty"`
	ProfileImageURL *string   `db:"profile_image_url" json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// FromCaller maps token claims onto a User. Empty claims stay NULL.
func FromCaller(c auth.Caller) *User {
	return &User{
		ID:              c.ID,
		Email:           nullable(c.Email),
		FirstName:       nullable(c.FirstName),
		LastName:        nullable(c.LastName),
		ProfileImageURL: nullable(c.ProfileImageURL),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
