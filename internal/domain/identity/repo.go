package identity

import "context"

type UserRepository interface {
	// Upsert inserts u or refreshes the profile fields of an existing row.
	Upsert(ctx context.Context, u *User) error
	// GetByID returns nil, nil when no user matches.
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByIDs returns the users that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
}
