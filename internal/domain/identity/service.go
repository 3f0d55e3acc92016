package identity

import (
	"context"
	"fmt"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/errs"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// SyncCaller mirrors the authenticated caller into users so rows that
// reference the caller's id satisfy their foreign keys.
func (s *Service) SyncCaller(ctx context.Context, c auth.Caller) error {
	if c.ID == "" {
		return errs.ErrUnauthorized
	}
	if err := s.users.Upsert(ctx, FromCaller(c)); err != nil {
		return fmt.Errorf("sync caller %s: %w", c.ID, err)
	}
	return nil
}

// GetUser returns nil, nil for unknown ids.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUsers batch-loads users, skipping ids without a row.
func (s *Service) GetUsers(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return []*User{}, nil
	}
	return s.users.GetByIDs(ctx, ids)
}
