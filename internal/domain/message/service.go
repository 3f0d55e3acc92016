package message

import (
	"context"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/platform/errs"
)

// UserLookup resolves mirrored users. *identity.Service satisfies it.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*identity.User, error)
	GetUsers(ctx context.Context, ids []string) ([]*identity.User, error)
}

type Service struct {
	messages MessageRepository
	users    UserLookup
}

func NewService(messages MessageRepository, users UserLookup) *Service {
	return &Service{messages: messages, users: users}
}

// Send stores a message from the caller. The receiver must be a known user.
func (s *Service) Send(ctx context.Context, callerID string, in CreateInput) (*Message, error) {
	if in.SenderID != callerID {
		return nil, errs.ErrUnauthorized
	}
	receiver, err := s.users.GetUser(ctx, in.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, errs.Validation("receiverId", "Receiver not found")
	}

	m := &Message{SenderID: in.SenderID, ReceiverID: in.ReceiverID, Content: in.Content}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Thread returns the caller's exchange with otherID in chronological order.
func (s *Service) Thread(ctx context.Context, callerID, otherID string) ([]*Message, error) {
	return s.messages.ListBetween(ctx, callerID, otherID)
}
