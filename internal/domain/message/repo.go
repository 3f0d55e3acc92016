package message

import "context"

type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	// ListBetween returns the messages exchanged by a and b in either
	// direction, oldest first.
	ListBetween(ctx context.Context, a, b string) ([]*Message, error)
	// ListInvolving returns every message userID sent or received, newest
	// first.
	ListInvolving(ctx context.Context, userID string) ([]*Message, error)
}
