package message

import (
	"context"
	"sort"

	"github.com/hms/hms/internal/domain/identity"
)

// RecentConversations lists one entry per counterparty of userID, carrying the
// newest message exchanged with them, most recent conversation first.
func (s *Service) RecentConversations(ctx context.Context, userID string) ([]*Conversation, error) {
	msgs, err := s.messages.ListInvolving(ctx, userID)
	if err != nil {
		return nil, err
	}
	convs := latestByCounterparty(userID, msgs)
	if len(convs) == 0 {
		return convs, nil
	}

	ids := make([]string, len(convs))
	for i, c := range convs {
		ids[i] = c.UserID
	}
	users, err := s.users.GetUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*identity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, c := range convs {
		c.User = byID[c.UserID]
	}
	return convs, nil
}

// latestByCounterparty groups msgs by the participant other than userID and
// keeps the newest message of each group. A message to oneself groups under
// userID. Ties on created_at go to the larger id.
func latestByCounterparty(userID string, msgs []*Message) []*Conversation {
	groups := make(map[string]*Conversation)
	for _, m := range msgs {
		other := m.ReceiverID
		if m.ReceiverID == userID {
			other = m.SenderID
		}
		c, ok := groups[other]
		if ok && !newer(m, c) {
			continue
		}
		if !ok {
			c = &Conversation{UserID: other}
			groups[other] = c
		}
		c.LastMessage = m.Content
		c.LastMessageTime = m.CreatedAt
		c.lastMessageID = m.ID
	}

	convs := make([]*Conversation, 0, len(groups))
	for _, c := range groups {
		convs = append(convs, c)
	}
	sort.Slice(convs, func(i, j int) bool {
		if !convs[i].LastMessageTime.Equal(convs[j].LastMessageTime) {
			return convs[i].LastMessageTime.After(convs[j].LastMessageTime)
		}
		return convs[i].lastMessageID > convs[j].lastMessageID
	})
	return convs
}

func newer(m *Message, c *Conversation) bool {
	if m.CreatedAt.Equal(c.LastMessageTime) {
		return m.ID > c.lastMessageID
	}
	return m.CreatedAt.After(c.LastMessageTime)
}
