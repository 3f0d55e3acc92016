package message

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type messageRepoPG struct{ pool *pgxpool.Pool }

func NewMessageRepoPG(pool *pgxpool.Pool) MessageRepository {
	return &messageRepoPG{pool: pool}
}

const messageCols = `id, sender_id, receiver_id, content, is_read, created_at`

func (r *messageRepoPG) Create(ctx context.Context, m *Message) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at`,
		m.SenderID, m.ReceiverID, m.Content,
	).Scan(&m.ID, &m.IsRead, &m.CreatedAt)
	return db.Wrap("create message", err)
}

func (r *messageRepoPG) ListBetween(ctx context.Context, a, b string) ([]*Message, error) {
	return r.list(ctx, "list messages between users", `
		SELECT `+messageCols+` FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at, id`, a, b)
}

func (r *messageRepoPG) ListInvolving(ctx context.Context, userID string) ([]*Message, error) {
	return r.list(ctx, "list messages involving user", `
		SELECT `+messageCols+` FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
}

func (r *messageRepoPG) list(ctx context.Context, op, sql string, args ...interface{}) ([]*Message, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, db.Wrap(op, err)
	}
	defer rows.Close()

	msgs := []*Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, db.Wrap(op, err)
		}
		msgs = append(msgs, &m)
	}
	return msgs, db.Wrap(op, rows.Err())
}
