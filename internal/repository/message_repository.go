package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kadrfilm/booking-server/internal/model"
)

// MessageRepo stores the message threads between couples and the studio.
type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// Create appends a message to a thread and returns the stored row.
func (r *MessageRepo) Create(ctx context.Context, clientID, sender, content string) (model.Message, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (client_id, sender, content) VALUES (?,?,?)",
		strings.TrimSpace(clientID), sender, content)
	if err != nil {
		return model.Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Message{}, err
	}
	var m model.Message
	err = r.db.QueryRowContext(ctx, `SELECT id, client_id, sender, content, is_read, created_at
		FROM messages WHERE id = ? LIMIT 1`,
		id).Scan(&m.ID, &m.ClientID, &m.Sender, &m.Content, &m.IsRead, &m.CreatedAt)
	return m, err
}

// ListByClient returns a thread oldest-first. When markReadFor is non-empty,
// messages sent by the other party are flagged read in the same call.
func (r *MessageRepo) ListByClient(ctx context.Context, clientID, markReadFor string) ([]model.Message, error) {
	clientID = strings.TrimSpace(clientID)
	if markReadFor != "" {
		other := model.SenderAdmin
		if markReadFor == model.SenderAdmin {
			other = model.SenderClient
		}
		if _, err := r.db.ExecContext(ctx,
			"UPDATE messages SET is_read = 1 WHERE client_id = ? AND sender = ?",
			clientID, other); err != nil {
			return nil, err
		}
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, client_id, sender, content, is_read, created_at
		FROM messages WHERE client_id = ? ORDER BY created_at, id`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Message{}
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ClientID, &m.Sender, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ThreadSummary lists one row per thread for the back-office inbox.
type ThreadSummary struct {
	ClientID    string         `json:"clientId"`
	BrideName   string         `json:"brideName"`
	GroomName   string         `json:"groomName"`
	UnreadCount int            `json:"unreadCount"`
	LastMessage sql.NullString `json:"-"`
	Preview     string         `json:"preview"`
}

// ListThreads returns every thread with its unread-from-client count.
func (r *MessageRepo) ListThreads(ctx context.Context) ([]ThreadSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.client_id, b.bride_name, b.groom_name,
		       SUM(CASE WHEN m.sender = 'client' AND m.is_read = 0 THEN 1 ELSE 0 END),
		       SUBSTRING(MAX(CONCAT(m.created_at, '|', m.content)), 21)
		FROM messages m
		JOIN bookings b ON b.client_id = m.client_id
		GROUP BY m.client_id, b.bride_name, b.groom_name
		ORDER BY MAX(m.created_at) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ThreadSummary{}
	for rows.Next() {
		var t ThreadSummary
		if err := rows.Scan(&t.ClientID, &t.BrideName, &t.GroomName, &t.UnreadCount, &t.LastMessage); err != nil {
			return nil, err
		}
		t.Preview = t.LastMessage.String
		out = append(out, t)
	}
	return out, rows.Err()
}
