package repository

import (
	"context"
	"strings"

	"database/sql"

	"github.com/kadrfilm/booking-server/internal/model"
)

// GuestRepo stores RSVP entries submitted by wedding guests.
type GuestRepo struct {
	db *sql.DB
}

func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

// Create inserts an RSVP entry and returns the stored row.
func (r *GuestRepo) Create(ctx context.Context, g model.Guest) (model.Guest, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO guests (client_id, name, attending, companions, notes) VALUES (?,?,?,?,?)",
		strings.TrimSpace(g.ClientID), g.Name, g.Attending, g.Companions, g.Notes)
	if err != nil {
		return model.Guest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Guest{}, err
	}
	var out model.Guest
	var notes sql.NullString
	err = r.db.QueryRowContext(ctx, `SELECT id, client_id, name, attending, companions, notes, created_at
		FROM guests WHERE id = ? LIMIT 1`,
		id).Scan(&out.ID, &out.ClientID, &out.Name, &out.Attending, &out.Companions, &notes, &out.CreatedAt)
	out.Notes = notes.String
	return out, err
}

// ListByClient returns all RSVP entries for a booking.
func (r *GuestRepo) ListByClient(ctx context.Context, clientID string) ([]model.Guest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, client_id, name, attending, companions, notes, created_at
		FROM guests WHERE client_id = ? ORDER BY created_at`, strings.TrimSpace(clientID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Guest{}
	for rows.Next() {
		var g model.Guest
		var notes sql.NullString
		if err := rows.Scan(&g.ID, &g.ClientID, &g.Name, &g.Attending, &g.Companions, &notes, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Notes = notes.String
		out = append(out, g)
	}
	return out, rows.Err()
}

// DeleteForClient removes one RSVP entry, but only when it belongs to the
// given client. Keeps one couple from deleting another couple's guests.
func (r *GuestRepo) DeleteForClient(ctx context.Context, id uint64, clientID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM guests WHERE id = ? AND client_id = ?", id, strings.TrimSpace(clientID))
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}

// Delete removes one RSVP entry regardless of owner (admin use).
func (r *GuestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM guests WHERE id = ?", id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}
