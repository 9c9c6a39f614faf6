package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kadrfilm/booking-server/internal/model"
)

// StageRepo tracks the production pipeline of each booking. Stage rows are
// seeded inside the booking-creation transaction; afterwards only their
// status moves.
type StageRepo struct {
	db *sql.DB
}

func NewStageRepo(db *sql.DB) *StageRepo { return &StageRepo{db: db} }

// ListByClient returns a booking's pipeline in order.
func (r *StageRepo) ListByClient(ctx context.Context, clientID string) ([]model.Stage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, client_id, name, status, position, updated_at
		FROM stages WHERE client_id = ? ORDER BY position`, strings.TrimSpace(clientID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Stage{}
	for rows.Next() {
		var s model.Stage
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Name, &s.Status, &s.Position, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetStatus moves one stage to a new status.
func (r *StageRepo) SetStatus(ctx context.Context, id uint64, status string) (model.Stage, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM stages WHERE id = ?", id).Scan(&n); err != nil {
		return model.Stage{}, err
	}
	if n == 0 {
		return model.Stage{}, ErrNotFound
	}
	if _, err := r.db.ExecContext(ctx,
		"UPDATE stages SET status = ? WHERE id = ?", status, id); err != nil {
		return model.Stage{}, err
	}
	var s model.Stage
	err := r.db.QueryRowContext(ctx, `SELECT id, client_id, name, status, position, updated_at
		FROM stages WHERE id = ? LIMIT 1`,
		id).Scan(&s.ID, &s.ClientID, &s.Name, &s.Status, &s.Position, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Stage{}, ErrNotFound
	}
	return s, err
}
