package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kadrfilm/booking-server/internal/model"
)

// AvailabilityRepo manages admin calendar events.
type AvailabilityRepo struct {
	db *sql.DB
}

func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// Create inserts a calendar event and returns the stored row.
func (r *AvailabilityRepo) Create(ctx context.Context, e model.AvailabilityEvent) (model.AvailabilityEvent, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO availability_events
		(title, start_time, end_time, is_all_day, description) VALUES (?,?,?,?,?)`,
		e.Title, e.StartTime, e.EndTime, e.IsAllDay, e.Description)
	if err != nil {
		return model.AvailabilityEvent{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.AvailabilityEvent{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one event.
func (r *AvailabilityRepo) GetByID(ctx context.Context, id uint64) (model.AvailabilityEvent, error) {
	var e model.AvailabilityEvent
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT id, title, start_time, end_time, is_all_day,
		description, created_at FROM availability_events WHERE id = ? LIMIT 1`,
		id).Scan(&e.ID, &e.Title, &e.StartTime, &e.EndTime, &e.IsAllDay, &desc, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return model.AvailabilityEvent{}, ErrNotFound
	}
	e.Description = desc.String
	return e, err
}

// List returns all events ordered by start time.
func (r *AvailabilityRepo) List(ctx context.Context) ([]model.AvailabilityEvent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, start_time, end_time, is_all_day,
		description, created_at FROM availability_events ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AvailabilityEvent{}
	for rows.Next() {
		var e model.AvailabilityEvent
		var desc sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.StartTime, &e.EndTime, &e.IsAllDay, &desc, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Description = desc.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// EventUpdate carries a partial edit of a calendar event.
type EventUpdate struct {
	Title       *string
	StartTime   *time.Time
	EndTime     *time.Time
	IsAllDay    *bool
	Description *string
}

// Update applies a partial edit.
func (r *AvailabilityRepo) Update(ctx context.Context, id uint64, u EventUpdate) error {
	set := []string{}
	args := []any{}
	if u.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *u.Title)
	}
	if u.StartTime != nil {
		set = append(set, "start_time = ?")
		args = append(args, *u.StartTime)
	}
	if u.EndTime != nil {
		set = append(set, "end_time = ?")
		args = append(args, *u.EndTime)
	}
	if u.IsAllDay != nil {
		set = append(set, "is_all_day = ?")
		args = append(args, *u.IsAllDay)
	}
	if u.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *u.Description)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE availability_events SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	return err
}

// Delete removes an event.
func (r *AvailabilityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM availability_events WHERE id = ?", id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}
