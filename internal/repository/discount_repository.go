package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/kadrfilm/booking-server/internal/model"
)

// DiscountRepo manages discount codes used by the public calculator.
type DiscountRepo struct {
	db *sql.DB
}

func NewDiscountRepo(db *sql.DB) *DiscountRepo { return &DiscountRepo{db: db} }

// CheckCode returns the discount for an active, unexpired code. Inactive,
// expired and unknown codes all return ErrNotFound so the caller cannot tell
// which codes exist.
func (r *DiscountRepo) CheckCode(ctx context.Context, code string) (model.DiscountCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	d, err := r.getBy(ctx, "code = ?", code)
	if err != nil {
		return model.DiscountCode{}, err
	}
	if !d.Active || (d.ExpiresAt != nil && d.ExpiresAt.Before(time.Now().UTC())) {
		return model.DiscountCode{}, ErrNotFound
	}
	return d, nil
}

// Create inserts a discount code.
func (r *DiscountRepo) Create(ctx context.Context, d model.DiscountCode) (model.DiscountCode, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO discount_codes (code, percent, active, expires_at) VALUES (?,?,?,?)",
		strings.ToUpper(strings.TrimSpace(d.Code)), d.Percent, d.Active, d.ExpiresAt)
	if err != nil {
		if isDuplicate(err) {
			return model.DiscountCode{}, ErrConflict
		}
		return model.DiscountCode{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.DiscountCode{}, err
	}
	return r.getBy(ctx, "id = ?", uint64(id))
}

// List returns all codes, newest first.
func (r *DiscountRepo) List(ctx context.Context) ([]model.DiscountCode, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, percent, active, expires_at, created_at
		FROM discount_codes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DiscountCode{}
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DiscountUpdate carries a partial edit of a code.
type DiscountUpdate struct {
	Percent   *int
	Active    *bool
	ExpiresAt *time.Time
}

// Update applies a partial edit.
func (r *DiscountRepo) Update(ctx context.Context, id uint64, u DiscountUpdate) error {
	set := []string{}
	args := []any{}
	if u.Percent != nil {
		set = append(set, "percent = ?")
		args = append(args, *u.Percent)
	}
	if u.Active != nil {
		set = append(set, "active = ?")
		args = append(args, *u.Active)
	}
	if u.ExpiresAt != nil {
		set = append(set, "expires_at = ?")
		args = append(args, *u.ExpiresAt)
	}
	if _, err := r.getBy(ctx, "id = ?", id); err != nil {
		return err
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE discount_codes SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	return err
}

// Delete removes a code.
func (r *DiscountRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM discount_codes WHERE id = ?", id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}

func (r *DiscountRepo) getBy(ctx context.Context, cond string, arg any) (model.DiscountCode, error) {
	d, err := scanDiscount(r.db.QueryRowContext(ctx,
		`SELECT id, code, percent, active, expires_at, created_at
		 FROM discount_codes WHERE `+cond+` LIMIT 1`, arg))
	if err == sql.ErrNoRows {
		return model.DiscountCode{}, ErrNotFound
	}
	return d, err
}

func scanDiscount(row interface{ Scan(dest ...any) error }) (model.DiscountCode, error) {
	var d model.DiscountCode
	var exp sql.NullTime
	err := row.Scan(&d.ID, &d.Code, &d.Percent, &d.Active, &exp, &d.CreatedAt)
	if err != nil {
		return model.DiscountCode{}, err
	}
	if exp.Valid {
		t := exp.Time
		d.ExpiresAt = &t
	}
	return d, nil
}
