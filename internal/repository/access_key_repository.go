package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kadrfilm/booking-server/internal/model"
)

// AccessKeyRepo manages the admin-issued keys that gate the public booking
// flow.
type AccessKeyRepo struct {
	db *sql.DB
}

func NewAccessKeyRepo(db *sql.DB) *AccessKeyRepo { return &AccessKeyRepo{db: db} }

// Create allocates a fresh 6-character key and inserts it for the given
// client name. The generated key is returned to the admin for distribution.
func (r *AccessKeyRepo) Create(ctx context.Context, clientName string) (model.AccessKey, error) {
	key, err := allocate(ctx, randomAccessKey, func(ctx context.Context, candidate string) (bool, error) {
		var n int
		err := r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM access_keys WHERE access_key = ?", candidate).Scan(&n)
		return n > 0, err
	})
	if err != nil {
		return model.AccessKey{}, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO access_keys (access_key, client_name) VALUES (?,?)", key, clientName)
	if err != nil {
		if isDuplicate(err) {
			return model.AccessKey{}, ErrConflict
		}
		return model.AccessKey{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.AccessKey{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one access key row.
func (r *AccessKeyRepo) GetByID(ctx context.Context, id uint64) (model.AccessKey, error) {
	var k model.AccessKey
	err := r.db.QueryRowContext(ctx,
		"SELECT id, access_key, client_name, created_at FROM access_keys WHERE id = ? LIMIT 1",
		id).Scan(&k.ID, &k.Key, &k.ClientName, &k.CreatedAt)
	if err == sql.ErrNoRows {
		return model.AccessKey{}, ErrNotFound
	}
	return k, err
}

// Exists reports whether a key is currently issued. Lookup is
// case-insensitive on the normalized uppercase form.
func (r *AccessKeyRepo) Exists(ctx context.Context, key string) (bool, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM access_keys WHERE access_key = ?", key).Scan(&n)
	return n > 0, err
}

// List returns all issued keys, newest first.
func (r *AccessKeyRepo) List(ctx context.Context) ([]model.AccessKey, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, access_key, client_name, created_at FROM access_keys ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AccessKey{}
	for rows.Next() {
		var k model.AccessKey
		if err := rows.Scan(&k.ID, &k.Key, &k.ClientName, &k.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Delete removes an issued key.
func (r *AccessKeyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM access_keys WHERE id = ?", id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}
