package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kadrfilm/booking-server/internal/model"
)

// AdminRepo reads back-office accounts. Admins are only ever written by the
// bootstrap seeder.
type AdminRepo struct {
	db *sql.DB
}

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM admins WHERE email = ? LIMIT 1",
		email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Admin{}, ErrNotFound
	}
	return a, err
}
