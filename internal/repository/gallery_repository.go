package repository

import (
	"context"
	"database/sql"

	"github.com/kadrfilm/booking-server/internal/model"
)

// GalleryRepo manages portfolio images. Deleting an item is a two-step
// operation coordinated by the handler: the backing blob is removed first,
// inside the transaction opened here, so the row only disappears once the
// blob deletion succeeded.
type GalleryRepo struct {
	db *sql.DB
}

func NewGalleryRepo(db *sql.DB) *GalleryRepo { return &GalleryRepo{db: db} }

// DB exposes the handle for the blob-then-row delete transaction.
func (r *GalleryRepo) DB() *sql.DB { return r.db }

// Create inserts a gallery item and returns the stored row.
func (r *GalleryRepo) Create(ctx context.Context, g model.GalleryItem) (model.GalleryItem, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO gallery_items (title, image_url, public_id, position) VALUES (?,?,?,?)",
		g.Title, g.ImageURL, g.PublicID, g.Position)
	if err != nil {
		return model.GalleryItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.GalleryItem{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one gallery item.
func (r *GalleryRepo) GetByID(ctx context.Context, id uint64) (model.GalleryItem, error) {
	var g model.GalleryItem
	err := r.db.QueryRowContext(ctx, `SELECT id, title, image_url, public_id, position, created_at
		FROM gallery_items WHERE id = ? LIMIT 1`,
		id).Scan(&g.ID, &g.Title, &g.ImageURL, &g.PublicID, &g.Position, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return model.GalleryItem{}, ErrNotFound
	}
	return g, err
}

// List returns the gallery in display order.
func (r *GalleryRepo) List(ctx context.Context) ([]model.GalleryItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, image_url, public_id, position, created_at
		FROM gallery_items ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.GalleryItem{}
	for rows.Next() {
		var g model.GalleryItem
		if err := rows.Scan(&g.ID, &g.Title, &g.ImageURL, &g.PublicID, &g.Position, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// DeleteTx removes the row within the caller's transaction. The caller
// deletes the backing blob between opening the transaction and committing
// it; if the blob deletion fails the transaction rolls back and the row
// survives.
func (r *GalleryRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM gallery_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}
