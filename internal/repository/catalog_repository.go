package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/kadrfilm/booking-server/internal/model"
)

// CatalogRepo manages the offer catalog: packages, addons and the join table
// flagging which addons are locked into which packages.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListPackagesWithAddons returns every package together with its addons and
// lock flags. This is the payload of the public GET /api/packages.
func (r *CatalogRepo) ListPackagesWithAddons(ctx context.Context) ([]model.PackageWithAddons, error) {
	pkgs, err := r.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT pa.package_id, a.id, a.name, a.price, pa.is_locked
		FROM package_addons pa JOIN addons a ON a.id = pa.addon_id
		ORDER BY pa.package_id, a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byPackage := map[uint64][]model.PackageAddonDetail{}
	for rows.Next() {
		var pkgID uint64
		var d model.PackageAddonDetail
		if err := rows.Scan(&pkgID, &d.ID, &d.Name, &d.Price, &d.IsLocked); err != nil {
			return nil, err
		}
		byPackage[pkgID] = append(byPackage[pkgID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.PackageWithAddons, 0, len(pkgs))
	for _, p := range pkgs {
		addons := byPackage[p.ID]
		if addons == nil {
			addons = []model.PackageAddonDetail{}
		}
		out = append(out, model.PackageWithAddons{Package: p, Addons: addons})
	}
	return out, nil
}

// ListPackages returns all packages.
func (r *CatalogRepo) ListPackages(ctx context.Context) ([]model.Package, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, price FROM packages ORDER BY price")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Package{}
	for rows.Next() {
		var p model.Package
		var desc sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Price); err != nil {
			return nil, err
		}
		p.Description = desc.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreatePackage inserts a package and returns its ID.
func (r *CatalogRepo) CreatePackage(ctx context.Context, p model.Package) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO packages (name, description, price) VALUES (?,?,?)",
		p.Name, p.Description, p.Price)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// PackageUpdate carries a partial package edit.
type PackageUpdate struct {
	Name        *string
	Description *string
	Price       *float64
}

// UpdatePackage applies a partial edit.
func (r *CatalogRepo) UpdatePackage(ctx context.Context, id uint64, u PackageUpdate) error {
	set, args := buildSet(map[string]*string{"name": u.Name, "description": u.Description})
	if u.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *u.Price)
	}
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM packages WHERE id = ?", id).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE packages SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	return err
}

// DeletePackage removes a package; its join rows cascade.
func (r *CatalogRepo) DeletePackage(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM packages WHERE id = ?", id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}

// ListAddons returns all addons.
func (r *CatalogRepo) ListAddons(ctx context.Context) ([]model.Addon, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, price FROM addons ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Addon{}
	for rows.Next() {
		var a model.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Price); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateAddon inserts an addon and returns its ID.
func (r *CatalogRepo) CreateAddon(ctx context.Context, a model.Addon) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO addons (name, price) VALUES (?,?)", a.Name, a.Price)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// AddonUpdate carries a partial addon edit.
type AddonUpdate struct {
	Name  *string
	Price *float64
}

// UpdateAddon applies a partial edit.
func (r *CatalogRepo) UpdateAddon(ctx context.Context, id uint64, u AddonUpdate) error {
	set, args := buildSet(map[string]*string{"name": u.Name})
	if u.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *u.Price)
	}
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM addons WHERE id = ?", id).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE addons SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	return err
}

// DeleteAddon removes an addon; its join rows cascade.
func (r *CatalogRepo) DeleteAddon(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM addons WHERE id = ?", id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}

// LinkAddon attaches an addon to a package. Each (package, addon) pair is
// unique; relinking an existing pair returns ErrConflict.
func (r *CatalogRepo) LinkAddon(ctx context.Context, pa model.PackageAddon) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO package_addons (package_id, addon_id, is_locked) VALUES (?,?,?)",
		pa.PackageID, pa.AddonID, pa.IsLocked)
	if isDuplicate(err) {
		return ErrConflict
	}
	return err
}

// UnlinkAddon detaches an addon from a package.
func (r *CatalogRepo) UnlinkAddon(ctx context.Context, packageID, addonID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM package_addons WHERE package_id = ? AND addon_id = ?", packageID, addonID)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res)
}
