package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/kadrfilm/booking-server/internal/model"
	"github.com/kadrfilm/booking-server/internal/utils"
)

// BookingRepo provides CRUD operations for bookings. Booking creation is the
// one genuinely transactional flow in the system: the client ID allocation,
// the booking insert and the production-stage seeding must succeed or fail
// together.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for handlers that open transactions
// spanning multiple repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// createAttempts bounds the retry loop around a lost client-ID uniqueness
// race: two concurrent submissions can probe the same candidate and one of
// them hits the unique constraint on insert. Retrying with a fresh ID keeps
// that case invisible to the caller.
const createAttempts = 3

// CreateBookingInput carries the validated fields of a new booking. Password
// arrives in plaintext and is hashed inside Create.
type CreateBookingInput struct {
	AccessKey      string
	Password       string
	PackageName    string
	TotalPrice     float64
	SelectedItems  []string
	BrideName      string
	GroomName      string
	WeddingDate    *time.Time
	BrideAddress   string
	GroomAddress   string
	Locations      string
	Schedule       string
	Email          string
	PhoneNumber    string
	AdditionalInfo string
	DiscountCode   string
}

// Create inserts a booking atomically with a freshly allocated client ID and
// the default production pipeline. It returns the surrogate row ID and the
// client ID. Any step failing rolls the whole transaction back.
func (r *BookingRepo) Create(ctx context.Context, in CreateBookingInput, bcryptCost int) (uint64, string, error) {
	hash, err := utils.HashPassword(in.Password, bcryptCost)
	if err != nil {
		return 0, "", err
	}
	items, err := json.Marshal(in.SelectedItems)
	if err != nil {
		return 0, "", err
	}

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		id, clientID, err := r.createOnce(ctx, in, hash, string(items))
		if err == nil {
			return id, clientID, nil
		}
		lastErr = err
		if !isDuplicate(err) {
			return 0, "", err
		}
	}
	return 0, "", lastErr
}

func (r *BookingRepo) createOnce(ctx context.Context, in CreateBookingInput, passwordHash, itemsJSON string) (uint64, string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	clientID, err := allocate(ctx, randomClientID, func(ctx context.Context, candidate string) (bool, error) {
		var n int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM bookings WHERE client_id = ?", candidate).Scan(&n)
		return n > 0, err
	})
	if err != nil {
		return 0, "", err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO bookings
		(client_id, password_hash, access_key, package_name, total_price, selected_items,
		 bride_name, groom_name, wedding_date, bride_address, groom_address,
		 locations, schedule, email, phone_number, additional_info, discount_code)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		clientID, passwordHash, in.AccessKey, in.PackageName, in.TotalPrice, itemsJSON,
		in.BrideName, in.GroomName, in.WeddingDate, in.BrideAddress, in.GroomAddress,
		in.Locations, in.Schedule, in.Email, in.PhoneNumber, in.AdditionalInfo, in.DiscountCode)
	if err != nil {
		return 0, "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}

	for i, name := range model.DefaultStages {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO stages (client_id, name, status, position) VALUES (?,?,?,?)",
			clientID, name, model.StagePending, i); err != nil {
			return 0, "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, "", err
	}
	committed = true
	return uint64(id), clientID, nil
}

const bookingColumns = `id, client_id, password_hash, access_key, package_name, total_price,
	selected_items, bride_name, groom_name, wedding_date, bride_address, groom_address,
	locations, schedule, email, phone_number, additional_info, discount_code, created_at`

func scanBooking(row interface {
	Scan(dest ...any) error
}) (model.Booking, error) {
	var b model.Booking
	var items sql.NullString
	var weddingDate sql.NullTime
	var locations, schedule, additional sql.NullString
	err := row.Scan(&b.ID, &b.ClientID, &b.PasswordHash, &b.AccessKey, &b.PackageName,
		&b.TotalPrice, &items, &b.BrideName, &b.GroomName, &weddingDate,
		&b.BrideAddress, &b.GroomAddress, &locations, &schedule,
		&b.Email, &b.PhoneNumber, &additional, &b.DiscountCode, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	b.SelectedItems = []string{}
	if items.Valid && items.String != "" {
		_ = json.Unmarshal([]byte(items.String), &b.SelectedItems)
	}
	if weddingDate.Valid {
		t := weddingDate.Time
		b.WeddingDate = &t
	}
	b.Locations = locations.String
	b.Schedule = schedule.String
	b.AdditionalInfo = additional.String
	return b, nil
}

// GetByClientID fetches one booking by its four-digit client ID. The client
// ID is trimmed of surrounding whitespace before the lookup.
func (r *BookingRepo) GetByClientID(ctx context.Context, clientID string) (model.Booking, error) {
	clientID = strings.TrimSpace(clientID)
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE client_id = ? LIMIT 1", clientID))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// GetByID fetches one booking by surrogate row ID.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// List returns all bookings, newest first.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ClientUpdate is the subset of booking fields the couple may change from
// the portal. Nil pointers leave the column untouched.
type ClientUpdate struct {
	BrideAddress   *string
	GroomAddress   *string
	Locations      *string
	Schedule       *string
	AdditionalInfo *string
	PhoneNumber    *string
}

// UpdateByClient applies the couple's portal edits to their own booking.
func (r *BookingRepo) UpdateByClient(ctx context.Context, clientID string, u ClientUpdate) error {
	set, args := buildSet(map[string]*string{
		"bride_address":   u.BrideAddress,
		"groom_address":   u.GroomAddress,
		"locations":       u.Locations,
		"schedule":        u.Schedule,
		"additional_info": u.AdditionalInfo,
		"phone_number":    u.PhoneNumber,
	})
	clientID = strings.TrimSpace(clientID)
	exists, err := r.ClientIDExists(ctx, clientID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, clientID)
	_, err = r.db.ExecContext(ctx,
		"UPDATE bookings SET "+strings.Join(set, ", ")+" WHERE client_id = ?", args...)
	return err
}

// AdminUpdate covers the full mutable field set available to the back
// office.
type AdminUpdate struct {
	PackageName    *string
	TotalPrice     *float64
	SelectedItems  []string
	BrideName      *string
	GroomName      *string
	WeddingDate    *time.Time
	BrideAddress   *string
	GroomAddress   *string
	Locations      *string
	Schedule       *string
	Email          *string
	PhoneNumber    *string
	AdditionalInfo *string
	DiscountCode   *string
}

// UpdateByAdmin applies a back-office edit to any booking by row ID.
func (r *BookingRepo) UpdateByAdmin(ctx context.Context, id uint64, u AdminUpdate) error {
	set, args := buildSet(map[string]*string{
		"package_name":    u.PackageName,
		"bride_name":      u.BrideName,
		"groom_name":      u.GroomName,
		"bride_address":   u.BrideAddress,
		"groom_address":   u.GroomAddress,
		"locations":       u.Locations,
		"schedule":        u.Schedule,
		"email":           u.Email,
		"phone_number":    u.PhoneNumber,
		"additional_info": u.AdditionalInfo,
		"discount_code":   u.DiscountCode,
	})
	if u.TotalPrice != nil {
		set = append(set, "total_price = ?")
		args = append(args, *u.TotalPrice)
	}
	if u.WeddingDate != nil {
		set = append(set, "wedding_date = ?")
		args = append(args, *u.WeddingDate)
	}
	if u.SelectedItems != nil {
		items, err := json.Marshal(u.SelectedItems)
		if err != nil {
			return err
		}
		set = append(set, "selected_items = ?")
		args = append(args, string(items))
	}
	var n int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE id = ?", id).Scan(&n); err != nil {
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
		"UPDATE bookings SET "+strings.Join(set, ", ")+" WHERE id = ?", args...)
	return err
}

// Delete removes a booking and its per-client records (stages, messages,
// guests) in one transaction.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var clientID string
	err = tx.QueryRowContext(ctx, "SELECT client_id FROM bookings WHERE id = ?", id).Scan(&clientID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	for _, table := range []string{"stages", "messages", "guests"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE client_id = ?", clientID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ClientIDExists reports whether a booking with the client ID exists. Used
// by the public RSVP flow.
func (r *BookingRepo) ClientIDExists(ctx context.Context, clientID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE client_id = ?", strings.TrimSpace(clientID)).Scan(&n)
	return n > 0, err
}

// WeddingDates returns every booked wedding date with the couple's names,
// feeding the read-only public calendar projection.
func (r *BookingRepo) WeddingDates(ctx context.Context) ([]model.CalendarEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT bride_name, groom_name, wedding_date FROM bookings WHERE wedding_date IS NOT NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.CalendarEntry{}
	for rows.Next() {
		var bride, groom string
		var date time.Time
		if err := rows.Scan(&bride, &groom, &date); err != nil {
			return nil, err
		}
		out = append(out, model.CalendarEntry{
			Title:     "Ślub: " + bride + " i " + groom,
			StartTime: date,
			EndTime:   date.Add(24 * time.Hour),
			IsAllDay:  true,
			Source:    "booking",
		})
	}
	return out, rows.Err()
}

func buildSet(cols map[string]*string) ([]string, []any) {
	set := []string{}
	args := []any{}
	for col, v := range cols {
		if v != nil {
			set = append(set, col+" = ?")
			args = append(args, *v)
		}
	}
	return set, args
}
