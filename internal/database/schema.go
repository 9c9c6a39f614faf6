package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kadrfilm/booking-server/internal/utils"
)

// Bootstrap creates every table the application needs and seeds default
// rows. All statements are idempotent so the function can run on every
// startup.
func Bootstrap(ctx context.Context, db *sql.DB, adminEmail, adminPassword string, bcryptCost int, seedTestData bool) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	if err := seedAdmin(ctx, db, adminEmail, adminPassword, bcryptCost); err != nil {
		return err
	}
	if err := seedPackages(ctx, db); err != nil {
		return err
	}
	if seedTestData {
		if err := seedTestBooking(ctx, db, bcryptCost); err != nil {
			return err
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS access_keys (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		access_key VARCHAR(16) NOT NULL,
		client_name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_access_keys_key (access_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		client_id CHAR(4) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		access_key VARCHAR(16) NOT NULL,
		package_name VARCHAR(255) NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		selected_items TEXT,
		bride_name VARCHAR(255) NOT NULL DEFAULT '',
		groom_name VARCHAR(255) NOT NULL DEFAULT '',
		wedding_date DATE NULL,
		bride_address VARCHAR(512) NOT NULL DEFAULT '',
		groom_address VARCHAR(512) NOT NULL DEFAULT '',
		locations TEXT,
		schedule TEXT,
		email VARCHAR(255) NOT NULL,
		phone_number VARCHAR(32) NOT NULL,
		additional_info TEXT,
		discount_code VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bookings_client_id (client_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS admins (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_admins_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS availability_events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		is_all_day TINYINT(1) NOT NULL DEFAULT 0,
		description TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS packages (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS addons (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS package_addons (
		package_id BIGINT UNSIGNED NOT NULL,
		addon_id BIGINT UNSIGNED NOT NULL,
		is_locked TINYINT(1) NOT NULL DEFAULT 0,
		PRIMARY KEY (package_id, addon_id),
		CONSTRAINT fk_pa_package FOREIGN KEY (package_id) REFERENCES packages(id) ON DELETE CASCADE,
		CONSTRAINT fk_pa_addon FOREIGN KEY (addon_id) REFERENCES addons(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS gallery_items (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL DEFAULT '',
		image_url VARCHAR(1024) NOT NULL,
		public_id VARCHAR(255) NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS discount_codes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		code VARCHAR(64) NOT NULL,
		percent INT NOT NULL,
		active TINYINT(1) NOT NULL DEFAULT 1,
		expires_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_discount_codes_code (code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS stages (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		client_id CHAR(4) NOT NULL,
		name VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		position INT NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY ix_stages_client (client_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS messages (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		client_id CHAR(4) NOT NULL,
		sender VARCHAR(10) NOT NULL,
		content TEXT NOT NULL,
		is_read TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY ix_messages_client (client_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS guests (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		client_id CHAR(4) NOT NULL,
		name VARCHAR(255) NOT NULL,
		attending TINYINT(1) NOT NULL DEFAULT 1,
		companions INT NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY ix_guests_client (client_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// seedAdmin inserts the default back-office account when the admins table is
// empty.
func seedAdmin(ctx context.Context, db *sql.DB, email, password string, cost int) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO admins (email, password_hash) VALUES (?,?)", email, hash)
	return err
}

// seedPackages fills the offer catalog with the three standard packages on a
// fresh database.
func seedPackages(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM packages").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	defaults := []struct {
		name, desc string
		price      float64
	}{
		{"Pakiet Srebrny", "Film z ceremonii i wesela, do 8 godzin pracy", 3500},
		{"Pakiet Złoty", "Pełna relacja dnia ślubu z teledyskiem", 5500},
		{"Pakiet Platynowy", "Dwóch operatorów, dron, teledysk i film dokumentalny", 8500},
	}
	for _, p := range defaults {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO packages (name, description, price) VALUES (?,?,?)",
			p.name, p.desc, p.price); err != nil {
			return err
		}
	}
	return nil
}

// seedTestBooking inserts the well-known test booking (client 9999) used by
// local development and the portal smoke tests. Skipped in production.
func seedTestBooking(ctx context.Context, db *sql.DB, cost int) error {
	var n int
	if err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE client_id = '9999'").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := utils.HashPassword("password123", cost)
	if err != nil {
		return err
	}
	items, _ := json.Marshal([]string{"dron", "teledysk"})
	_, err = db.ExecContext(ctx, `INSERT INTO bookings
		(client_id, password_hash, access_key, package_name, total_price, selected_items,
		 bride_name, groom_name, email, phone_number)
		VALUES ('9999', ?, 'TEST00', 'Pakiet Złoty', 5500, ?, 'Anna', 'Jan', 'test@kadrfilm.pl', '500100200')`,
		hash, string(items))
	return err
}
