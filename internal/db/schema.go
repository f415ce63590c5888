package db

import "database/sql"

// EnsureSchema creates missing tables. Statements are idempotent so the
// server can boot against an empty database.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'user',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS stations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	city VARCHAR(100) NOT NULL,
	address VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	origin_station_id BIGINT NOT NULL,
	destination_station_id BIGINT NOT NULL,
	distance_km INT NOT NULL,
	UNIQUE KEY uniq_route (origin_station_id, destination_station_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS trains (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	number VARCHAR(20) NOT NULL,
	train_type VARCHAR(20) NOT NULL DEFAULT 'passenger',
	UNIQUE KEY uniq_number (number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS wagon_types (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(50) NOT NULL,
	fare_multiplier DECIMAL(3,2) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS amenities (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	description TEXT
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS wagons (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	train_id BIGINT NOT NULL,
	number INT NOT NULL,
	wagon_type_id BIGINT NOT NULL,
	seats INT NOT NULL,
	UNIQUE KEY uniq_train_wagon (train_id, number),
	KEY idx_train (train_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS wagon_amenities (
	wagon_id BIGINT NOT NULL,
	amenity_id BIGINT NOT NULL,
	PRIMARY KEY (wagon_id, amenity_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS passenger_types (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	code VARCHAR(20) NOT NULL,
	name VARCHAR(50) NOT NULL,
	discount_percent INT NOT NULL DEFAULT 0,
	requires_document TINYINT(1) NOT NULL DEFAULT 1,
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	UNIQUE KEY uniq_code (code)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS trips (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	train_id BIGINT NOT NULL,
	departure_at DATETIME NOT NULL,
	arrival_at DATETIME NOT NULL,
	base_price BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_train_departure (train_id, departure_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reference VARCHAR(36) NOT NULL,
	user_id BIGINT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_reference (reference),
	KEY idx_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS tickets (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	trip_id BIGINT NOT NULL,
	wagon_id BIGINT NOT NULL,
	seat_number INT NOT NULL,
	passenger_type_id BIGINT NOT NULL,
	passenger_name VARCHAR(100) NOT NULL DEFAULT '',
	passenger_document VARCHAR(50) NOT NULL DEFAULT '',
	price BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_trip_seat (trip_id, wagon_id, seat_number),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return backfillColumns(db)
}

// backfillColumns upgrades databases created before the passenger document
// fields existed. CREATE TABLE IF NOT EXISTS leaves such tables untouched,
// so missing columns are added here.
func backfillColumns(db *sql.DB) error {
	if HasTable(db, "tickets") && !HasColumn(db, "tickets", "passenger_document") {
		if _, err := db.Exec(`ALTER TABLE tickets ADD COLUMN passenger_document VARCHAR(50) NOT NULL DEFAULT '' AFTER passenger_name`); err != nil {
			return err
		}
	}
	if HasTable(db, "passenger_types") && !HasColumn(db, "passenger_types", "is_active") {
		if _, err := db.Exec(`ALTER TABLE passenger_types ADD COLUMN is_active TINYINT(1) NOT NULL DEFAULT 1`); err != nil {
			return err
		}
	}
	return nil
}
