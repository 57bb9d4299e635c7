package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Devices are keyed by IMEI (the
// immutable natural key); every satellite table references them. Nothing is
// physically deleted in normal operation.
const schema = `
CREATE TABLE IF NOT EXISTS shops (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    location   TEXT,
    is_active  INTEGER NOT NULL DEFAULT 1,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS devices (
    imei          TEXT PRIMARY KEY,
    serial_number TEXT,
    model         TEXT NOT NULL,
    ram           TEXT,
    storage       TEXT,
    network       TEXT,
    color         TEXT,
    price         REAL NOT NULL CHECK (price >= 0),
    condition     TEXT NOT NULL DEFAULT 'new' CHECK (condition IN ('new', 'used', 'refurbished')),
    status        TEXT NOT NULL DEFAULT 'in_stock' CHECK (status IN ('in_stock', 'sold', 'returned')),
    shop_id       INTEGER NOT NULL REFERENCES shops(id),
    photo         BLOB,
    photo_mime    TEXT,
    purchase_date DATETIME,
    warranty_end  DATETIME,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS products (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    price      REAL NOT NULL CHECK (price >= 0),
    stock      INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS purchases (
    id              INTEGER PRIMARY KEY,
    device_imei     TEXT NOT NULL REFERENCES devices(imei),
    customer_name   TEXT NOT NULL,
    customer_phone  TEXT,
    purchase_price  REAL NOT NULL,
    purchase_date   DATETIME NOT NULL,
    shop_id         INTEGER NOT NULL REFERENCES shops(id),
    payment_method  TEXT,
    warranty_period INTEGER NOT NULL,
    notes           TEXT
);

CREATE TABLE IF NOT EXISTS returns (
    id            INTEGER PRIMARY KEY,
    purchase_id   INTEGER NOT NULL REFERENCES purchases(id),
    return_date   DATETIME NOT NULL,
    reason        TEXT NOT NULL,
    condition     TEXT NOT NULL,
    refund_amount REAL NOT NULL,
    status        TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected', 'completed')),
    processed_by  TEXT NOT NULL,
    notes         TEXT
);

CREATE TABLE IF NOT EXISTS used_purchases (
    id             INTEGER PRIMARY KEY,
    device_imei    TEXT NOT NULL REFERENCES devices(imei),
    seller_name    TEXT NOT NULL,
    seller_phone   TEXT,
    purchase_price REAL NOT NULL,
    purchase_date  DATETIME NOT NULL,
    condition      TEXT NOT NULL,
    verified       INTEGER NOT NULL DEFAULT 1,
    shop_id        INTEGER NOT NULL REFERENCES shops(id),
    processed_by   TEXT NOT NULL,
    notes          TEXT
);

CREATE TABLE IF NOT EXISTS transfers (
    id             INTEGER PRIMARY KEY,
    device_imei    TEXT NOT NULL REFERENCES devices(imei),
    from_shop_id   INTEGER NOT NULL REFERENCES shops(id),
    to_shop_id     INTEGER NOT NULL REFERENCES shops(id),
    status         TEXT NOT NULL DEFAULT 'completed',
    initiated_by   INTEGER NOT NULL,
    transfer_date  DATETIME NOT NULL,
    completed_date DATETIME,
    notes          TEXT
);

CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'manager', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE INDEX IF NOT EXISTS idx_devices_shop ON devices(shop_id);
CREATE INDEX IF NOT EXISTS idx_purchases_imei ON purchases(device_imei);
CREATE INDEX IF NOT EXISTS idx_transfers_imei ON transfers(device_imei);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
