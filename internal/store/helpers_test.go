package store

import (
	"context"
	"database/sql"
	"testing"
)

func seedShop(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()
	shop, err := CreateShop(context.Background(), database, name, "")
	if err != nil {
		t.Fatalf("creating shop: %v", err)
	}
	return shop.ID
}

func seedDevice(t *testing.T, database *sql.DB, imei, deviceModel string, price float64, shopID int64) {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO devices (imei, model, price, condition, status, shop_id)
		 VALUES (?, ?, ?, 'new', 'in_stock', ?)`,
		imei, deviceModel, price, shopID)
	if err != nil {
		t.Fatalf("seeding device %s: %v", imei, err)
	}
}
