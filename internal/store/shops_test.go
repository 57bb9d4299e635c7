package store

import (
	"context"
	"testing"

	"phonestock/internal/db"
)

func TestCreateAndGetShop(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop, err := CreateShop(ctx, database, "Main", "Ljubljana")
	if err != nil {
		t.Fatalf("CreateShop: %v", err)
	}
	if shop.Name != "Main" || shop.Location != "Ljubljana" {
		t.Errorf("unexpected shop: %+v", shop)
	}
	if !shop.IsActive {
		t.Error("expected new shop to be active")
	}

	got, err := GetShop(ctx, database, 12345)
	if err != nil {
		t.Fatalf("GetShop: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown shop, got %+v", got)
	}
}

func TestListShopsActiveOnly(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateShop(ctx, database, "Main", "")
	closed, _ := CreateShop(ctx, database, "Closed", "")
	database.Exec(`UPDATE shops SET is_active = 0 WHERE id = ?`, closed.ID)

	all, _ := ListShops(ctx, database, false)
	if len(all) != 2 {
		t.Errorf("expected 2 shops, got %d", len(all))
	}

	active, _ := ListShops(ctx, database, true)
	if len(active) != 1 || active[0].Name != "Main" {
		t.Errorf("expected only the active shop, got %v", active)
	}
}
