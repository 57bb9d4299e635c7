package store

import (
	"context"
	"errors"
	"testing"

	"phonestock/internal/db"
	"phonestock/internal/model"
)

func TestTransferDevice(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop1 := seedShop(t, database, "Main")
	shop2 := seedShop(t, database, "Branch")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop1)

	transfer, err := TransferDevice(ctx, database, "111111111111111", shop1, shop2, 1, "window display")
	if err != nil {
		t.Fatalf("TransferDevice: %v", err)
	}
	if transfer.Status != model.TransferCompleted {
		t.Errorf("expected status 'completed', got %q", transfer.Status)
	}
	if transfer.FromShopName != "Main" || transfer.ToShopName != "Branch" {
		t.Errorf("unexpected shop names: %q -> %q", transfer.FromShopName, transfer.ToShopName)
	}

	device, _ := GetDevice(ctx, database, "111111111111111")
	if device.ShopID != shop2 {
		t.Errorf("expected device in shop %d, got %d", shop2, device.ShopID)
	}
	// A transfer relocates, it never changes the commercial status.
	if device.Status != model.StatusInStock {
		t.Errorf("expected status 'in_stock', got %q", device.Status)
	}
}

func TestTransferWrongSourceShop(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop1 := seedShop(t, database, "Main")
	shop2 := seedShop(t, database, "Branch")
	shop3 := seedShop(t, database, "Outlet")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop1)

	_, err := TransferDevice(ctx, database, "111111111111111", shop2, shop3, 1, "")
	if !errors.Is(err, ErrTransfer) {
		t.Errorf("expected ErrTransfer, got %v", err)
	}

	// The failed transfer must neither move the device nor leave a record.
	device, _ := GetDevice(ctx, database, "111111111111111")
	if device.ShopID != shop1 {
		t.Errorf("expected device to stay in shop %d, got %d", shop1, device.ShopID)
	}
	transfers, _ := ListTransfers(ctx, database, "111111111111111", 0)
	if len(transfers) != 0 {
		t.Errorf("expected no transfer records, got %d", len(transfers))
	}
}

func TestTransferSameShop(t *testing.T) {
	database := db.NewTestDB(t)

	shop := seedShop(t, database, "Main")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop)

	_, err := TransferDevice(context.Background(), database, "111111111111111", shop, shop, 1, "")
	if !errors.Is(err, ErrTransfer) {
		t.Errorf("expected ErrTransfer for same-shop transfer, got %v", err)
	}
}

func TestListTransfersByShop(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop1 := seedShop(t, database, "Main")
	shop2 := seedShop(t, database, "Branch")
	shop3 := seedShop(t, database, "Outlet")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop1)
	seedDevice(t, database, "222222222222222", "Apple iPhone 14", 999, shop2)

	TransferDevice(ctx, database, "111111111111111", shop1, shop2, 1, "")
	TransferDevice(ctx, database, "222222222222222", shop2, shop3, 1, "")

	// Shop 2 appears on either side of both transfers.
	transfers, err := ListTransfers(ctx, database, "", shop2)
	if err != nil {
		t.Fatalf("ListTransfers: %v", err)
	}
	if len(transfers) != 2 {
		t.Errorf("expected 2 transfers involving shop 2, got %d", len(transfers))
	}

	transfers, _ = ListTransfers(ctx, database, "111111111111111", 0)
	if len(transfers) != 1 {
		t.Errorf("expected 1 transfer for the device, got %d", len(transfers))
	}
}
