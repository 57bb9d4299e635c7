package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"phonestock/internal/db"
	"phonestock/internal/model"
)

func TestRecordSale(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	sold := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	timeNow = func() time.Time { return sold }
	defer func() { timeNow = time.Now }()

	shop := seedShop(t, database, "Main")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799.99, shop)

	purchase, err := RecordSale(ctx, database, "111111111111111", "Marko", "040123456", shop, "card", "")
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if purchase.PurchasePrice != 799.99 {
		t.Errorf("expected price snapshot 799.99, got %v", purchase.PurchasePrice)
	}
	if purchase.WarrantyPeriod != WarrantyDays {
		t.Errorf("expected warranty period %d, got %d", WarrantyDays, purchase.WarrantyPeriod)
	}

	device, err := GetDevice(ctx, database, "111111111111111")
	if err != nil {
		t.Fatalf("GetDevice: %v", err)
	}
	if device.Status != model.StatusSold {
		t.Errorf("expected status 'sold', got %q", device.Status)
	}
	if device.WarrantyEnd == nil {
		t.Fatal("expected warranty end to be set")
	}
	if want := sold.AddDate(0, 0, WarrantyDays); !device.WarrantyEnd.Equal(want) {
		t.Errorf("expected warranty end %v, got %v", want, device.WarrantyEnd)
	}
}

func TestRecordSaleUnknownDevice(t *testing.T) {
	database := db.NewTestDB(t)

	shop := seedShop(t, database, "Main")
	_, err := RecordSale(context.Background(), database, "000000000000000", "Marko", "", shop, "cash", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordSaleAlreadySold(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop := seedShop(t, database, "Main")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop)

	if _, err := RecordSale(ctx, database, "111111111111111", "Marko", "", shop, "cash", ""); err != nil {
		t.Fatalf("first RecordSale: %v", err)
	}

	_, err := RecordSale(ctx, database, "111111111111111", "Nina", "", shop, "cash", "")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState for second sale, got %v", err)
	}

	// The failed sale must leave no purchase record behind.
	purchases, _ := ListPurchasesByIMEI(ctx, database, "111111111111111")
	if len(purchases) != 1 {
		t.Errorf("expected 1 purchase, got %d", len(purchases))
	}
	if purchases[0].CustomerName != "Marko" {
		t.Errorf("expected the first sale to win, got %q", purchases[0].CustomerName)
	}
}

func TestConcurrentSalesSingleWinner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	shop := seedShop(t, database, "Main")
	seedDevice(t, database, "111111111111111", "Apple iPhone 13", 799, shop)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = RecordSale(ctx, database, "111111111111111",
				"Customer", "", shop, "cash", "")
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrInvalidState):
			lost++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("expected exactly 1 winning sale, got %d", won)
	}
	if lost != attempts-1 {
		t.Errorf("expected %d losing sales, got %d", attempts-1, lost)
	}

	purchases, _ := ListPurchasesByIMEI(ctx, database, "111111111111111")
	if len(purchases) != 1 {
		t.Errorf("expected exactly 1 purchase record, got %d", len(purchases))
	}
}
