package store

import (
	"context"
	"database/sql"
	"fmt"

	"phonestock/internal/model"
)

// RecordSale sells an in-stock device to a customer. The device must exist
// (ErrNotFound) and be in stock (ErrInvalidState). The status change, the
// warranty stamp and the purchase record commit as one transaction, and the
// status update is guarded so two concurrent sales of the same IMEI cannot
// both succeed.
func RecordSale(ctx context.Context, db *sql.DB, imei, customerName, customerPhone string, shopID int64, paymentMethod, notes string) (*model.Purchase, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var price float64
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT price, status FROM devices WHERE imei = ?`, imei,
	).Scan(&price, &status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("device %s: %w", imei, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("checking device: %w", err)
	}
	if status != model.StatusInStock {
		return nil, fmt.Errorf("device %s has status %s: %w", imei, status, ErrInvalidState)
	}

	saleDate := timeNow()
	warrantyEnd := saleDate.AddDate(0, 0, WarrantyDays)

	// Guarded update: only the transaction that still observes in_stock
	// gets to flip the status.
	result, err := tx.ExecContext(ctx,
		`UPDATE devices SET status = ?, purchase_date = ?, warranty_end = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE imei = ? AND status = ?`,
		model.StatusSold, saleDate, warrantyEnd, imei, model.StatusInStock,
	)
	if err != nil {
		return nil, fmt.Errorf("updating device status: %w", err)
	}
	if n, _ := result.RowsAffected(); n != 1 {
		return nil, fmt.Errorf("device %s no longer in stock: %w", imei, ErrInvalidState)
	}

	// The purchase snapshots the device price at sale time.
	insert, err := tx.ExecContext(ctx,
		`INSERT INTO purchases (device_imei, customer_name, customer_phone,
		        purchase_price, purchase_date, shop_id, payment_method,
		        warranty_period, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		imei, customerName, customerPhone, price, saleDate, shopID,
		paymentMethod, WarrantyDays, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("recording purchase: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing sale: %w", err)
	}

	purchaseID, _ := insert.LastInsertId()
	return GetPurchase(ctx, db, purchaseID)
}

// GetPurchase returns a purchase by ID, or ErrNotFound.
func GetPurchase(ctx context.Context, db *sql.DB, id int64) (*model.Purchase, error) {
	p := &model.Purchase{}
	var phone, payment, notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, device_imei, customer_name, customer_phone, purchase_price,
		        purchase_date, shop_id, payment_method, warranty_period, notes
		 FROM purchases WHERE id = ?`, id,
	).Scan(&p.ID, &p.DeviceIMEI, &p.CustomerName, &phone, &p.PurchasePrice,
		&p.PurchaseDate, &p.ShopID, &payment, &p.WarrantyPeriod, &notes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("purchase %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting purchase: %w", err)
	}
	p.CustomerPhone = phone.String
	p.PaymentMethod = payment.String
	p.Notes = notes.String
	return p, nil
}

// ListPurchasesByIMEI returns all purchases of a device, oldest first.
func ListPurchasesByIMEI(ctx context.Context, db *sql.DB, imei string) ([]model.Purchase, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, device_imei, customer_name, customer_phone, purchase_price,
		        purchase_date, shop_id, payment_method, warranty_period, notes
		 FROM purchases WHERE device_imei = ? ORDER BY purchase_date`, imei,
	)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		var p model.Purchase
		var phone, payment, notes sql.NullString
		if err := rows.Scan(&p.ID, &p.DeviceIMEI, &p.CustomerName, &phone,
			&p.PurchasePrice, &p.PurchaseDate, &p.ShopID, &payment,
			&p.WarrantyPeriod, &notes); err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}
		p.CustomerPhone = phone.String
		p.PaymentMethod = payment.String
		p.Notes = notes.String
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}
