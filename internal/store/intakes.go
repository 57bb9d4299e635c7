package store

import (
	"context"
	"database/sql"
	"fmt"

	"phonestock/internal/model"
)

// IntakeUsedDevice records buying a used device from a seller. It
// materializes a new device priced with the fixed resale markup and the
// intake record at the unmarked-up purchase price, as one transaction.
// The IMEI is assumed new; a duplicate fails on the primary key.
func IntakeUsedDevice(ctx context.Context, db *sql.DB, imei, serialNumber, deviceModel string, seller model.SellerInfo, condition string, price float64, shopID int64, processedBy, notes string) (*model.Device, *model.UsedDevicePurchase, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := timeNow()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO devices (imei, serial_number, model, price, condition,
		        status, shop_id, purchase_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		imei, serialNumber, deviceModel, price*UsedMarkup, model.ConditionUsed,
		model.StatusInStock, shopID, now,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating device: %w", err)
	}

	insert, err := tx.ExecContext(ctx,
		`INSERT INTO used_purchases (device_imei, seller_name, seller_phone,
		        purchase_price, purchase_date, condition, verified, shop_id,
		        processed_by, notes)
		 VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?, ?)`,
		imei, seller.Name, seller.Phone, price, now, condition, shopID,
		processedBy, notes,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("recording intake: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("committing intake: %w", err)
	}

	device, err := GetDevice(ctx, db, imei)
	if err != nil {
		return nil, nil, err
	}

	intakeID, _ := insert.LastInsertId()
	intake, err := GetIntake(ctx, db, intakeID)
	if err != nil {
		return nil, nil, err
	}

	return device, intake, nil
}

// GetIntake returns an intake record by ID, or ErrNotFound.
func GetIntake(ctx context.Context, db *sql.DB, id int64) (*model.UsedDevicePurchase, error) {
	u := &model.UsedDevicePurchase{}
	var phone, notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, device_imei, seller_name, seller_phone, purchase_price,
		        purchase_date, condition, verified, shop_id, processed_by, notes
		 FROM used_purchases WHERE id = ?`, id,
	).Scan(&u.ID, &u.DeviceIMEI, &u.SellerName, &phone, &u.PurchasePrice,
		&u.PurchaseDate, &u.Condition, &u.Verified, &u.ShopID, &u.ProcessedBy,
		&notes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("intake %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting intake: %w", err)
	}
	u.SellerPhone = phone.String
	u.Notes = notes.String
	return u, nil
}

// ListIntakesByIMEI returns the intake records for a device.
func ListIntakesByIMEI(ctx context.Context, db *sql.DB, imei string) ([]model.UsedDevicePurchase, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, device_imei, seller_name, seller_phone, purchase_price,
		        purchase_date, condition, verified, shop_id, processed_by, notes
		 FROM used_purchases WHERE device_imei = ? ORDER BY purchase_date`, imei,
	)
	if err != nil {
		return nil, fmt.Errorf("listing intakes: %w", err)
	}
	defer rows.Close()

	var intakes []model.UsedDevicePurchase
	for rows.Next() {
		var u model.UsedDevicePurchase
		var phone, notes sql.NullString
		if err := rows.Scan(&u.ID, &u.DeviceIMEI, &u.SellerName, &phone,
			&u.PurchasePrice, &u.PurchaseDate, &u.Condition, &u.Verified,
			&u.ShopID, &u.ProcessedBy, &notes); err != nil {
			return nil, fmt.Errorf("scanning intake: %w", err)
		}
		u.SellerPhone = phone.String
		u.Notes = notes.String
		intakes = append(intakes, u)
	}
	return intakes, rows.Err()
}
