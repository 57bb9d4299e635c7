package store

import (
	"context"
	"database/sql"
	"fmt"

	"phonestock/internal/model"
	"phonestock/internal/validate"
)

const deviceColumns = `imei, serial_number, model, ram, storage, network, color,
       price, condition, status, shop_id, photo_mime, purchase_date, warranty_end,
       created_at, updated_at`

// GetDevice returns a device by IMEI, or ErrNotFound.
func GetDevice(ctx context.Context, db *sql.DB, imei string) (*model.Device, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE imei = ?`, imei)
	d, err := scanDevice(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("device %s: %w", imei, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting device: %w", err)
	}
	return d, nil
}

// SearchDevices performs a case-insensitive substring search over the
// textual fields of the catalog, with optional exact filters on shop and
// condition. Results come back in insertion order. The query must be at
// least two characters after trimming; control characters are stripped.
func SearchDevices(ctx context.Context, db *sql.DB, query string, shopID int64, condition string) ([]model.Device, error) {
	query, err := validate.Query(query)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + deviceColumns + ` FROM devices
	      WHERE instr(lower(model || ' ' || ifnull(serial_number, '') || ' ' ||
	            ifnull(ram, '') || ' ' || ifnull(storage, '') || ' ' ||
	            ifnull(network, '') || ' ' || ifnull(color, '') || ' ' ||
	            condition || ' ' || imei), lower(?)) > 0`
	args := []any{query}

	if shopID > 0 {
		q += ` AND shop_id = ?`
		args = append(args, shopID)
	}
	if condition != "" {
		q += ` AND condition = ?`
		args = append(args, condition)
	}
	q += ` ORDER BY rowid`

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching devices: %w", err)
	}
	defer rows.Close()

	return scanDevices(rows)
}

// ListDevices returns all devices, optionally filtered by shop.
func ListDevices(ctx context.Context, db *sql.DB, shopID int64) ([]model.Device, error) {
	q := `SELECT ` + deviceColumns + ` FROM devices`
	var args []any
	if shopID > 0 {
		q += ` WHERE shop_id = ?`
		args = append(args, shopID)
	}
	q += ` ORDER BY rowid`

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	defer rows.Close()

	return scanDevices(rows)
}

// SetDevicePhoto stores a processed photo for a device.
func SetDevicePhoto(ctx context.Context, db *sql.DB, imei string, photo []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE devices SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE imei = ?`,
		photo, mime, imei,
	)
	if err != nil {
		return fmt.Errorf("setting device photo: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("device %s: %w", imei, ErrNotFound)
	}
	return nil
}

// GetDevicePhoto returns a device's photo data and MIME type. Both are
// empty when no photo has been uploaded.
func GetDevicePhoto(ctx context.Context, db *sql.DB, imei string) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM devices WHERE imei = ?`, imei,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("device %s: %w", imei, ErrNotFound)
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting device photo: %w", err)
	}
	return photo, mime.String, nil
}

// History bundles a device with every event record that references it.
type History struct {
	Device    *model.Device              `json:"device"`
	Purchases []model.Purchase           `json:"purchases"`
	Returns   []model.Return             `json:"returns"`
	Intakes   []model.UsedDevicePurchase `json:"intakes"`
	Transfers []model.Transfer           `json:"transfers"`
}

// GetDeviceHistory returns the complete event history of a device.
func GetDeviceHistory(ctx context.Context, db *sql.DB, imei string) (*History, error) {
	device, err := GetDevice(ctx, db, imei)
	if err != nil {
		return nil, err
	}

	purchases, err := ListPurchasesByIMEI(ctx, db, imei)
	if err != nil {
		return nil, err
	}

	var returns []model.Return
	for _, p := range purchases {
		rets, err := ListReturnsByPurchase(ctx, db, p.ID)
		if err != nil {
			return nil, err
		}
		returns = append(returns, rets...)
	}

	intakes, err := ListIntakesByIMEI(ctx, db, imei)
	if err != nil {
		return nil, err
	}

	transfers, err := ListTransfers(ctx, db, imei, 0)
	if err != nil {
		return nil, err
	}

	return &History{
		Device:    device,
		Purchases: purchases,
		Returns:   returns,
		Intakes:   intakes,
		Transfers: transfers,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevice(r rowScanner) (*model.Device, error) {
	d := &model.Device{}
	var serial, ram, storage, network, color, photoMime sql.NullString
	err := r.Scan(&d.IMEI, &serial, &d.Model, &ram, &storage, &network, &color,
		&d.Price, &d.Condition, &d.Status, &d.ShopID, &photoMime,
		&d.PurchaseDate, &d.WarrantyEnd, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.SerialNumber = serial.String
	d.RAM = ram.String
	d.Storage = storage.String
	d.Network = network.String
	d.Color = color.String
	d.PhotoMime = photoMime.String
	return d, nil
}

func scanDevices(rows *sql.Rows) ([]model.Device, error) {
	var devices []model.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, *d)
	}
	return devices, rows.Err()
}
