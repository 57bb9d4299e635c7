package model

import "time"

// Transfer records a device relocation between shops. Rows are append-only;
// a completed transfer is never mutated.
type Transfer struct {
	ID            int64      `json:"id"`
	DeviceIMEI    string     `json:"device_imei"`
	FromShopID    int64      `json:"from_shop_id"`
	ToShopID      int64      `json:"to_shop_id"`
	Status        string     `json:"status"`
	InitiatedBy   int64      `json:"initiated_by"`
	TransferDate  time.Time  `json:"transfer_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`

	// Joined fields (not always populated).
	DeviceModel  string `json:"device_model,omitempty"`
	FromShopName string `json:"from_shop_name,omitempty"`
	ToShopName   string `json:"to_shop_name,omitempty"`
}

// Transfer statuses. Transfers are synchronous, so rows are created
// completed; the constant exists for the record format.
const TransferCompleted = "completed"
