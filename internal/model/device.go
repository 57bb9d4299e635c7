package model

import "time"

// Device represents a single phone tracked by IMEI.
type Device struct {
	IMEI         string     `json:"imei"`
	SerialNumber string     `json:"serial_number,omitempty"`
	Model        string     `json:"model"`
	RAM          string     `json:"ram,omitempty"`
	Storage      string     `json:"storage,omitempty"`
	Network      string     `json:"network,omitempty"`
	Color        string     `json:"color,omitempty"`
	Price        float64    `json:"price"`
	Condition    string     `json:"condition"`
	Status       string     `json:"status"`
	ShopID       int64      `json:"shop_id"`
	PhotoMime    string     `json:"photo_mime,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	WarrantyEnd  *time.Time `json:"warranty_end,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Device statuses. A transfer changes only the shop, never the status.
const (
	StatusInStock  = "in_stock"
	StatusSold     = "sold"
	StatusReturned = "returned"
)

// Device conditions.
const (
	ConditionNew         = "new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"
)
