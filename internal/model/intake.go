package model

import "time"

// UsedDevicePurchase records the intake of a used device bought from a
// seller. PurchasePrice is what the shop paid; the materialized device is
// priced with the resale markup applied.
type UsedDevicePurchase struct {
	ID            int64     `json:"id"`
	DeviceIMEI    string    `json:"device_imei"`
	SellerName    string    `json:"seller_name"`
	SellerPhone   string    `json:"seller_phone,omitempty"`
	PurchasePrice float64   `json:"purchase_price"`
	PurchaseDate  time.Time `json:"purchase_date"`
	Condition     string    `json:"condition"`
	Verified      bool      `json:"verified"`
	ShopID        int64     `json:"shop_id"`
	ProcessedBy   string    `json:"processed_by"`
	Notes         string    `json:"notes,omitempty"`
}

// SellerInfo identifies the person a used device was bought from.
type SellerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
