package model

import "time"

// Purchase records the sale of a device to a customer. PurchasePrice is a
// snapshot of the device price at sale time, not a live reference.
type Purchase struct {
	ID             int64     `json:"id"`
	DeviceIMEI     string    `json:"device_imei"`
	CustomerName   string    `json:"customer_name"`
	CustomerPhone  string    `json:"customer_phone,omitempty"`
	PurchasePrice  float64   `json:"purchase_price"`
	PurchaseDate   time.Time `json:"purchase_date"`
	ShopID         int64     `json:"shop_id"`
	PaymentMethod  string    `json:"payment_method,omitempty"`
	WarrantyPeriod int       `json:"warranty_period"`
	Notes          string    `json:"notes,omitempty"`
}

// Return records a customer return of a sold device. RefundAmount snapshots
// the original sale price.
type Return struct {
	ID           int64     `json:"id"`
	PurchaseID   int64     `json:"purchase_id"`
	ReturnDate   time.Time `json:"return_date"`
	Reason       string    `json:"reason"`
	Condition    string    `json:"condition"`
	RefundAmount float64   `json:"refund_amount"`
	Status       string    `json:"status"`
	ProcessedBy  string    `json:"processed_by"`
	Notes        string    `json:"notes,omitempty"`
}

// Return statuses.
const (
	ReturnPending   = "pending"
	ReturnApproved  = "approved"
	ReturnRejected  = "rejected"
	ReturnCompleted = "completed"
)
