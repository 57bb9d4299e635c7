package model

// DeviceRow is one raw row from the import workbook, untyped field values as
// read from the sheet. Conversion and validation happen at sync time so a
// bad row can be reported (or skipped) with its position.
type DeviceRow struct {
	IMEI         string
	SerialNumber string
	Model        string
	RAM          string
	Storage      string
	Network      string
	Color        string
	Price        string
	Condition    string
	Status       string
	ShopID       string
}
