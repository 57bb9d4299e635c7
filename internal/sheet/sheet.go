// Package sheet reads and writes the Excel workbook that is the system of
// record for catalog attributes. Column lookups are by exact, case-sensitive
// header name so workbooks stay compatible with the original tooling.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"phonestock/internal/model"
)

// Workbook column headers.
const (
	ColIMEI         = "IMEI"
	ColSerialNumber = "Serial_Number"
	ColModel        = "Model"
	ColRAM          = "RAM"
	ColStorage      = "Storage"
	ColNetwork      = "Network"
	ColColor        = "Color"
	ColPrice        = "Price"
	ColCondition    = "Condition"
	ColStatus       = "Status"
	ColShopID       = "Shop_ID"
)

// ReadDevices reads device rows from the first sheet of the workbook. The
// first row must be a header containing at least IMEI, Model and Price.
// Field conversion is deferred to the sync engine; this only maps columns.
func ReadDevices(path string) ([]model.DeviceRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook has no header row")
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, required := range []string{ColIMEI, ColModel, ColPrice} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("workbook missing required column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var out []model.DeviceRow
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		out = append(out, model.DeviceRow{
			IMEI:         cell(row, ColIMEI),
			SerialNumber: cell(row, ColSerialNumber),
			Model:        cell(row, ColModel),
			RAM:          cell(row, ColRAM),
			Storage:      cell(row, ColStorage),
			Network:      cell(row, ColNetwork),
			Color:        cell(row, ColColor),
			Price:        cell(row, ColPrice),
			Condition:    cell(row, ColCondition),
			Status:       cell(row, ColStatus),
			ShopID:       cell(row, ColShopID),
		})
	}
	return out, nil
}
