package sheet

import (
	"fmt"
	"math/rand"

	"github.com/xuri/excelize/v2"
)

// Demo catalog pools for generated workbooks.
var (
	sampleModels = []string{
		"Samsung Galaxy S23", "Samsung Galaxy A54", "iPhone 14", "iPhone 13",
		"Xiaomi Redmi Note 12", "Google Pixel 7", "OnePlus 11",
	}
	sampleRAM        = []string{"4GB", "6GB", "8GB", "12GB"}
	sampleStorage    = []string{"64GB", "128GB", "256GB", "512GB"}
	sampleNetworks   = []string{"4G", "5G"}
	sampleColors     = []string{"Black", "White", "Blue", "Green"}
	sampleConditions = []string{"new", "used", "refurbished"}
)

// WriteSample generates a demo workbook with n plausible device rows, for
// trying out the importer without real data.
func WriteSample(path string, n int) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)

	header := []any{ColIMEI, ColSerialNumber, ColModel, ColRAM, ColStorage,
		ColNetwork, ColColor, ColPrice, ColCondition, ColStatus, ColShopID}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := 0; i < n; i++ {
		row := []any{
			fmt.Sprintf("35%013d", rand.Int63n(1e13)),
			fmt.Sprintf("SN%08d", rand.Int31n(1e8)),
			sampleModels[rand.Intn(len(sampleModels))],
			sampleRAM[rand.Intn(len(sampleRAM))],
			sampleStorage[rand.Intn(len(sampleStorage))],
			sampleNetworks[rand.Intn(len(sampleNetworks))],
			sampleColors[rand.Intn(len(sampleColors))],
			fmt.Sprintf("%d", 100+rand.Intn(1200)),
			sampleConditions[rand.Intn(len(sampleConditions))],
			"in_stock",
			fmt.Sprintf("%d", 1+rand.Intn(3)),
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
