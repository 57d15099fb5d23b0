// internal/domain/wave/form.go
package wave

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildFormTemplate builds the downloadable XLSX form operators fill in
// and upload back at wave creation. The header row carries exactly the
// columns ParseLineItems requires for the kind, plus one sample row.
func BuildFormTemplate(kind Kind) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := fmt.Sprintf("%s-FORM", kind.NumberPrefix())
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	columns := RequiredColumns(kind)
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	sample := map[string]string{
		ColumnPartNumber:  "PN-0001",
		ColumnWeightGrams: "250",
		ColumnQuantity:    "10",
		ColumnDescription: "Sample part",
	}
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheetName, cell, sample[col])
	}

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sheet index: %w", err)
	}
	f.SetActiveSheet(idx)
	return f, nil
}
