// internal/domain/wave/importer.go
package wave

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

// Import column names. Inbound forms describe goods being received, so
// they must carry weight and description; outbound forms only say what
// leaves and how much.
const (
	ColumnPartNumber  = "part_number"
	ColumnWeightGrams = "weight_grams"
	ColumnQuantity    = "quantity"
	ColumnDescription = "description"
)

// LineInput is one aggregated line parsed from an uploaded form,
// ready to be resolved against the item catalog.
type LineInput struct {
	PartNumber  string
	Description string
	WeightGrams int
	Quantity    int
}

// RequiredColumns returns the header names an import form must carry
// for the given wave kind.
func RequiredColumns(kind Kind) []string {
	if kind == KindOutbound {
		return []string{ColumnPartNumber, ColumnQuantity}
	}
	return []string{ColumnPartNumber, ColumnWeightGrams, ColumnQuantity, ColumnDescription}
}

// ParseLineItems parses an uploaded CSV or XLSX form into aggregated
// line inputs. Rows sharing a part number are summed into one line.
// A missing required column fails the whole import with the list of
// missing names; nothing is partially parsed.
func ParseLineItems(file io.Reader, filename string, kind Kind) ([]LineInput, error) {
	headers, rows, err := parseTable(file, filename)
	if err != nil {
		return nil, err
	}

	if missing := missingColumns(headers, RequiredColumns(kind)); len(missing) > 0 {
		return nil, apperr.Validationf("missing columns: %s", strings.Join(missing, ", "))
	}

	var order []string
	byPart := make(map[string]*LineInput)

	for _, row := range rows {
		partNumber := strings.ToUpper(normalizeCell(row[ColumnPartNumber]))
		if partNumber == "" {
			// Spreadsheets routinely carry trailing blank rows.
			if rowIsEmpty(row) {
				continue
			}
			return nil, apperr.Validationf("row %s: part number is empty", row["_row"])
		}

		quantity, err := parseQuantity(row)
		if err != nil {
			return nil, err
		}

		if existing, ok := byPart[partNumber]; ok {
			existing.Quantity += quantity
			// First non-empty weight and description win across
			// duplicate rows.
			if existing.Description == "" {
				existing.Description = normalizeCell(row[ColumnDescription])
			}
			if kind == KindInbound && existing.WeightGrams == 0 {
				weight, err := parseWeight(row)
				if err != nil {
					return nil, err
				}
				existing.WeightGrams = weight
			}
			continue
		}

		line := &LineInput{
			PartNumber:  partNumber,
			Description: normalizeCell(row[ColumnDescription]),
			Quantity:    quantity,
		}
		if kind == KindInbound {
			weight, err := parseWeight(row)
			if err != nil {
				return nil, err
			}
			line.WeightGrams = weight
		}
		byPart[partNumber] = line
		order = append(order, partNumber)
	}

	if len(order) == 0 {
		return nil, apperr.Validationf("form contains no line items")
	}

	lines := make([]LineInput, 0, len(order))
	for _, partNumber := range order {
		lines = append(lines, *byPart[partNumber])
	}
	return lines, nil
}

func parseTable(file io.Reader, filename string) ([]string, []map[string]string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return parseCSV(file)
	case strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xls"):
		return parseXLSX(file)
	}
	return nil, nil, apperr.Validationf("unsupported file format: %s", filename)
}

func parseCSV(file io.Reader) ([]string, []map[string]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, apperr.Validationf("failed to read CSV header: %v", err)
	}
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}

	var rows []map[string]string
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperr.Validationf("error reading line %d: %v", lineNum+1, err)
		}

		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = value
			}
		}
		row["_row"] = strconv.Itoa(lineNum + 1)
		rows = append(rows, row)
		lineNum++
	}
	return headers, rows, nil
}

func parseXLSX(file io.Reader) ([]string, []map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, apperr.Validationf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apperr.Validationf("no sheets found in Excel file")
	}

	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 1 {
		return nil, nil, apperr.Validationf("file must have a header row")
	}

	headers := excelRows[0]
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}

	var rows []map[string]string
	for rowIdx, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = value
			}
		}
		row["_row"] = strconv.Itoa(rowIdx + 2)
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func missingColumns(headers, required []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// normalizeCell trims a cell and maps pandas-style null tokens, which
// exported spreadsheets carry verbatim, to the empty string.
func normalizeCell(value string) string {
	trimmed := strings.TrimSpace(value)
	switch trimmed {
	case "nan", "NaN", "None", "<NA>":
		return ""
	}
	return trimmed
}

func rowIsEmpty(row map[string]string) bool {
	for key, value := range row {
		if key == "_row" {
			continue
		}
		if normalizeCell(value) != "" {
			return false
		}
	}
	return true
}

func parseQuantity(row map[string]string) (int, error) {
	raw := normalizeCell(row[ColumnQuantity])
	if raw == "" {
		return 0, apperr.Validationf("row %s: quantity is empty", row["_row"])
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil || quantity <= 0 {
		return 0, apperr.Validationf("row %s: invalid quantity '%s'", row["_row"], raw)
	}
	return quantity, nil
}

func parseWeight(row map[string]string) (int, error) {
	raw := normalizeCell(row[ColumnWeightGrams])
	if raw == "" {
		return 0, nil
	}
	weight, err := strconv.Atoi(raw)
	if err != nil || weight < 0 {
		return 0, apperr.Validationf("row %s: invalid weight '%s'", row["_row"], raw)
	}
	return weight, nil
}
