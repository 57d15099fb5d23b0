// internal/domain/wave/importer_test.go
package wave

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/your-org/warehouse-backend/internal/pkg/apperr"
)

const inboundCSV = `part_number,weight_grams,quantity,description
ab-100,250,3,Bearing housing
AB-101,120,5,Shaft seal
`

func TestParseLineItemsCSV(t *testing.T) {
	lines, err := ParseLineItems(strings.NewReader(inboundCSV), "form.csv", KindInbound)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "AB-100", lines[0].PartNumber)
	assert.Equal(t, 250, lines[0].WeightGrams)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Bearing housing", lines[0].Description)

	assert.Equal(t, "AB-101", lines[1].PartNumber)
	assert.Equal(t, 5, lines[1].Quantity)
}

func TestParseLineItemsAggregatesDuplicates(t *testing.T) {
	form := `part_number,weight_grams,quantity,description
AB-100,250,3,Bearing housing
AB-200,90,1,Gasket
ab-100,250,4,Bearing housing
`
	lines, err := ParseLineItems(strings.NewReader(form), "form.csv", KindInbound)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// First-seen order is preserved, quantities are summed
	assert.Equal(t, "AB-100", lines[0].PartNumber)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, "AB-200", lines[1].PartNumber)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestParseLineItemsDuplicateBackfillsWeightAndDescription(t *testing.T) {
	form := `part_number,weight_grams,quantity,description
AB-100,nan,3,
AB-100,250,4,Bearing housing
`
	lines, err := ParseLineItems(strings.NewReader(form), "form.csv", KindInbound)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	// The first row with a real weight and description fills the
	// merged line, later values never overwrite it.
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, 250, lines[0].WeightGrams)
	assert.Equal(t, "Bearing housing", lines[0].Description)
}

func TestParseLineItemsMissingColumns(t *testing.T) {
	form := "part_number,quantity\nAB-100,3\n"

	_, err := ParseLineItems(strings.NewReader(form), "form.csv", KindInbound)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "weight_grams")
	assert.Contains(t, err.Error(), "description")

	// The same header satisfies the outbound form
	lines, err := ParseLineItems(strings.NewReader(form), "form.csv", KindOutbound)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "AB-100", lines[0].PartNumber)
}

func TestParseLineItemsNullTokens(t *testing.T) {
	form := `part_number,weight_grams,quantity,description
AB-100,nan,3,None
`
	lines, err := ParseLineItems(strings.NewReader(form), "form.csv", KindInbound)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, 0, lines[0].WeightGrams)
	assert.Equal(t, "", lines[0].Description)
}

func TestParseLineItemsSkipsBlankRows(t *testing.T) {
	form := `part_number,weight_grams,quantity,description
AB-100,250,3,Bearing housing
,,,
`
	lines, err := ParseLineItems(strings.NewReader(form), "form.csv", KindInbound)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestParseLineItemsEmptyPartNumber(t *testing.T) {
	form := `part_number,weight_grams,quantity,description
,250,3,Bearing housing
`
	_, err := ParseLineItems(strings.NewReader(form), "form.csv", KindInbound)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "part number is empty")
}

func TestParseLineItemsInvalidQuantity(t *testing.T) {
	for _, quantity := range []string{"", "0", "-2", "three"} {
		form := "part_number,weight_grams,quantity,description\nAB-100,250," + quantity + ",Bearing\n"
		_, err := ParseLineItems(strings.NewReader(form), "form.csv", KindInbound)
		require.Error(t, err, "quantity %q", quantity)
		assert.True(t, apperr.IsValidation(err))
	}
}

func TestParseLineItemsNoRows(t *testing.T) {
	form := "part_number,weight_grams,quantity,description\n"
	_, err := ParseLineItems(strings.NewReader(form), "form.csv", KindInbound)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no line items")
}

func TestParseLineItemsUnsupportedFormat(t *testing.T) {
	_, err := ParseLineItems(strings.NewReader("whatever"), "form.pdf", KindInbound)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestParseLineItemsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"part_number", "weight_grams", "quantity", "description"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"ab-300", 40, 2, "Clip"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"AB-300", 40, 6, "Clip"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	lines, err := ParseLineItems(&buf, "form.xlsx", KindInbound)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "AB-300", lines[0].PartNumber)
	assert.Equal(t, 8, lines[0].Quantity)
	assert.Equal(t, 40, lines[0].WeightGrams)
}

func TestBuildFormTemplate(t *testing.T) {
	f, err := BuildFormTemplate(KindInbound)
	require.NoError(t, err)
	defer f.Close()

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	// The generated template must round-trip through the importer
	reopened, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.GetRows(reopened.GetSheetList()[0])
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, RequiredColumns(KindInbound), rows[0])
}

func TestRequiredColumns(t *testing.T) {
	assert.Equal(t, []string{"part_number", "weight_grams", "quantity", "description"}, RequiredColumns(KindInbound))
	assert.Equal(t, []string{"part_number", "quantity"}, RequiredColumns(KindOutbound))
}
