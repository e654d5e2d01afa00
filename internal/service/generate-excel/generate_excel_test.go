package generate_excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hat-costing/internal/storage"
)

func sampleEntries() []storage.ScrapEntry {
	return []storage.ScrapEntry{
		{
			ProductName: "2026 SS 시그니처 볼캡",
			ProduceQty:  100,
			Channel:     "무신사 (30%)",
			TargetPrice: 49000,
			TotalCost:   14800,
			Fee:         14700,
			VAT:         4454,
			Profit:      15045,
			Margin:      "30.7%",
			SavedAt:     "2026-10-19 10:30",
		},
		{
			ProductName: "버킷햇",
			ProduceQty:  50,
			Channel:     "자사몰 (3.5%)",
			TargetPrice: 39000,
			TotalCost:   21000,
			Fee:         1365,
			VAT:         3545,
			Profit:      13090,
			Margin:      "33.6%",
			SavedAt:     "2026-10-19 10:31",
		},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err, "результат должен открываться как xlsx")
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteScraps_RowsInInsertionOrder(t *testing.T) {
	gen := NewGenerateService("", 0)

	data, err := gen.WriteScraps(sampleEntries())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Headers(), rows[0])
	assert.Equal(t, []string{"2026 SS 시그니처 볼캡", "100", "무신사 (30%)", "49000", "14800", "14700", "4454", "15045", "30.7%", "2026-10-19 10:30"}, rows[1])
	assert.Equal(t, "버킷햇", rows[2][0])
	assert.Equal(t, "13090", rows[2][7])
}

func TestWriteScraps_EmptyIsHeaderOnly(t *testing.T) {
	gen := NewGenerateService("", 0)

	data, err := gen.WriteScraps(nil)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Headers(), rows[0])
}

func TestWriteScraps_HeaderStyleAndWidth(t *testing.T) {
	gen := NewGenerateService("리스트", 18)

	data, err := gen.WriteScraps(sampleEntries())
	require.NoError(t, err)

	f := openWorkbook(t, data)

	styleID, err := f.GetCellStyle("리스트", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, "center", style.Alignment.Horizontal)
	require.NotEmpty(t, style.Fill.Color)

	for _, col := range []string{"A", "E", "J"} {
		width, err := f.GetColWidth("리스트", col)
		require.NoError(t, err)
		assert.Equal(t, 18.0, width, "колонка %s", col)
	}
}

func TestHeaders_ReturnsCopy(t *testing.T) {
	h := Headers()
	h[0] = "changed"
	assert.Equal(t, "상품명", Headers()[0])
}
