package generate_excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"hat-costing/internal/storage"
)

const (
	DefaultSheetName   = "원가계산_리스트"
	DefaultColumnWidth = 15.0
)

// Шапка идёт в том же порядке, что и поля ScrapEntry
var scrapHeaders = []string{
	"상품명", "생산수량", "채널", "판매가", "제조원가", "수수료", "부가세", "순이익", "마진율", "저장일시",
}

type GenerateExcelService struct {
	sheetName   string
	columnWidth float64
}

func NewGenerateService(sheetName string, columnWidth float64) *GenerateExcelService {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if columnWidth <= 0 {
		columnWidth = DefaultColumnWidth
	}
	return &GenerateExcelService{sheetName: sheetName, columnWidth: columnWidth}
}

// WriteScraps builds a single-sheet workbook: styled header row, one row per scrap.
// An empty slice yields a header-only file.
func (g *GenerateExcelService) WriteScraps(entries []storage.ScrapEntry) ([]byte, error) {
	const op = "service.generate-excel.WriteScraps"

	f := excelize.NewFile()
	defer f.Close()

	sheet := g.sheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("%s: set sheet name: %w", op, err)
	}

	// --- СТИЛИ ---
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}

	// 1. Шапка
	for i, name := range scrapHeaders {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return nil, fmt.Errorf("%s: header %q: %w", op, name, err)
		}
	}

	lastCol := cellName(len(scrapHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return nil, fmt.Errorf("%s: apply header style: %w", op, err)
	}

	// 2. Данные
	for rowIdx, e := range entries {
		row := []any{
			e.ProductName,
			e.ProduceQty,
			e.Channel,
			e.TargetPrice,
			e.TotalCost,
			e.Fee,
			e.VAT,
			e.Profit,
			e.Margin,
			e.SavedAt,
		}
		if err := f.SetSheetRow(sheet, cellName(1, rowIdx+2), &row); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", op, rowIdx+2, err)
		}
	}

	// 3. Закрепляем шапку и выравниваем ширину
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("%s: freeze header: %w", op, err)
	}

	firstColName, _ := excelize.ColumnNumberToName(1)
	lastColName, _ := excelize.ColumnNumberToName(len(scrapHeaders))
	if err := f.SetColWidth(sheet, firstColName, lastColName, g.columnWidth); err != nil {
		return nil, fmt.Errorf("%s: column width: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write buffer: %w", op, err)
	}

	return buf.Bytes(), nil
}

// Headers returns the column titles in file order.
func Headers() []string {
	out := make([]string, len(scrapHeaders))
	copy(out, scrapHeaders)
	return out
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
