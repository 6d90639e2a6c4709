package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLen  = 31
	summarySheetName = "Summary"
	usdNumFmt        = "$#,##0.00"
)

// GenerateExcel builds the estimate workbook: a Summary sheet with one
// subtotal row per floor and a grand total, then one sheet per floor.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, styles, data); err != nil {
		return nil, err
	}

	used := map[string]bool{strings.ToLower(summarySheetName): true}
	for _, floor := range data.Floors {
		name := uniqueSheetName(SheetName(floor.Label), used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeFloorSheet(f, styles, name, floor); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type workbookStyles struct {
	header   int
	text     int
	money    int
	totalTxt int
	totalUSD int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	numFmt := usdNumFmt
	var s workbookStyles
	var err error

	// Column header: bold, white text on charcoal.
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#0F0F0F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	s.text, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create text style: %w", err)
	}

	s.money, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Border:       thinBorders(),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return s, fmt.Errorf("create money style: %w", err)
	}

	totalFill := excelize.Fill{Type: "pattern", Color: []string{"#F5F5F5"}, Pattern: 1}
	s.totalTxt, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   totalFill,
		Border: thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create total style: %w", err)
	}

	s.totalUSD, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Size: 11},
		Fill:         totalFill,
		Border:       thinBorders(),
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return s, fmt.Errorf("create total money style: %w", err)
	}
	return s, nil
}

func writeSummarySheet(f *excelize.File, s workbookStyles, data ExportData) error {
	sheet := summarySheetName
	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Floor")
	f.SetCellValue(sheet, "B1", "Subtotal")
	f.SetCellStyle(sheet, "A1", "B1", s.header)

	row := 2
	for _, floor := range data.Floors {
		r := fmt.Sprint(row)
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(floor.DisplayLabel()))
		f.SetCellValue(sheet, "B"+r, floor.Subtotal)
		f.SetCellStyle(sheet, "A"+r, "A"+r, s.text)
		f.SetCellStyle(sheet, "B"+r, "B"+r, s.money)
		row++
	}

	r := fmt.Sprint(row)
	f.SetCellValue(sheet, "A"+r, "Grand Total")
	f.SetCellValue(sheet, "B"+r, data.GrandTotal)
	f.SetCellStyle(sheet, "A"+r, "A"+r, s.totalTxt)
	f.SetCellStyle(sheet, "B"+r, "B"+r, s.totalUSD)
	return nil
}

func writeFloorSheet(f *excelize.File, s workbookStyles, sheet string, floor ExportFloor) error {
	widths := map[string]float64{"A": 25, "B": 8, "C": 14, "D": 16}
	for c, w := range widths {
		if err := f.SetColWidth(sheet, c, c, w); err != nil {
			return fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	for i, h := range []string{"Item", "Qty", "Unit Price", "Line Total"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "D1", s.header)

	row := 2
	for _, line := range floor.Lines {
		r := fmt.Sprint(row)
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(line.Name))
		f.SetCellValue(sheet, "B"+r, line.Qty)
		f.SetCellValue(sheet, "C"+r, line.UnitPrice)
		f.SetCellValue(sheet, "D"+r, line.LineTotal)
		f.SetCellStyle(sheet, "A"+r, "B"+r, s.text)
		f.SetCellStyle(sheet, "C"+r, "D"+r, s.money)
		row++
	}

	r := fmt.Sprint(row)
	f.SetCellValue(sheet, "A"+r, "Subtotal")
	f.SetCellValue(sheet, "D"+r, floor.Subtotal)
	f.SetCellStyle(sheet, "A"+r, "C"+r, s.totalTxt)
	f.SetCellStyle(sheet, "D"+r, "D"+r, s.totalUSD)
	return nil
}

// SheetName derives a worksheet name from a floor label: "Floor" when blank,
// cut to 31 characters, then stripped of \ / ? * [ ] : and of the leading or
// trailing apostrophes the format also rejects.
func SheetName(label string) string {
	if label == "" {
		label = "Floor"
	}
	runes := []rune(label)
	if len(runes) > maxSheetNameLen {
		runes = runes[:maxSheetNameLen]
	}

	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`\/?*[]:`, r) {
			return -1
		}
		return r
	}, string(runes))
	name = strings.Trim(name, "'")

	if strings.TrimSpace(name) == "" {
		return "Floor"
	}
	return name
}

// uniqueSheetName appends " (2)", " (3)", ... to name until it is unused
// (sheet names compare case-insensitively), keeping it within 31 characters.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		runes := []rune(name)
		if limit := maxSheetNameLen - len(suffix); len(runes) > limit {
			runes = runes[:limit]
		}
		candidate = string(runes) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin black borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
