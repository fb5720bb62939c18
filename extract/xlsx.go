package extract

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// XLSXExtractor renders every non-empty row of every sheet, in order.
// Cell values are read raw so numbers never pick up locale formatting.
// Booleans render as True or False and date-formatted serials as ISO 8601
// timestamps.
type XLSXExtractor struct{}

// Lines implements LineExtractor.
func (XLSXExtractor) Lines(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var date1904 bool
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	var lines []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		for r, cells := range rows {
			for c, raw := range cells {
				if raw != "" {
					cells[c] = cellText(f, sheet, c+1, r+1, raw, date1904)
				}
			}
			if line, ok := joinCells(cells); ok {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}

// cellText renders the raw value of the cell at col, row. Values that are
// neither booleans nor date-formatted numbers are returned unchanged.
func cellText(f *excelize.File, sheet string, col, row int, raw string, date1904 bool) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return raw
	}

	switch typ {
	case excelize.CellTypeBool:
		switch raw {
		case "1":
			return "True"
		case "0":
			return "False"
		}
		return raw
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	default:
		return raw
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return raw
	}
	style, err := f.GetStyle(styleID)
	if err != nil || !isDateStyle(style) {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return raw
	}
	if serial < 1 {
		return t.Format(time.TimeOnly)
	}
	return t.Format(time.DateTime)
}

// isDateStyle reports whether style formats numbers as dates or times.
func isDateStyle(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return isDateLayout(*style.CustomNumFmt)
	}
	switch n := style.NumFmt; {
	case n >= 14 && n <= 22, n >= 27 && n <= 36, n >= 45 && n <= 47, n >= 50 && n <= 58:
		return true
	}
	return false
}

// isDateLayout reports whether a custom number format code holds a date or
// time token outside quoted literals, escapes and bracketed sections.
// Elapsed-time sections such as [h] count as time tokens.
func isDateLayout(code string) bool {
	code = strings.ToLower(code)
	for i := 0; i < len(code); i++ {
		switch ch := code[i]; ch {
		case '"':
			end := strings.IndexByte(code[i+1:], '"')
			if end < 0 {
				return false
			}
			i += end + 1
		case '\\', '_', '*':
			i++
		case '[':
			end := strings.IndexByte(code[i+1:], ']')
			if end < 0 {
				return false
			}
			if section := code[i+1 : i+1+end]; strings.Trim(section, "hms") == "" && section != "" {
				return true
			}
			i += end + 1
		case 'y', 'd', 'h', 's', 'm':
			return true
		}
	}
	return false
}
