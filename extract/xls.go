package extract

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
)

// XLSExtractor reads legacy BIFF workbooks with the same row rendering as
// XLSXExtractor.
type XLSExtractor struct{}

// Lines implements LineExtractor.
func (XLSExtractor) Lines(data []byte) ([]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}

	var lines []string
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row, ok := sheetRow(sheet, r)
			if !ok {
				continue
			}
			var cells []string
			for c := row.FirstCol(); c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			if line, ok := joinCells(cells); ok {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}

// sheetRow returns row i of sheet. A row with no stored records, which
// includes every row of an empty sheet, reports false.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row, ok bool) {
	// WorkSheet.Row dereferences the row before checking it exists.
	defer func() {
		if recover() != nil {
			row, ok = nil, false
		}
	}()
	row = sheet.Row(i)
	return row, row != nil
}
