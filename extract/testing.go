package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// BuildPDF renders a minimal uncompressed PDF with one text line per page,
// for tests. An empty string produces a page without a content stream.
func BuildPDF(pages ...string) []byte {
	pageObj := make([]int, len(pages))
	contentObj := make([]int, len(pages))
	next := 4 // 1 catalog, 2 page tree, 3 font
	for i, text := range pages {
		pageObj[i] = next
		next++
		if text != "" {
			contentObj[i] = next
			next++
		}
	}

	kids := make([]string, len(pages))
	for i, num := range pageObj {
		kids[i] = fmt.Sprintf("%d 0 R", num)
	}

	bodies := make([]string, next-1)
	bodies[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	bodies[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))
	bodies[2] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"
	for i, text := range pages {
		contents := ""
		if text != "" {
			contents = fmt.Sprintf(" /Contents %d 0 R", contentObj[i])
			stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escapePDFString(text))
			bodies[contentObj[i]-1] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)
		}
		bodies[pageObj[i]-1] = fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >>%s >>",
			contents)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(bodies))
	for i, body := range bodies {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(bodies)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(bodies)+1, xref)
	return buf.Bytes()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// Sheet is one worksheet for BuildXLSX. A nil cell is left empty.
type Sheet struct {
	Name string
	Rows [][]any
}

// BuildXLSX renders sheets into an XLSX workbook, for tests.
func BuildXLSX(sheets ...Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, err
		}

		for r, row := range sheet.Rows {
			for c, value := range row {
				if value == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
