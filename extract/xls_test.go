package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/extrame/xls"
	"github.com/poiesic/sift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gaps.xls holds a "Revenue" sheet whose row 2 has no records and whose
// row 4 has a cell but no ROW record, an "Empty" sheet, and an "Appendix"
// sheet.
const gapsFixture = "testdata/gaps.xls"

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.FromSlash(name))
	require.NoError(t, err)
	return data
}

func TestXLSExtractor_Lines(t *testing.T) {
	lines, err := XLSExtractor{}.Lines(readFixture(t, gapsFixture))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Region  Notes",
		"North  1250.5  Quarterly revenue grew",
		"South  980  Revenue flat",
		"Footnote",
		"See appendix",
	}, lines)
}

func TestXLSExtractor_BlankRowsAndEmptySheets(t *testing.T) {
	wb, err := xls.Open(filepath.FromSlash(gapsFixture), "utf-8")
	require.NoError(t, err)
	require.Equal(t, 3, wb.NumSheets())

	t.Run("missing row inside the sheet", func(t *testing.T) {
		sheet := wb.GetSheet(0)
		require.NotNil(t, sheet)

		row, ok := sheetRow(sheet, 2)
		assert.False(t, ok)
		assert.Nil(t, row)

		_, ok = sheetRow(sheet, 3)
		assert.True(t, ok)
	})

	t.Run("past the last row", func(t *testing.T) {
		sheet := wb.GetSheet(0)
		require.NotNil(t, sheet)

		assert.NotPanics(t, func() {
			_, ok := sheetRow(sheet, int(sheet.MaxRow)+1)
			assert.False(t, ok)
		})
	})

	t.Run("empty sheet", func(t *testing.T) {
		sheet := wb.GetSheet(1)
		require.NotNil(t, sheet)
		assert.Equal(t, "Empty", sheet.Name)

		_, ok := sheetRow(sheet, 0)
		assert.False(t, ok)
	})

	t.Run("document still extracts", func(t *testing.T) {
		r, err := NewRegistry()
		require.NoError(t, err)

		doc := r.Extract("chatbot/gaps.xls", readFixture(t, gapsFixture))
		require.False(t, doc.Failed(), "unexpected failure: %v", doc.Err)
		assert.Equal(t, core.KindTabular, doc.Kind)
		assert.Len(t, doc.Lines, 5)
	})
}

func TestXLSExtractor_Malformed(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	doc := r.Extract("chatbot/legacy.xls", []byte("not a compound document"))
	assert.True(t, doc.Failed())
}
