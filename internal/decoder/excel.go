package decoder

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Patrykz94/OrderReader-sub000/internal/grid"
)

// DecodeExcel opens a workbook and flattens every sheet into a grid. Each sheet
// is emitted in the metadata-prefixed layout [cols, rows, cell...] and wrapped
// via grid.FromPrefixed, so the declared extent always matches the data.
func DecodeExcel(path string) (*Document, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	doc := &Document{
		FileName:  filepath.Base(path),
		Extension: strings.ToLower(filepath.Ext(path)),
		Sheets:    make(map[string]*grid.Grid),
	}

	for _, sheetName := range file.GetSheetList() {
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}

		g, err := flattenSheet(sheetName, rows)
		if err != nil {
			return nil, err
		}

		doc.SheetOrder = append(doc.SheetOrder, sheetName)
		doc.Sheets[sheetName] = g
	}

	return doc, nil
}

// flattenSheet pads ragged rows out to the widest row and stores the result
// row-major behind the [cols, rows] prefix.
func flattenSheet(sheetName string, rows [][]string) (*grid.Grid, error) {
	columnCount := 0
	for _, row := range rows {
		if len(row) > columnCount {
			columnCount = len(row)
		}
	}
	rowCount := len(rows)

	flat := make([]string, 0, 2+columnCount*rowCount)
	flat = append(flat, strconv.Itoa(columnCount), strconv.Itoa(rowCount))
	for _, row := range rows {
		for c := 0; c < columnCount; c++ {
			if c < len(row) {
				flat = append(flat, strings.TrimSpace(row[c]))
			} else {
				flat = append(flat, "")
			}
		}
	}

	return grid.FromPrefixed(sheetName, flat)
}
