// Package decoder turns source files into the flat, untyped form the order
// parsers consume: Excel workbooks become named grids of cell text, PDFs become
// raw text lines per page. PDF extraction does not preserve a reliable 2-D
// layout, so the two shapes are deliberately not unified.
package decoder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Patrykz94/OrderReader-sub000/internal/grid"
)

// Document is one decoded source file.
type Document struct {
	FileName   string
	Extension  string // lower-case, including the dot
	SheetOrder []string
	Sheets     map[string]*grid.Grid
	Pages      [][]string // PDF only: text lines per page
}

// Grid returns the named sheet grid, or nil when absent.
func (d *Document) Grid(name string) *grid.Grid {
	return d.Sheets[name]
}

// FirstGrid returns the first sheet in workbook order, or nil for an empty or
// non-Excel document.
func (d *Document) FirstGrid() *grid.Grid {
	if len(d.SheetOrder) == 0 {
		return nil
	}
	return d.Sheets[d.SheetOrder[0]]
}

// DecodeFile dispatches on the file extension.
func DecodeFile(path string) (*Document, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xls":
		return DecodeExcel(path)
	case ".pdf":
		return DecodePDF(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}
