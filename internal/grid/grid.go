package grid

import "fmt"

// Grid is a rectangular, 1-based, read-only view over flat cell text. Cells are
// stored row-major. A blank cell and an out-of-range lookup are deliberately
// indistinguishable: both return "".
type Grid struct {
	name        string
	cells       []string
	columnCount int
	rowCount    int
}

// NewGrid wraps decoder output in a grid. The cell slice length must match the
// declared extent; a mismatch is a bug in the decoder, not bad input data.
func NewGrid(name string, columnCount, rowCount int, cells []string) (*Grid, error) {
	if columnCount < 0 || rowCount < 0 {
		return nil, fmt.Errorf("grid %q: negative extent %dx%d", name, columnCount, rowCount)
	}
	if len(cells) != columnCount*rowCount {
		return nil, fmt.Errorf("grid %q: %d cells for declared extent %dx%d",
			name, len(cells), columnCount, rowCount)
	}
	return &Grid{name: name, cells: cells, columnCount: columnCount, rowCount: rowCount}, nil
}

// FromPrefixed builds a grid from the metadata-prefixed flat layout
// [columnCount, rowCount, cell...] produced by the Excel decoder.
func FromPrefixed(name string, data []string) (*Grid, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("grid %q: prefixed data shorter than its header", name)
	}
	var cols, rows int
	if _, err := fmt.Sscanf(data[0], "%d", &cols); err != nil {
		return nil, fmt.Errorf("grid %q: bad column count %q", name, data[0])
	}
	if _, err := fmt.Sscanf(data[1], "%d", &rows); err != nil {
		return nil, fmt.Errorf("grid %q: bad row count %q", name, data[1])
	}
	return NewGrid(name, cols, rows, data[2:])
}

// Name returns the sheet name the grid was decoded from.
func (g *Grid) Name() string {
	return g.name
}

// ColumnCount returns the declared column extent.
func (g *Grid) ColumnCount() int {
	return g.columnCount
}

// RowCount returns the declared row extent.
func (g *Grid) RowCount() int {
	return g.rowCount
}

// Cell returns the text at the 1-based (column, row) position. Out-of-range
// coordinates and blank cells both yield "".
func (g *Grid) Cell(column, row int) string {
	if column < 1 || row < 1 || column > g.columnCount || row > g.rowCount {
		return ""
	}
	return g.cells[(column-1)+(row-1)*g.columnCount]
}

// CellRef looks up a cell by A1-style reference.
func (g *Grid) CellRef(reference string) string {
	addr := ParseCellAddress(reference)
	if !addr.Valid() {
		return ""
	}
	return g.Cell(addr.Column, addr.Row)
}
