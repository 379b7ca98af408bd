package decoder

import (
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

func TestFlattenSheet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		rows    [][]string
		columns int
		rowNum  int
	}{
		{
			name:    "rectangular",
			rows:    [][]string{{"a", "b"}, {"c", "d"}},
			columns: 2,
			rowNum:  2,
		},
		{
			name:    "ragged rows pad to the widest",
			rows:    [][]string{{"a"}, {"b", "c", "d"}, {}},
			columns: 3,
			rowNum:  3,
		},
		{
			name:    "empty sheet",
			rows:    nil,
			columns: 0,
			rowNum:  0,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g, err := flattenSheet("Sheet1", tc.rows)
			if err != nil {
				t.Fatalf("flattenSheet: %v", err)
			}
			if g.ColumnCount() != tc.columns || g.RowCount() != tc.rowNum {
				t.Fatalf("extent = %dx%d, want %dx%d",
					g.ColumnCount(), g.RowCount(), tc.columns, tc.rowNum)
			}
		})
	}
}

func TestFlattenSheetPadsAndTrims(t *testing.T) {
	t.Parallel()

	g, err := flattenSheet("Orders", [][]string{
		{" a ", "b"},
		{"c"},
	})
	if err != nil {
		t.Fatalf("flattenSheet: %v", err)
	}

	if got := g.Cell(1, 1); got != "a" {
		t.Errorf("Cell(1,1) = %q, want trimmed %q", got, "a")
	}
	// The short row reads blank in its missing column, same as out-of-range.
	if got := g.Cell(2, 2); got != "" {
		t.Errorf("Cell(2,2) = %q, want blank padding", got)
	}
	if got := g.Cell(3, 1); got != "" {
		t.Errorf("Cell(3,1) = %q, want blank out of range", got)
	}
}

func TestDecodeFileUnsupportedExtension(t *testing.T) {
	t.Parallel()

	if _, err := DecodeFile("order.docx"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestDecodeExcelRoundTrip(t *testing.T) {
	t.Parallel()

	workbook := excelize.NewFile()
	if err := workbook.SetSheetName(workbook.GetSheetName(0), "Leeds"); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	if _, err := workbook.NewSheet("York"); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	if err := workbook.SetCellValue("Leeds", "A1", "Freshways Food Co"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if err := workbook.SetCellValue("York", "B2", "PO-42"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}

	path := filepath.Join(t.TempDir(), "order.xlsx")
	if err := workbook.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	doc, err := DecodeExcel(path)
	if err != nil {
		t.Fatalf("DecodeExcel: %v", err)
	}
	if doc.FileName != "order.xlsx" || doc.Extension != ".xlsx" {
		t.Errorf("doc = %s %s", doc.FileName, doc.Extension)
	}
	if len(doc.SheetOrder) != 2 || doc.SheetOrder[0] != "Leeds" || doc.SheetOrder[1] != "York" {
		t.Fatalf("sheet order = %v", doc.SheetOrder)
	}
	if got := doc.FirstGrid().CellRef("A1"); got != "Freshways Food Co" {
		t.Errorf("Leeds A1 = %q", got)
	}
	if got := doc.Grid("York").CellRef("B2"); got != "PO-42" {
		t.Errorf("York B2 = %q", got)
	}
	if doc.Grid("Hull") != nil {
		t.Error("missing sheet should return nil")
	}
}

func TestPageLines(t *testing.T) {
	t.Parallel()

	// Two lines: fragments arrive out of order and with jittered Y values.
	texts := []pdf.Text{
		{S: "Qty", X: 200, Y: 698.5, W: 20},
		{S: "Code", X: 10, Y: 700, W: 30},
		{S: "Description", X: 60, Y: 699, W: 80},
		{S: "8", X: 200, Y: 680, W: 6},
		{S: "MB-BTR-250", X: 10, Y: 680.8, W: 70},
		{S: "  ", X: 120, Y: 680, W: 5},
	}

	lines := pageLines(texts)
	want := []string{"Code Description Qty", "MB-BTR-250 8"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPageLinesJoinsTouchingFragments(t *testing.T) {
	t.Parallel()

	// No visible gap between fragments means no inserted space.
	texts := []pdf.Text{
		{S: "PO:", X: 10, Y: 500, W: 18},
		{S: "SW-2041", X: 28.5, Y: 500, W: 50},
	}
	lines := pageLines(texts)
	if len(lines) != 1 || lines[0] != "PO:SW-2041" {
		t.Fatalf("lines = %q, want [PO:SW-2041]", lines)
	}
}
