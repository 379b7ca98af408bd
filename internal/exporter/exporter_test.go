package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Patrykz94/OrderReader-sub000/internal/model"
	"github.com/Patrykz94/OrderReader-sub000/internal/store"
)

func exportFixture(t *testing.T) (*Exporter, *model.OrdersLibrary) {
	t.Helper()

	catalog := store.NewMemoryCatalog()
	catalog.AddCustomer(&model.Customer{ID: 1, Name: "Freshways", CSVName: "FRESHWAYS", OrderName: "Freshways Food Co"})
	catalog.AddDepot(&model.Depot{ID: 11, CustomerID: 1, Name: "Leeds", CSVName: "LEEDS", OrderName: "Leeds"})
	catalog.AddDepot(&model.Depot{ID: 12, CustomerID: 1, Name: "York", CSVName: "YORK", OrderName: "York"})
	catalog.AddProduct(&model.Product{ID: 101, CustomerID: 1, Name: "Whole Milk 2L", CSVName: "MILK-W-2", OrderName: "Whole Milk 2L", Price: 1.5})
	catalog.AddProduct(&model.Product{ID: 102, CustomerID: 1, Name: "Skimmed Milk 2L", CSVName: "MILK-S-2", OrderName: "Skimmed Milk 2L", Price: 1.4})

	library := model.NewOrdersLibrary()
	return NewExporter(catalog, library), library
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	exporter, library := exportFixture(t)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)

	order := model.NewOrder("PO-1", date, 1, 11)
	order.AddProduct(101, 6)
	order.AddProduct(102, 2.5)
	library.AddOrder(order)

	var buf bytes.Buffer
	if err := exporter.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading exported csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("exported %d rows, want header plus 2 lines", len(records))
	}
	if records[0][0] != "Date" || records[0][6] != "Value" {
		t.Errorf("header = %v", records[0])
	}

	want := [][]string{
		{"02/09/2026", "FRESHWAYS", "LEEDS", "MILK-S-2", "2.5", "1.40", "3.50"},
		{"02/09/2026", "FRESHWAYS", "LEEDS", "MILK-W-2", "6", "1.50", "9.00"},
	}
	for i, row := range want {
		for col := range row {
			if records[i+1][col] != row[col] {
				t.Errorf("row %d = %v, want %v", i+1, records[i+1], row)
				break
			}
		}
	}
}

func TestWriteCSVUnknownProduct(t *testing.T) {
	t.Parallel()

	exporter, library := exportFixture(t)
	order := model.NewOrder("PO-2", time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local), 1, 11)
	order.AddProduct(999, 3)
	library.AddOrder(order)

	var buf bytes.Buffer
	if err := exporter.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading exported csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("exported %d rows, want 2", len(records))
	}
	// A line whose product left the catalog falls back to the raw id.
	if records[1][3] != "999" || records[1][5] != "0.00" {
		t.Errorf("row = %v, want product id fallback with zero price", records[1])
	}
}

func TestExportCSVFiles(t *testing.T) {
	t.Parallel()

	exporter, library := exportFixture(t)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)

	leeds := model.NewOrder("PO-1", date, 1, 11)
	leeds.AddProduct(101, 6)
	library.AddOrder(leeds)

	york := model.NewOrder("PO-2", date, 1, 12)
	york.AddProduct(102, 4)
	library.AddOrder(york)

	dir := t.TempDir()
	paths, err := exporter.ExportCSVFiles(dir)
	if err != nil {
		t.Fatalf("ExportCSVFiles: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %d files, want 2", len(paths))
	}

	wantNames := []string{
		"FRESHWAYS_LEEDS_2026-09-02.csv",
		"FRESHWAYS_YORK_2026-09-02.csv",
	}
	for i, path := range paths {
		if filepath.Base(path) != wantNames[i] {
			t.Errorf("file %d = %s, want %s", i, filepath.Base(path), wantNames[i])
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("stat %s: %v", path, err)
		}
	}
}

func TestWorkbook(t *testing.T) {
	t.Parallel()

	exporter, library := exportFixture(t)
	order := model.NewOrder("PO-1", time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local), 1, 11)
	order.AddProduct(101, 6)
	library.AddOrder(order)

	f, err := exporter.Workbook()
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Freshways" {
		t.Fatalf("sheets = %v, want [Freshways]", sheets)
	}

	got, err := f.GetCellValue("Freshways", "D2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "MILK-W-2" {
		t.Errorf("D2 = %q, want %q", got, "MILK-W-2")
	}
}
