package parser

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Patrykz94/OrderReader-sub000/internal/decoder"
	"github.com/Patrykz94/OrderReader-sub000/internal/grid"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// fakeCatalog is a slice-backed Catalog for parser tests.
type fakeCatalog struct {
	customers []*model.Customer
	depots    []*model.Depot
	products  []*model.Product
	profiles  []*model.CustomerProfile
}

func (c *fakeCatalog) CustomerByOrderName(name string) *model.Customer {
	for _, cust := range c.customers {
		if strings.EqualFold(cust.OrderName, strings.TrimSpace(name)) {
			return cust
		}
	}
	return nil
}

func (c *fakeCatalog) CustomerByID(id int64) *model.Customer {
	for _, cust := range c.customers {
		if cust.ID == id {
			return cust
		}
	}
	return nil
}

func (c *fakeCatalog) HasCustomerOrderName(name string) bool {
	return c.CustomerByOrderName(name) != nil
}

func (c *fakeCatalog) DepotByOrderName(customerID int64, name string) *model.Depot {
	for _, d := range c.depots {
		if d.CustomerID == customerID && strings.EqualFold(d.OrderName, strings.TrimSpace(name)) {
			return d
		}
	}
	return nil
}

func (c *fakeCatalog) DepotByID(id int64) *model.Depot {
	for _, d := range c.depots {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (c *fakeCatalog) HasDepotOrderName(customerID int64, name string) bool {
	return c.DepotByOrderName(customerID, name) != nil
}

func (c *fakeCatalog) ProductByOrderName(customerID int64, name string) *model.Product {
	for _, p := range c.products {
		if p.CustomerID == customerID && strings.EqualFold(p.OrderName, strings.TrimSpace(name)) {
			return p
		}
	}
	return nil
}

func (c *fakeCatalog) ProductByID(id int64) *model.Product {
	for _, p := range c.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (c *fakeCatalog) HasProductOrderName(customerID int64, name string) bool {
	return c.ProductByOrderName(customerID, name) != nil
}

func (c *fakeCatalog) ProfileByOrderName(name string) *model.CustomerProfile {
	for _, p := range c.profiles {
		if strings.EqualFold(p.OrderName, strings.TrimSpace(name)) {
			return p
		}
	}
	return nil
}

// fakeNotifier records every dialog and answers questions with a preset.
type fakeNotifier struct {
	messages   []string
	questions  []string
	answerYes  bool
}

func (n *fakeNotifier) ShowMessage(title, message, buttonLabel string) {
	n.messages = append(n.messages, message)
}

func (n *fakeNotifier) ShowQuestion(title, message, yesLabel, noLabel string) bool {
	n.questions = append(n.questions, message)
	return n.answerYes
}

func (n *fakeNotifier) allMessages() string {
	return strings.Join(n.messages, "\n")
}

// buildGrid flattens ragged rows into a grid the way the Excel decoder does.
func buildGrid(t *testing.T, name string, rows [][]string) *grid.Grid {
	t.Helper()
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	flat := []string{strconv.Itoa(cols), strconv.Itoa(len(rows))}
	for _, row := range rows {
		for c := 0; c < cols; c++ {
			if c < len(row) {
				flat = append(flat, row[c])
			} else {
				flat = append(flat, "")
			}
		}
	}
	g, err := grid.FromPrefixed(name, flat)
	if err != nil {
		t.Fatalf("buildGrid: %v", err)
	}
	return g
}

// xlsxDoc assembles a decoded workbook document from named sheets.
func xlsxDoc(t *testing.T, fileName string, sheets ...any) *decoder.Document {
	t.Helper()
	if len(sheets)%2 != 0 {
		t.Fatal("xlsxDoc: sheets must be name/rows pairs")
	}
	doc := &decoder.Document{
		FileName:  fileName,
		Extension: ".xlsx",
		Sheets:    map[string]*grid.Grid{},
	}
	for i := 0; i < len(sheets); i += 2 {
		name := sheets[i].(string)
		rows := sheets[i+1].([][]string)
		doc.SheetOrder = append(doc.SheetOrder, name)
		doc.Sheets[name] = buildGrid(t, name, rows)
	}
	return doc
}

// pdfDoc assembles a decoded PDF document from pages of text lines.
func pdfDoc(fileName string, pages ...[]string) *decoder.Document {
	return &decoder.Document{FileName: fileName, Extension: ".pdf", Pages: pages}
}

// fixedNow pins "processing time" so next-day checks are deterministic.
var fixedNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)

func atFixedNow() time.Time { return fixedNow }

// tomorrowText is the expected next-day delivery date in document form.
func tomorrowText() string {
	return fixedNow.AddDate(0, 0, 1).Format("02/01/2006")
}

// testCatalog is the shared reference-data fixture.
func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		customers: []*model.Customer{
			{ID: 1, Name: "Freshways", CSVName: "FRESHWAYS", OrderName: "Freshways Food Co"},
			{ID: 2, Name: "Brackens", CSVName: "BRACKENS", OrderName: "Brackens Bakery Ltd"},
			{ID: 3, Name: "Millbrook", CSVName: "MILLBROOK", OrderName: "Millbrook Bros"},
			{ID: 4, Name: "Sunrise", CSVName: "SUNRISE", OrderName: "Sunrise Wholesale Ltd"},
			{ID: 5, Name: "Corner Deli", CSVName: "CORNERDELI", OrderName: "The Corner Deli"},
		},
		depots: []*model.Depot{
			{ID: 11, CustomerID: 1, Name: "Leeds", CSVName: "LEE", OrderName: "Leeds"},
			{ID: 12, CustomerID: 1, Name: "York", CSVName: "YRK", OrderName: "York"},
			{ID: 13, CustomerID: 1, Name: "Hull", CSVName: "HUL", OrderName: "Hull"},
			{ID: 21, CustomerID: 2, Name: "Sheffield", CSVName: "SHF", OrderName: "Sheffield"},
			{ID: 22, CustomerID: 2, Name: "Rotherham", CSVName: "RTH", OrderName: "Rotherham"},
			{ID: 31, CustomerID: 3, Name: "Derby", CSVName: "DER", OrderName: "Derby"},
			{ID: 32, CustomerID: 3, Name: "Nottingham", CSVName: "NOT", OrderName: "Nottingham"},
			{ID: 41, CustomerID: 4, Name: "Wakefield", CSVName: "WKF", OrderName: "Wakefield"},
			{ID: 51, CustomerID: 5, Name: "Harrogate", CSVName: "HGT", OrderName: "Harrogate"},
		},
		products: []*model.Product{
			{ID: 101, CustomerID: 1, Name: "Semi Skimmed 2L", CSVName: "SS2", OrderName: "Semi Skimmed Milk 2L", Price: 1.89},
			{ID: 102, CustomerID: 1, Name: "Whole 2L", CSVName: "WH2", OrderName: "Whole Milk 2L", Price: 1.95},
			{ID: 103, CustomerID: 1, Name: "Skimmed 2L", CSVName: "SK2", OrderName: "Skimmed Milk 2L", Price: 1.85},
			{ID: 201, CustomerID: 2, Name: "White Loaf", CSVName: "WL", OrderName: "White Loaf 800g", Price: 1.10},
			{ID: 202, CustomerID: 2, Name: "Brown Loaf", CSVName: "BL", OrderName: "Brown Loaf 800g", Price: 1.20},
			{ID: 301, CustomerID: 3, Name: "Butter 250g", CSVName: "BTR", OrderName: "MB-BTR-250", Price: 2.40},
			{ID: 302, CustomerID: 3, Name: "Cheddar 400g", CSVName: "CHD", OrderName: "MB-CHD-400", Price: 3.60},
			{ID: 401, CustomerID: 4, Name: "Orange Juice 1L", CSVName: "OJ1", OrderName: "SW-OJ-1000", Price: 1.50},
			{ID: 402, CustomerID: 4, Name: "Apple Juice 1L", CSVName: "AJ1", OrderName: "SW-AJ-1000", Price: 1.45},
			{ID: 501, CustomerID: 5, Name: "Olives 200g", CSVName: "OLV", OrderName: "Marinated Olives 200g", Price: 2.80},
		},
		profiles: []*model.CustomerProfile{
			{ID: 1, Name: "DeliMondo", OrderName: "DeliMondo Distribution", CustomerIDs: []int64{1, 5}},
		},
	}
}
