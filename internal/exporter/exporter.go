// Package exporter re-emits parsed orders in the formats the downstream
// ordering systems accept: one CSV file per order, and a combined workbook
// for review.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Patrykz94/OrderReader-sub000/internal/model"
	"github.com/Patrykz94/OrderReader-sub000/internal/parser"
)

// Exporter resolves order lines back to catalog names and writes them out.
type Exporter struct {
	catalog parser.Catalog
	library *model.OrdersLibrary
}

// NewExporter creates an exporter over the given catalog and library.
func NewExporter(catalog parser.Catalog, library *model.OrdersLibrary) *Exporter {
	return &Exporter{catalog: catalog, library: library}
}

var csvHeader = []string{"Date", "Customer", "Depot", "Product", "Quantity", "Price", "Value"}

// WriteCSV writes every order line in the library to w, one header row
// followed by one row per line. Lines are ordered by customer, depot, then
// product so repeated exports diff cleanly.
func (e *Exporter) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, order := range e.sortedOrders() {
		for _, row := range e.orderRows(order) {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSVFiles writes one CSV file per order into dir and returns the
// paths written. The file name carries the customer, depot and delivery date
// so a folder of exports stays readable.
func (e *Exporter) ExportCSVFiles(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	var paths []string
	for _, order := range e.sortedOrders() {
		path := filepath.Join(dir, e.csvFileName(order))
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}

		writer := csv.NewWriter(f)
		writeErr := writer.Write(csvHeader)
		if writeErr == nil {
			for _, row := range e.orderRows(order) {
				if writeErr = writer.Write(row); writeErr != nil {
					break
				}
			}
		}
		writer.Flush()
		if writeErr == nil {
			writeErr = writer.Error()
		}
		if closeErr := f.Close(); writeErr == nil {
			writeErr = closeErr
		}
		if writeErr != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, writeErr)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Workbook builds a review workbook with one sheet per customer.
func (e *Exporter) Workbook() (*excelize.File, error) {
	f := excelize.NewFile()

	orders := e.sortedOrders()
	if len(orders) == 0 {
		return f, nil
	}

	byCustomer := map[int64][]*model.Order{}
	var customerIDs []int64
	for _, order := range orders {
		if _, seen := byCustomer[order.CustomerID]; !seen {
			customerIDs = append(customerIDs, order.CustomerID)
		}
		byCustomer[order.CustomerID] = append(byCustomer[order.CustomerID], order)
	}

	for i, customerID := range customerIDs {
		sheet := e.customerName(customerID)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := e.fillCustomerSheet(f, sheet, byCustomer[customerID]); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) fillCustomerSheet(f *excelize.File, sheet string, orders []*model.Order) error {
	for col, label := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return err
		}
	}

	row := 2
	for _, order := range orders {
		for _, values := range e.orderRows(order) {
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return err
				}
			}
			row++
		}
	}
	return nil
}

// sortedOrders returns the library's orders in a stable export order.
func (e *Exporter) sortedOrders() []*model.Order {
	orders := append([]*model.Order(nil), e.library.Orders()...)
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if a.CustomerID != b.CustomerID {
			return a.CustomerID < b.CustomerID
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.DepotID < b.DepotID
	})
	return orders
}

// orderRows resolves one order's lines to CSV rows, products in a stable
// name order.
func (e *Exporter) orderRows(order *model.Order) [][]string {
	type resolvedLine struct {
		name     string
		quantity float64
		price    float64
	}

	lines := make([]resolvedLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		name := strconv.FormatInt(line.ProductID, 10)
		price := 0.0
		if product := e.catalog.ProductByID(line.ProductID); product != nil {
			name = product.CSVName
			price = product.Price
		}
		lines = append(lines, resolvedLine{name: name, quantity: line.Quantity, price: price})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].name < lines[j].name })

	date := order.Date.Format("02/01/2006")
	customer := e.customerCSVName(order.CustomerID)
	depot := e.depotCSVName(order.DepotID)

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []string{
			date,
			customer,
			depot,
			line.name,
			formatQuantity(line.quantity),
			fmt.Sprintf("%.2f", line.price),
			fmt.Sprintf("%.2f", line.price*line.quantity),
		})
	}
	return rows
}

func (e *Exporter) csvFileName(order *model.Order) string {
	name := fmt.Sprintf("%s_%s_%s.csv",
		e.customerCSVName(order.CustomerID),
		e.depotCSVName(order.DepotID),
		order.Date.Format("2006-01-02"))
	return sanitizeFileName(name)
}

func (e *Exporter) customerName(id int64) string {
	if customer := e.catalog.CustomerByID(id); customer != nil {
		return customer.Name
	}
	return strconv.FormatInt(id, 10)
}

func (e *Exporter) customerCSVName(id int64) string {
	if customer := e.catalog.CustomerByID(id); customer != nil {
		return customer.CSVName
	}
	return strconv.FormatInt(id, 10)
}

func (e *Exporter) depotCSVName(id int64) string {
	if depot := e.catalog.DepotByID(id); depot != nil {
		return depot.CSVName
	}
	return strconv.FormatInt(id, 10)
}

// formatQuantity trims trailing zeros so whole quantities export as integers.
func formatQuantity(q float64) string {
	s := strconv.FormatFloat(q, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// sanitizeFileName replaces the characters Windows rejects in file names.
func sanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	return replacer.Replace(name)
}
