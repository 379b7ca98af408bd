package parser

import (
	"errors"
	"fmt"
	"time"

	"github.com/Patrykz94/OrderReader-sub000/internal/decoder"
	"github.com/Patrykz94/OrderReader-sub000/internal/grid"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// Brackens batches several delivery dates into one sheet as vertically stacked
// tables. Each table is anchored by a "Delivery date:" label in column A and
// lays products across columns with depots down the rows; every depot row
// states its own total in the column after the last product.
//
//	A1  customer name
//	table anchor row:  "Delivery date:" | date | "Ref:" | reference
//	header row:        "Depot" | product | product | ... | "Total"
//	depot rows:        depot name, quantities, stated row total
//
// Brackens is strict about its catalog: an unknown product column voids the
// whole table, because their stated totals can not be reconciled without it.
const (
	brackensCustomerCell = "A1"
	brackensTolerance    = 0.01
)

// BrackensParser parses the Brackens stacked-table workbook.
type BrackensParser struct {
	baseParser
}

// NewBrackensParser wires the parser to its collaborators.
func NewBrackensParser(catalog Catalog, notify Notifier) *BrackensParser {
	return &BrackensParser{baseParser: newBaseParser(catalog, notify)}
}

func (p *BrackensParser) Name() string {
	return "brackens"
}

func (p *BrackensParser) SupportedExtension() string {
	return ".xlsx"
}

// Identify requires the title-cell customer plus at least one table anchor.
func (p *BrackensParser) Identify(doc *decoder.Document) *Match {
	g := doc.FirstGrid()
	if g == nil {
		return nil
	}
	customer := p.catalog.CustomerByOrderName(g.CellRef(brackensCustomerCell))
	if customer == nil {
		return nil
	}
	if len(brackensAnchors(g)) == 0 {
		return nil
	}
	return &Match{Customer: customer}
}

// brackensAnchors returns the rows that start a date table.
func brackensAnchors(g *grid.Grid) []int {
	var anchors []int
	for row := 1; row <= g.RowCount(); row++ {
		if equalsFold(g.Cell(1, row), "Delivery date:") {
			anchors = append(anchors, row)
		}
	}
	return anchors
}

// Parse processes every date table in source order. A hard error voids only
// the current table; the user then decides whether the remaining tables are
// still worth attempting.
func (p *BrackensParser) Parse(doc *decoder.Document, match *Match, library *model.OrdersLibrary) error {
	if match == nil || match.Customer == nil {
		return errors.New("brackens: parse invoked without an identified customer")
	}
	g := doc.FirstGrid()
	if g == nil {
		return errors.New("brackens: document has no sheet grid")
	}

	anchors := brackensAnchors(g)
	for i, anchor := range anchors {
		diag := &diagnostics{}
		p.parseTable(g, anchor, match.Customer, library, diag)
		diag.report(p.notify, "Brackens order",
			fmt.Sprintf("Problems were found in %s (table %d of %d):", doc.FileName, i+1, len(anchors)))

		if diag.fatal && i < len(anchors)-1 {
			carryOn := p.notify.ShowQuestion("Brackens order",
				fmt.Sprintf("Table %d of %d could not be processed. Continue with the remaining tables?",
					i+1, len(anchors)),
				"Continue", "Cancel")
			if !carryOn {
				// Orders from earlier tables stay; there is no rollback.
				return nil
			}
		}
	}
	return nil
}

// parseTable handles one date table starting at the anchor row.
func (p *BrackensParser) parseTable(g *grid.Grid, anchor int, customer *model.Customer, library *model.OrdersLibrary, diag *diagnostics) {
	date, ok := parseDeliveryDate(g.Cell(2, anchor))
	if !ok {
		diag.failf("could not read a delivery date from %q at %s",
			g.Cell(2, anchor), grid.CellReference(2, anchor))
		return
	}
	reference := ""
	if equalsFold(g.Cell(3, anchor), "Ref:") {
		reference = g.Cell(4, anchor)
	}
	if reference == "" {
		diag.failf("the order reference is missing next to the %s anchor", grid.CellReference(1, anchor))
		return
	}

	headerRow := anchor + 1
	if !equalsFold(g.Cell(1, headerRow), "Depot") {
		diag.failf("the depot header row is missing below row %d", anchor)
		return
	}

	// Product columns run until the first blank header; the stated totals live
	// in the column right after them.
	var products []*model.Product
	col := 2
	for {
		label := g.Cell(col, headerRow)
		if label == "" || equalsFold(label, "Total") {
			break
		}
		product := p.catalog.ProductByOrderName(customer.ID, label)
		if product == nil {
			diag.failf("product column %q is not in the catalog; the table can not be reconciled", label)
			return
		}
		products = append(products, product)
		col++
	}
	if len(products) == 0 {
		diag.failf("no product columns were found on row %d", headerRow)
		return
	}
	totalsCol := col
	if !equalsFold(g.Cell(totalsCol, headerRow), "Total") {
		diag.failf("the stated-total column is missing after the last product")
		return
	}

	dateUnusual := isUnusualDate(date, p.timeNow(), p.leadDays)
	if dateUnusual {
		diag.addf("the delivery date %s is not tomorrow; please double-check it", date.Format("02/01/2006"))
	}

	for row := headerRow + 1; ; row++ {
		depotLabel := g.Cell(1, row)
		if depotLabel == "" || equalsFold(depotLabel, "Delivery date:") {
			break
		}
		p.parseDepotRow(g, row, products, totalsCol, reference, date, dateUnusual, customer, library, diag)
	}
}

// parseDepotRow reads one depot's quantities and reconciles the stated row
// total before emitting the order.
func (p *BrackensParser) parseDepotRow(g *grid.Grid, row int, products []*model.Product, totalsCol int,
	reference string, date time.Time, dateUnusual bool,
	customer *model.Customer, library *model.OrdersLibrary, diag *diagnostics) {

	depotLabel := g.Cell(1, row)
	depot := p.catalog.DepotByOrderName(customer.ID, depotLabel)
	if depot == nil {
		diag.addf("depot %q (row %d) is not in the catalog; the row was skipped", depotLabel, row)
		return
	}

	sum := 0.0
	type line struct {
		productID int64
		quantity  float64
	}
	var lines []line

	for i, product := range products {
		cellText := g.Cell(2+i, row)
		if cellText == "" {
			continue
		}
		quantity, ok := parseQuantity(cellText)
		if !ok {
			diag.addf("unreadable quantity %q at %s for depot %s",
				cellText, grid.CellReference(2+i, row), depot.Name)
			continue
		}
		sum += quantity
		if quantity != 0 {
			lines = append(lines, line{productID: product.ID, quantity: quantity})
		}
	}

	statedText := g.Cell(totalsCol, row)
	stated, ok := parseQuantity(statedText)
	if !ok {
		diag.addf("depot %s has no readable stated total (%q); the row was skipped", depot.Name, statedText)
		return
	}
	if !withinTolerance(sum, stated, brackensTolerance) {
		diag.addf("depot %s: the row sum %.2f disagrees with the stated total %.2f; the row was skipped",
			depot.Name, sum, stated)
		return
	}
	if len(lines) == 0 {
		return
	}

	order := model.NewOrder(reference, date, customer.ID, depot.ID)
	for _, l := range lines {
		order.AddProduct(l.productID, l.quantity)
	}
	if dateUnusual {
		order.AddWarning(model.WarningUnusualDate,
			"delivery date "+date.Format("02/01/2006")+" is not next-day")
	}

	p.insertOrder(library, order, diag)
}
