package parser

import (
	"errors"
	"time"

	"github.com/Patrykz94/OrderReader-sub000/internal/decoder"
	"github.com/Patrykz94/OrderReader-sub000/internal/grid"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// Freshways sends one workbook per delivery: a single sheet with depots across
// the header row and products down the first column. Each depot column carries
// a stated total under the last product row, which must reconcile against the
// column's quantities.
//
//	A1  customer name        B2  PO reference       B3  delivery date
//	row 5: "Product" | depot | depot | ...          (scanned until blank)
//	rows 6..: product name, quantities per depot    (scanned until "Total")
//	totals row: "Total" | stated per-depot totals
const (
	freshwaysCustomerCell  = "A1"
	freshwaysReferenceCell = "B2"
	freshwaysDateCell      = "B3"
	freshwaysHeaderRow     = 5
	freshwaysFirstDepotCol = 2
	freshwaysProductCol    = 1
	freshwaysTolerance     = 0.01
)

// FreshwaysParser parses the Freshways quantity-matrix workbook.
type FreshwaysParser struct {
	baseParser
}

// NewFreshwaysParser wires the parser to its collaborators.
func NewFreshwaysParser(catalog Catalog, notify Notifier) *FreshwaysParser {
	return &FreshwaysParser{baseParser: newBaseParser(catalog, notify)}
}

func (p *FreshwaysParser) Name() string {
	return "freshways"
}

func (p *FreshwaysParser) SupportedExtension() string {
	return ".xlsx"
}

// Identify matches on the layout fingerprint plus a catalog hit for the name in
// the title cell.
func (p *FreshwaysParser) Identify(doc *decoder.Document) *Match {
	g := doc.FirstGrid()
	if g == nil {
		return nil
	}
	if !equalsFold(g.CellRef("A2"), "PO Number") || !equalsFold(g.CellRef("A3"), "Delivery Date") {
		return nil
	}
	customer := p.catalog.CustomerByOrderName(g.CellRef(freshwaysCustomerCell))
	if customer == nil {
		return nil
	}
	return &Match{Customer: customer}
}

// freshwaysTable is the per-call scratch state for one parse.
type freshwaysTable struct {
	grid      *grid.Grid
	customer  *model.Customer
	reference string
	date      time.Time
	diag      diagnostics

	depotCols   []int
	depotByCol  map[int]*model.Depot // nil entry: unknown depot, column excluded
	productRows []int
	totalsRow   int
}

// Parse processes the single table of a Freshways workbook.
func (p *FreshwaysParser) Parse(doc *decoder.Document, match *Match, library *model.OrdersLibrary) error {
	if match == nil || match.Customer == nil {
		return errors.New("freshways: parse invoked without an identified customer")
	}
	g := doc.FirstGrid()
	if g == nil {
		return errors.New("freshways: document has no sheet grid")
	}

	t := &freshwaysTable{grid: g, customer: match.Customer, depotByCol: map[int]*model.Depot{}}
	defer t.diag.report(p.notify, "Freshways order", "Problems were found in "+doc.FileName+":")

	if !p.readAnchors(t) {
		return nil
	}
	p.locateExtent(t)
	if t.diag.fatal {
		return nil
	}
	p.resolveDepots(t)

	dateUnusual := isUnusualDate(t.date, p.timeNow(), p.leadDays)
	if dateUnusual {
		t.diag.addf("the delivery date %s is not tomorrow; please double-check it",
			t.date.Format("02/01/2006"))
	}

	for _, col := range t.depotCols {
		depot := t.depotByCol[col]
		if depot == nil {
			continue
		}
		p.parseDepotColumn(t, col, depot, dateUnusual, library)
	}

	return nil
}

// readAnchors recovers the mandatory reference and date cells.
func (p *FreshwaysParser) readAnchors(t *freshwaysTable) bool {
	t.reference = t.grid.CellRef(freshwaysReferenceCell)
	if t.reference == "" {
		t.diag.failf("the PO number cell (%s) is empty", freshwaysReferenceCell)
		return false
	}

	dateText := t.grid.CellRef(freshwaysDateCell)
	date, ok := parseDeliveryDate(dateText)
	if !ok {
		t.diag.failf("could not read a delivery date from %q", dateText)
		return false
	}
	t.date = date
	return true
}

// locateExtent discovers the depot columns and product rows by scanning until
// the first blank cell; the layout fixes only where the scans start.
func (p *FreshwaysParser) locateExtent(t *freshwaysTable) {
	for col := freshwaysFirstDepotCol; ; col++ {
		if t.grid.Cell(col, freshwaysHeaderRow) == "" {
			break
		}
		t.depotCols = append(t.depotCols, col)
	}
	if len(t.depotCols) == 0 {
		t.diag.failf("no depot columns were found on row %d", freshwaysHeaderRow)
		return
	}

	row := freshwaysHeaderRow + 1
	for {
		label := t.grid.Cell(freshwaysProductCol, row)
		if label == "" || equalsFold(label, "Total") {
			break
		}
		t.productRows = append(t.productRows, row)
		row++
	}
	if len(t.productRows) == 0 {
		t.diag.failf("no product rows were found below row %d", freshwaysHeaderRow)
		return
	}

	if !equalsFold(t.grid.Cell(freshwaysProductCol, row), "Total") {
		t.diag.failf("the totals row is missing below the last product (row %d)", row)
	}
	t.totalsRow = row
}

// resolveDepots maps header labels to catalog depots. An unknown label excludes
// that column from all further processing, including reconciliation.
func (p *FreshwaysParser) resolveDepots(t *freshwaysTable) {
	for _, col := range t.depotCols {
		label := t.grid.Cell(col, freshwaysHeaderRow)
		depot := p.catalog.DepotByOrderName(t.customer.ID, label)
		if depot == nil {
			t.diag.addf("depot %q (column %s) is not in the catalog; its column was skipped",
				label, grid.ColumnLetters(col))
		}
		t.depotByCol[col] = depot
	}
}

// parseDepotColumn reads one depot's quantities, reconciles them against the
// stated column total, and emits the order. A reconciliation failure voids the
// depot; other depots are unaffected.
func (p *FreshwaysParser) parseDepotColumn(t *freshwaysTable, col int, depot *model.Depot, dateUnusual bool, library *model.OrdersLibrary) {
	type line struct {
		product  *model.Product
		quantity float64
	}

	sum := 0.0
	var lines []line
	var unknownProducts []string

	for _, row := range t.productRows {
		cellText := t.grid.Cell(col, row)
		if cellText == "" {
			continue
		}
		quantity, ok := parseQuantity(cellText)
		if !ok {
			t.diag.addf("unreadable quantity %q at %s for depot %s",
				cellText, grid.CellReference(col, row), depot.Name)
			continue
		}
		sum += quantity

		label := t.grid.Cell(freshwaysProductCol, row)
		product := p.catalog.ProductByOrderName(t.customer.ID, label)
		if product == nil {
			// The quantity still counts toward the stated total; only the
			// order line is lost.
			unknownProducts = append(unknownProducts, label)
			continue
		}
		if quantity != 0 {
			lines = append(lines, line{product: product, quantity: quantity})
		}
	}

	statedText := t.grid.Cell(col, t.totalsRow)
	stated, ok := parseQuantity(statedText)
	if !ok {
		t.diag.addf("depot %s has no readable stated total (%q); the depot was skipped",
			depot.Name, statedText)
		return
	}
	if !withinTolerance(sum, stated, freshwaysTolerance) {
		t.diag.addf("depot %s: the column sum %.2f disagrees with the stated total %.2f; the depot was skipped",
			depot.Name, sum, stated)
		return
	}

	if len(lines) == 0 {
		return
	}

	order := model.NewOrder(t.reference, t.date, t.customer.ID, depot.ID)
	for _, l := range lines {
		order.AddProduct(l.product.ID, l.quantity)
	}
	if dateUnusual {
		order.AddWarning(model.WarningUnusualDate,
			"delivery date "+t.date.Format("02/01/2006")+" is not next-day")
	}
	for _, label := range unknownProducts {
		t.diag.addf("product %q for depot %s is not in the catalog; the line was dropped", label, depot.Name)
		order.AddWarning(model.WarningUnknownProduct, "unknown product "+label)
	}

	p.insertOrder(library, order, &t.diag)
}
