package parser

import (
	"errors"

	"github.com/Patrykz94/OrderReader-sub000/internal/decoder"
	"github.com/Patrykz94/OrderReader-sub000/internal/grid"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// Millbrook exports one sheet per depot, each a plain code/quantity list under
// a fixed header block. Every sheet carries its own order reference and a
// stated unit total.
//
//	A1  customer name        B1  depot name
//	A2  "Order ref"          B2  reference
//	A3  "Delivery date"      B3  date
//	A4  "Total units"        B4  stated total
//	row 6: "Code" | "Quantity"
//	rows 7..: product code, quantity   (scanned until blank)
//
// Millbrook re-sends amended workbooks under the original reference, sometimes
// with the depot or date cells corrected, so on top of the identity rule this
// parser also rejects any order whose reference was already imported.
const (
	millbrookFirstItemRow = 7
	millbrookTolerance    = 0.001
)

// MillbrookParser parses the Millbrook per-depot workbook.
type MillbrookParser struct {
	baseParser
}

// NewMillbrookParser wires the parser to its collaborators.
func NewMillbrookParser(catalog Catalog, notify Notifier) *MillbrookParser {
	return &MillbrookParser{baseParser: newBaseParser(catalog, notify)}
}

func (p *MillbrookParser) Name() string {
	return "millbrook"
}

func (p *MillbrookParser) SupportedExtension() string {
	return ".xlsx"
}

// Identify fingerprints the header block of the first sheet.
func (p *MillbrookParser) Identify(doc *decoder.Document) *Match {
	g := doc.FirstGrid()
	if g == nil {
		return nil
	}
	if !equalsFold(g.CellRef("A2"), "Order ref") || !equalsFold(g.CellRef("A4"), "Total units") {
		return nil
	}
	customer := p.catalog.CustomerByOrderName(g.CellRef("A1"))
	if customer == nil {
		return nil
	}
	return &Match{Customer: customer}
}

// Parse processes every depot sheet in workbook order. A hard error voids only
// the sheet it occurred on.
func (p *MillbrookParser) Parse(doc *decoder.Document, match *Match, library *model.OrdersLibrary) error {
	if match == nil || match.Customer == nil {
		return errors.New("millbrook: parse invoked without an identified customer")
	}
	if len(doc.SheetOrder) == 0 {
		return errors.New("millbrook: document has no sheets")
	}

	for _, sheetName := range doc.SheetOrder {
		diag := &diagnostics{}
		p.parseSheet(doc.Sheets[sheetName], match.Customer, library, diag)
		diag.report(p.notify, "Millbrook order",
			"Problems were found on sheet "+sheetName+" of "+doc.FileName+":")
	}
	return nil
}

// parseSheet handles one depot sheet.
func (p *MillbrookParser) parseSheet(g *grid.Grid, customer *model.Customer, library *model.OrdersLibrary, diag *diagnostics) {
	depotLabel := g.CellRef("B1")
	depot := p.catalog.DepotByOrderName(customer.ID, depotLabel)
	if depot == nil {
		diag.failf("depot %q is not in the catalog", depotLabel)
		return
	}

	reference := g.CellRef("B2")
	if reference == "" {
		diag.failf("the order reference cell (B2) is empty")
		return
	}

	date, ok := parseDeliveryDate(g.CellRef("B3"))
	if !ok {
		diag.failf("could not read a delivery date from %q", g.CellRef("B3"))
		return
	}

	stated, ok := parseQuantity(g.CellRef("B4"))
	if !ok {
		diag.failf("could not read the stated unit total from %q", g.CellRef("B4"))
		return
	}

	order := model.NewOrder(reference, date, customer.ID, depot.ID)
	sum := 0.0

	for row := millbrookFirstItemRow; ; row++ {
		code := g.Cell(1, row)
		if code == "" {
			break
		}
		cellText := g.Cell(2, row)
		quantity, ok := parseQuantity(cellText)
		if !ok {
			diag.addf("unreadable quantity %q at %s for code %s", cellText, grid.CellReference(2, row), code)
			continue
		}
		sum += quantity

		product := p.catalog.ProductByOrderName(customer.ID, code)
		if product == nil {
			diag.addf("product code %q is not in the catalog; the line was dropped", code)
			order.AddWarning(model.WarningUnknownProduct, "unknown product code "+code)
			continue
		}
		if quantity != 0 {
			order.AddProduct(product.ID, quantity)
		}
	}

	if !withinTolerance(sum, stated, millbrookTolerance) {
		diag.failf("the unit sum %.3f disagrees with the stated total %.3f", sum, stated)
		return
	}
	if len(order.Lines) == 0 {
		return
	}

	if isUnusualDate(date, p.timeNow(), p.leadDays) {
		diag.addf("the delivery date %s is not tomorrow; please double-check it", date.Format("02/01/2006"))
		order.AddWarning(model.WarningUnusualDate,
			"delivery date "+date.Format("02/01/2006")+" is not next-day")
	}

	// Reference guard first: a corrected re-send keeps its reference but may
	// have moved to a depot or date the identity rule would not catch.
	if library.HasOrderWithSameReference(order) {
		diag.addf("an order with reference %s already exists; the duplicate was skipped", reference)
		return
	}
	p.insertOrder(library, order, diag)
}
