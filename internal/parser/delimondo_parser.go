package parser

import (
	"errors"

	"github.com/Patrykz94/OrderReader-sub000/internal/decoder"
	"github.com/Patrykz94/OrderReader-sub000/internal/grid"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// DeliMondo is a consolidator: one workbook carries the orders of every
// customer it distributes for, as a flat list resolved row by row against the
// catalog. Identification yields a customer profile rather than a single
// customer; only profile members may appear in the document.
//
//	A1  profile name
//	A2  "Delivery date:"   B2  date
//	A3  "Ref:"             B3  reference
//	row 5: "Customer" | "Depot" | "Product" | "Quantity"
//	rows 6..: one line each                  (scanned until blank)
//	footer: "Total" | - | - | stated grand total
const (
	delimondoHeaderRow = 5
	delimondoTolerance = 0.01
)

// DeliMondoParser parses the DeliMondo consolidated workbook.
type DeliMondoParser struct {
	baseParser
}

// NewDeliMondoParser wires the parser to its collaborators.
func NewDeliMondoParser(catalog Catalog, notify Notifier) *DeliMondoParser {
	return &DeliMondoParser{baseParser: newBaseParser(catalog, notify)}
}

func (p *DeliMondoParser) Name() string {
	return "delimondo"
}

func (p *DeliMondoParser) SupportedExtension() string {
	return ".xlsx"
}

// Identify matches the title cell against the known profiles.
func (p *DeliMondoParser) Identify(doc *decoder.Document) *Match {
	g := doc.FirstGrid()
	if g == nil {
		return nil
	}
	if !equalsFold(g.Cell(1, delimondoHeaderRow), "Customer") {
		return nil
	}
	profile := p.catalog.ProfileByOrderName(g.CellRef("A1"))
	if profile == nil {
		return nil
	}
	return &Match{Profile: profile}
}

// Parse processes the single consolidated table. The grand total covers every
// row of the document, so a reconciliation failure voids all of it.
func (p *DeliMondoParser) Parse(doc *decoder.Document, match *Match, library *model.OrdersLibrary) error {
	if match == nil || match.Profile == nil {
		return errors.New("delimondo: parse invoked without an identified profile")
	}
	g := doc.FirstGrid()
	if g == nil {
		return errors.New("delimondo: document has no sheet grid")
	}

	diag := &diagnostics{}
	defer diag.report(p.notify, "DeliMondo orders", "Problems were found in "+doc.FileName+":")

	date, ok := parseDeliveryDate(g.CellRef("B2"))
	if !ok {
		diag.failf("could not read a delivery date from %q", g.CellRef("B2"))
		return nil
	}
	reference := g.CellRef("B3")
	if reference == "" {
		diag.failf("the reference cell (B3) is empty")
		return nil
	}

	type orderKey struct {
		customerID int64
		depotID    int64
	}
	orders := make(map[orderKey]*model.Order)
	var keyOrder []orderKey
	unknownProducts := make(map[orderKey][]string)

	sum := 0.0
	row := delimondoHeaderRow + 1
	for ; ; row++ {
		customerLabel := g.Cell(1, row)
		if customerLabel == "" || equalsFold(customerLabel, "Total") {
			break
		}

		quantityText := g.Cell(4, row)
		quantity, ok := parseQuantity(quantityText)
		if !ok {
			diag.addf("unreadable quantity %q at %s", quantityText, grid.CellReference(4, row))
			continue
		}
		sum += quantity

		customer := p.catalog.CustomerByOrderName(customerLabel)
		if customer == nil {
			diag.addf("customer %q (row %d) is not in the catalog; the line was dropped", customerLabel, row)
			continue
		}
		if !match.Profile.HasCustomer(customer.ID) {
			diag.addf("customer %q (row %d) does not belong to the %s profile; the line was dropped",
				customerLabel, row, match.Profile.Name)
			continue
		}

		depotLabel := g.Cell(2, row)
		depot := p.catalog.DepotByOrderName(customer.ID, depotLabel)
		if depot == nil {
			diag.addf("depot %q (row %d) is not in the catalog; the line was dropped", depotLabel, row)
			continue
		}

		key := orderKey{customerID: customer.ID, depotID: depot.ID}

		productLabel := g.Cell(3, row)
		product := p.catalog.ProductByOrderName(customer.ID, productLabel)
		if product == nil {
			diag.addf("product %q (row %d) is not in the catalog; the line was dropped", productLabel, row)
			unknownProducts[key] = append(unknownProducts[key], productLabel)
			continue
		}
		if quantity == 0 {
			continue
		}

		order := orders[key]
		if order == nil {
			order = model.NewOrder(reference, date, customer.ID, depot.ID)
			orders[key] = order
			keyOrder = append(keyOrder, key)
		}
		order.AddProduct(product.ID, quantity)
	}

	stated, ok := parseQuantity(g.Cell(4, row))
	if !ok {
		diag.failf("could not read the stated grand total from %q", g.Cell(4, row))
		return nil
	}
	if !withinTolerance(sum, stated, delimondoTolerance) {
		diag.failf("the quantity sum %.2f disagrees with the stated grand total %.2f", sum, stated)
		return nil
	}

	dateUnusual := isUnusualDate(date, p.timeNow(), p.leadDays)
	if dateUnusual {
		diag.addf("the delivery date %s is not tomorrow; please double-check it", date.Format("02/01/2006"))
	}

	for _, key := range keyOrder {
		order := orders[key]
		if dateUnusual {
			order.AddWarning(model.WarningUnusualDate,
				"delivery date "+date.Format("02/01/2006")+" is not next-day")
		}
		for _, label := range unknownProducts[key] {
			order.AddWarning(model.WarningUnknownProduct, "unknown product "+label)
		}
		p.insertOrder(library, order, diag)
	}

	return nil
}
