package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Patrykz94/OrderReader-sub000/internal/decoder"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// Sunrise faxes its orders as PDFs, one depot per page. PDF extraction does
// not preserve a reliable 2-D layout, so this parser works on raw text lines
// with labelled anchors instead of the grid abstraction:
//
//	SUNRISE WHOLESALE LTD
//	PO: SW-10293
//	Depot: <depot name>
//	Delivery date: 02/09/2026
//	Code  Description  Qty
//	<code> <description> <quantity>
//	...
//	Total units: 36
const sunriseTolerance = 0.001

// sunriseItemPattern matches an item line: code, free-text description, and a
// trailing quantity.
var sunriseItemPattern = regexp.MustCompile(`^(\S+)\s+(.+?)\s+(-?\d+(?:\.\d+)?)$`)

// SunriseParser parses the Sunrise PDF purchase order.
type SunriseParser struct {
	baseParser
}

// NewSunriseParser wires the parser to its collaborators.
func NewSunriseParser(catalog Catalog, notify Notifier) *SunriseParser {
	return &SunriseParser{baseParser: newBaseParser(catalog, notify)}
}

func (p *SunriseParser) Name() string {
	return "sunrise"
}

func (p *SunriseParser) SupportedExtension() string {
	return ".pdf"
}

// Identify matches the letterhead on the first page against the catalog.
func (p *SunriseParser) Identify(doc *decoder.Document) *Match {
	if len(doc.Pages) == 0 || len(doc.Pages[0]) == 0 {
		return nil
	}
	customer := p.catalog.CustomerByOrderName(doc.Pages[0][0])
	if customer == nil {
		return nil
	}
	if lineValue(doc.Pages[0], "PO:") == "" {
		return nil
	}
	return &Match{Customer: customer}
}

// Parse processes every page in order; each page is one depot's table. A hard
// error voids that page only, and the user chooses whether the remaining pages
// are still attempted.
func (p *SunriseParser) Parse(doc *decoder.Document, match *Match, library *model.OrdersLibrary) error {
	if match == nil || match.Customer == nil {
		return errors.New("sunrise: parse invoked without an identified customer")
	}
	if len(doc.Pages) == 0 {
		return errors.New("sunrise: document has no extracted pages")
	}

	for i, page := range doc.Pages {
		diag := &diagnostics{}
		p.parsePage(page, match.Customer, library, diag)
		diag.report(p.notify, "Sunrise order",
			fmt.Sprintf("Problems were found in %s (page %d of %d):", doc.FileName, i+1, len(doc.Pages)))

		if diag.fatal && i < len(doc.Pages)-1 {
			carryOn := p.notify.ShowQuestion("Sunrise order",
				fmt.Sprintf("Page %d of %d could not be processed. Continue with the remaining pages?",
					i+1, len(doc.Pages)),
				"Continue", "Cancel")
			if !carryOn {
				return nil
			}
		}
	}
	return nil
}

// parsePage handles one depot page.
func (p *SunriseParser) parsePage(page []string, customer *model.Customer, library *model.OrdersLibrary, diag *diagnostics) {
	reference := lineValue(page, "PO:")
	if reference == "" {
		diag.failf("no PO line was found on the page")
		return
	}

	depotLabel := lineValue(page, "Depot:")
	depot := p.catalog.DepotByOrderName(customer.ID, depotLabel)
	if depot == nil {
		diag.failf("depot %q is not in the catalog", depotLabel)
		return
	}

	date, ok := parseDeliveryDate(lineValue(page, "Delivery date:"))
	if !ok {
		diag.failf("could not read a delivery date from %q", lineValue(page, "Delivery date:"))
		return
	}

	statedText := lineValue(page, "Total units:")
	stated, ok := parseQuantity(statedText)
	if !ok {
		diag.failf("could not read the stated unit total from %q", statedText)
		return
	}

	order := model.NewOrder(reference, date, customer.ID, depot.ID)
	sum := 0.0

	for _, line := range itemLines(page) {
		m := sunriseItemPattern.FindStringSubmatch(line)
		if m == nil {
			diag.addf("unreadable item line %q", line)
			continue
		}
		code := m[1]
		quantity, ok := parseQuantity(m[3])
		if !ok {
			diag.addf("unreadable quantity %q for code %s", m[3], code)
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

	if !withinTolerance(sum, stated, sunriseTolerance) {
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

	p.insertOrder(library, order, diag)
}

// lineValue finds the first line starting with the label and returns the rest
// of that line.
func lineValue(page []string, label string) string {
	for _, line := range page {
		line = strings.TrimSpace(line)
		if len(line) >= len(label) && strings.EqualFold(line[:len(label)], label) {
			return strings.TrimSpace(line[len(label):])
		}
	}
	return ""
}

// itemLines returns the lines between the column header and the stated total.
func itemLines(page []string) []string {
	var items []string
	inTable := false
	for _, line := range page {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inTable:
			fields := strings.Fields(trimmed)
			if len(fields) == 3 && strings.EqualFold(fields[0], "Code") && strings.EqualFold(fields[2], "Qty") {
				inTable = true
			}
		case strings.HasPrefix(strings.ToLower(trimmed), "total units:"):
			return items
		case trimmed != "":
			items = append(items, trimmed)
		}
	}
	return items
}
