package parser

import (
	"time"

	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// baseParser carries the collaborators shared by every customer parser. The
// catalog and notifier are constructor-injected; parsers keep no per-document
// state on themselves, so one instance can be reused across imports.
type baseParser struct {
	catalog  Catalog
	notify   Notifier
	now      func() time.Time // overridable in tests
	leadDays int              // days between processing and delivery
}

func newBaseParser(catalog Catalog, notify Notifier) baseParser {
	return baseParser{catalog: catalog, notify: notify, now: time.Now, leadDays: 1}
}

func (b *baseParser) timeNow() time.Time {
	return b.now()
}

// SetDeliveryLeadDays changes how many days ahead a normal delivery date sits.
// Non-positive values are ignored and the next-day default stays.
func (b *baseParser) SetDeliveryLeadDays(days int) {
	if days > 0 {
		b.leadDays = days
	}
}

// insertOrder adds the order to the library unless an order with the same
// (customer, depot, date) identity already exists. A duplicate is recorded as a
// problem and skipped; existing orders are never overwritten.
func (b *baseParser) insertOrder(library *model.OrdersLibrary, order *model.Order, diag *diagnostics) bool {
	if library.HasOrder(order) {
		depotName := "unknown depot"
		if depot := b.catalog.DepotByID(order.DepotID); depot != nil {
			depotName = depot.Name
		}
		diag.addf("an order for %s on %s already exists; the duplicate was skipped",
			depotName, order.Date.Format("02/01/2006"))
		return false
	}
	library.AddOrder(order)
	return true
}
