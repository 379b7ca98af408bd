// Package parser holds the order-parsing core: the contract every
// customer-format parser implements, the shared helpers, and the per-customer
// parsers themselves. Parsers never log or panic over bad input data; every
// data-quality problem is batched and routed through the injected Notifier.
package parser

import (
	"time"

	"github.com/Patrykz94/OrderReader-sub000/internal/decoder"
	"github.com/Patrykz94/OrderReader-sub000/internal/model"
)

// Notifier is the user-notification collaborator. ShowMessage blocks until the
// user acknowledges; ShowQuestion blocks until the user picks an answer and
// returns true for yes.
type Notifier interface {
	ShowMessage(title, message, buttonLabel string)
	ShowQuestion(title, message, yesLabel, noLabel string) bool
}

// Catalog is the reference-data collaborator. Lookups return nil when nothing
// matches; OrderName lookups are case-insensitive. Depot and product lookups
// are scoped to one customer.
type Catalog interface {
	CustomerByOrderName(name string) *model.Customer
	CustomerByID(id int64) *model.Customer
	HasCustomerOrderName(name string) bool

	DepotByOrderName(customerID int64, name string) *model.Depot
	DepotByID(id int64) *model.Depot
	HasDepotOrderName(customerID int64, name string) bool

	ProductByOrderName(customerID int64, name string) *model.Product
	ProductByID(id int64) *model.Product
	HasProductOrderName(customerID int64, name string) bool

	ProfileByOrderName(name string) *model.CustomerProfile
}

// Match is a successful identification: either a single customer or, for
// consolidated formats, a customer profile.
type Match struct {
	Customer *model.Customer
	Profile  *model.CustomerProfile
}

// Recognized names whoever the document was matched to.
func (m *Match) Recognized() string {
	switch {
	case m == nil:
		return ""
	case m.Customer != nil:
		return m.Customer.Name
	case m.Profile != nil:
		return m.Profile.Name
	default:
		return ""
	}
}

// OrderParser is implemented once per customer document format. Identify
// inspects a decoded document and returns nil when the format is not
// recognized. Parse transforms the document into orders in the library,
// reporting every data problem through the parser's notifier; the error return
// is reserved for structural faults (wrong document shape for the dispatch,
// missing collaborators), never for bad data.
type OrderParser interface {
	Name() string
	SupportedExtension() string
	Identify(doc *decoder.Document) *Match
	Parse(doc *decoder.Document, match *Match, library *model.OrdersLibrary) error
}

// ParseResult records the outcome of parsing one file.
type ParseResult struct {
	FileName    string        `json:"fileName"`
	Parser      string        `json:"parser"`
	Recognized  string        `json:"recognized"` // customer or profile name
	Status      string        `json:"status"`     // imported/skipped/error
	OrdersAdded int           `json:"ordersAdded"`
	Errors      []string      `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// ImportReport aggregates the results of one import run.
type ImportReport struct {
	ImportID    string        `json:"importId"`
	TotalFiles  int           `json:"totalFiles"`
	Imported    int           `json:"imported"`
	Skipped     int           `json:"skipped"`
	TotalOrders int           `json:"totalOrders"`
	Duration    time.Duration `json:"duration"`
	Files       []ParseResult `json:"files"`
}
