package model

import (
	"fmt"
	"time"
)

// OrderWarningType classifies the non-fatal problems recorded on an order.
type OrderWarningType string

const (
	WarningUnusualDate    OrderWarningType = "unusual_date"
	WarningUnknownProduct OrderWarningType = "unknown_product"
)

// OrderWarning is attached to an order without blocking its creation and is
// surfaced to the user alongside the order.
type OrderWarning struct {
	Type    OrderWarningType `json:"type"`
	Message string           `json:"message"`
}

// OrderLine is one product-quantity entry of an order.
type OrderLine struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// Order is the set of product lines for one customer+depot+delivery-date
// combination. Identity for duplicate detection is exactly that triple; the
// reference and the lines play no part in it.
type Order struct {
	Reference  string         `json:"reference"`
	Date       time.Time      `json:"date"`
	CustomerID int64          `json:"customerId"`
	DepotID    int64          `json:"depotId"`
	Lines      []OrderLine    `json:"lines"`
	Warnings   []OrderWarning `json:"warnings"`
}

// NewOrder creates an empty order for one depot and delivery date.
func NewOrder(reference string, date time.Time, customerID, depotID int64) *Order {
	return &Order{
		Reference:  reference,
		Date:       date,
		CustomerID: customerID,
		DepotID:    depotID,
	}
}

// AddProduct appends a line, merging the quantity into an existing line when
// the product is already present.
func (o *Order) AddProduct(productID int64, quantity float64) {
	for i := range o.Lines {
		if o.Lines[i].ProductID == productID {
			o.Lines[i].Quantity += quantity
			return
		}
	}
	o.Lines = append(o.Lines, OrderLine{ProductID: productID, Quantity: quantity})
}

// AddWarning records a non-fatal problem on the order.
func (o *Order) AddWarning(warningType OrderWarningType, message string) {
	o.Warnings = append(o.Warnings, OrderWarning{Type: warningType, Message: message})
}

// HasWarning reports whether a warning of the given type is present.
func (o *Order) HasWarning(warningType OrderWarningType) bool {
	for _, w := range o.Warnings {
		if w.Type == warningType {
			return true
		}
	}
	return false
}

// TotalQuantity sums the quantities across all lines.
func (o *Order) TotalQuantity() float64 {
	total := 0.0
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}

// SameOrder reports whether the other order has the same identity: equal
// customer, equal depot, same calendar day.
func (o *Order) SameOrder(other *Order) bool {
	return o.CustomerID == other.CustomerID &&
		o.DepotID == other.DepotID &&
		sameDay(o.Date, other.Date)
}

// GroupID derives the composite id used to group and remove orders of one
// customer and delivery date.
func (o *Order) GroupID() string {
	return fmt.Sprintf("%d-%d-%d-%d", o.CustomerID, o.Date.Year(), int(o.Date.Month()), o.Date.Day())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
