package model

// Customer is one purchase-order sender. OrderName is the literal string a
// parser expects to find inside that customer's documents; CSVName is the label
// used when orders are re-emitted downstream.
type Customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CSVName   string `json:"csvName"`
	OrderName string `json:"orderName"`
}

// Depot is a delivery location belonging to a customer.
type Depot struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
	CSVName    string `json:"csvName"`
	OrderName  string `json:"orderName"`
}

// Product is a catalog item belonging to a customer.
type Product struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customerId"`
	Name       string  `json:"name"`
	CSVName    string  `json:"csvName"`
	OrderName  string  `json:"orderName"`
	Price      float64 `json:"price"`
}

// CustomerProfile groups the customers that share one consolidated document
// format. Parsers for such formats identify the profile rather than a single
// customer and resolve the customer per section while parsing.
type CustomerProfile struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	OrderName   string  `json:"orderName"`
	CustomerIDs []int64 `json:"customerIds"`
}

// HasCustomer reports whether the given customer belongs to the profile.
func (p *CustomerProfile) HasCustomer(customerID int64) bool {
	for _, id := range p.CustomerIDs {
		if id == customerID {
			return true
		}
	}
	return false
}
