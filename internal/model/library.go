package model

// OrdersLibrary collects the orders produced by parsing. It owns uniqueness
// enforcement; callers are expected to check HasOrder before AddOrder. The
// library is mutated only from the single import thread, so it carries no lock.
type OrdersLibrary struct {
	orders []*Order
}

// NewOrdersLibrary creates an empty library.
func NewOrdersLibrary() *OrdersLibrary {
	return &OrdersLibrary{}
}

// AddOrder appends the order. No merging happens at this layer; line merging is
// Order.AddProduct's job while the parser still holds the order it is building.
func (l *OrdersLibrary) AddOrder(order *Order) {
	l.orders = append(l.orders, order)
}

// HasOrder reports whether an order with the same (customer, depot, date)
// identity already exists.
func (l *OrdersLibrary) HasOrder(order *Order) bool {
	for _, o := range l.orders {
		if o.SameOrder(order) {
			return true
		}
	}
	return false
}

// HasOrderWithSameReference reports whether any order shares the reference
// string. Used as a secondary duplicate guard by one customer format whose
// date/depot identity is not sufficient.
func (l *OrdersLibrary) HasOrderWithSameReference(order *Order) bool {
	if order.Reference == "" {
		return false
	}
	for _, o := range l.orders {
		if o.Reference == order.Reference {
			return true
		}
	}
	return false
}

// Orders returns all orders in insertion order.
func (l *OrdersLibrary) Orders() []*Order {
	return l.orders
}

// Count returns the number of orders held.
func (l *OrdersLibrary) Count() int {
	return len(l.orders)
}

// OrdersWithID returns every order whose group id matches.
func (l *OrdersLibrary) OrdersWithID(groupID string) []*Order {
	var result []*Order
	for _, o := range l.orders {
		if o.GroupID() == groupID {
			result = append(result, o)
		}
	}
	return result
}

// UniqueOrderIDs returns the distinct group ids in first-seen order.
func (l *OrdersLibrary) UniqueOrderIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, o := range l.orders {
		id := o.GroupID()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// RemoveOrdersWithID deletes every order whose group id matches and returns the
// number removed.
func (l *OrdersLibrary) RemoveOrdersWithID(groupID string) int {
	kept := l.orders[:0]
	removed := 0
	for _, o := range l.orders {
		if o.GroupID() == groupID {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	l.orders = kept
	return removed
}
