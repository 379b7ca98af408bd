package store

import (
	"strings"
	"sync"

	"github.com/Patrykz94/OrderReader-sub000/internal/model"
	"github.com/Patrykz94/OrderReader-sub000/internal/parser"
)

var _ parser.Catalog = (*MemoryCatalog)(nil)

// MemoryCatalog is a catalog held entirely in memory. It backs tests and
// ad-hoc runs that do not want a database file on disk.
type MemoryCatalog struct {
	mu        sync.RWMutex
	nextID    int64
	customers []*model.Customer
	depots    []*model.Depot
	products  []*model.Product
	profiles  []*model.CustomerProfile
}

// NewMemoryCatalog returns an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{nextID: 1}
}

func (m *MemoryCatalog) allocID() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// AddCustomer registers a customer, assigning an id when none is set.
func (m *MemoryCatalog) AddCustomer(c *model.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.allocID()
	}
	m.customers = append(m.customers, c)
}

// AddDepot registers a depot, assigning an id when none is set.
func (m *MemoryCatalog) AddDepot(d *model.Depot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID == 0 {
		d.ID = m.allocID()
	}
	m.depots = append(m.depots, d)
}

// AddProduct registers a product, assigning an id when none is set.
func (m *MemoryCatalog) AddProduct(p *model.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.allocID()
	}
	m.products = append(m.products, p)
}

// AddProfile registers a customer profile, assigning an id when none is set.
func (m *MemoryCatalog) AddProfile(p *model.CustomerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.allocID()
	}
	m.profiles = append(m.profiles, p)
}

func (m *MemoryCatalog) CustomerByOrderName(name string) *model.Customer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if strings.EqualFold(c.OrderName, name) {
			return c
		}
	}
	return nil
}

func (m *MemoryCatalog) CustomerByID(id int64) *model.Customer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *MemoryCatalog) HasCustomerOrderName(name string) bool {
	return m.CustomerByOrderName(name) != nil
}

func (m *MemoryCatalog) DepotByOrderName(customerID int64, name string) *model.Depot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.depots {
		if d.CustomerID == customerID && strings.EqualFold(d.OrderName, name) {
			return d
		}
	}
	return nil
}

func (m *MemoryCatalog) DepotByID(id int64) *model.Depot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.depots {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (m *MemoryCatalog) HasDepotOrderName(customerID int64, name string) bool {
	return m.DepotByOrderName(customerID, name) != nil
}

func (m *MemoryCatalog) ProductByOrderName(customerID int64, name string) *model.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.CustomerID == customerID && strings.EqualFold(p.OrderName, name) {
			return p
		}
	}
	return nil
}

func (m *MemoryCatalog) ProductByID(id int64) *model.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *MemoryCatalog) HasProductOrderName(customerID int64, name string) bool {
	return m.ProductByOrderName(customerID, name) != nil
}

func (m *MemoryCatalog) ProfileByOrderName(name string) *model.CustomerProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.profiles {
		if strings.EqualFold(p.OrderName, name) {
			return p
		}
	}
	return nil
}
