package store

import (
	"database/sql"
	"fmt"

	"github.com/Patrykz94/OrderReader-sub000/internal/model"
	"github.com/Patrykz94/OrderReader-sub000/internal/parser"
)

// The store is the real reference catalog the parsers run against.
var _ parser.Catalog = (*Store)(nil)

// ---- customers ----

// ListCustomers returns every customer ordered by name.
func (s *Store) ListCustomers() ([]*model.Customer, error) {
	rows, err := s.db.Query(`SELECT id, name, csv_name, order_name FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Customer
	for rows.Next() {
		c := &model.Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CSVName, &c.OrderName); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// AddCustomer inserts a customer and returns it with its id filled in.
func (s *Store) AddCustomer(c *model.Customer) error {
	res, err := s.db.Exec(`INSERT INTO customers (name, csv_name, order_name) VALUES (?, ?, ?)`,
		c.Name, c.CSVName, c.OrderName)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	c.ID, err = res.LastInsertId()
	return err
}

// DeleteCustomer removes a customer and, via the schema, its depots/products.
func (s *Store) DeleteCustomer(id int64) error {
	_, err := s.db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	return err
}

func (s *Store) scanCustomer(row *sql.Row) *model.Customer {
	c := &model.Customer{}
	if err := row.Scan(&c.ID, &c.Name, &c.CSVName, &c.OrderName); err != nil {
		return nil
	}
	return c
}

// CustomerByOrderName looks a customer up by the name used inside documents.
func (s *Store) CustomerByOrderName(name string) *model.Customer {
	return s.scanCustomer(s.db.QueryRow(
		`SELECT id, name, csv_name, order_name FROM customers WHERE order_name = ?`, name))
}

// CustomerByID looks a customer up by id.
func (s *Store) CustomerByID(id int64) *model.Customer {
	return s.scanCustomer(s.db.QueryRow(
		`SELECT id, name, csv_name, order_name FROM customers WHERE id = ?`, id))
}

// HasCustomerOrderName reports whether a customer with this order name exists.
func (s *Store) HasCustomerOrderName(name string) bool {
	return s.CustomerByOrderName(name) != nil
}

// ---- depots ----

// ListDepots returns a customer's depots ordered by name.
func (s *Store) ListDepots(customerID int64) ([]*model.Depot, error) {
	rows, err := s.db.Query(
		`SELECT id, customer_id, name, csv_name, order_name FROM depots WHERE customer_id = ? ORDER BY name`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Depot
	for rows.Next() {
		d := &model.Depot{}
		if err := rows.Scan(&d.ID, &d.CustomerID, &d.Name, &d.CSVName, &d.OrderName); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// AddDepot inserts a depot and returns it with its id filled in.
func (s *Store) AddDepot(d *model.Depot) error {
	res, err := s.db.Exec(
		`INSERT INTO depots (customer_id, name, csv_name, order_name) VALUES (?, ?, ?, ?)`,
		d.CustomerID, d.Name, d.CSVName, d.OrderName)
	if err != nil {
		return fmt.Errorf("failed to insert depot: %w", err)
	}
	d.ID, err = res.LastInsertId()
	return err
}

// DeleteDepot removes a depot.
func (s *Store) DeleteDepot(id int64) error {
	_, err := s.db.Exec(`DELETE FROM depots WHERE id = ?`, id)
	return err
}

func (s *Store) scanDepot(row *sql.Row) *model.Depot {
	d := &model.Depot{}
	if err := row.Scan(&d.ID, &d.CustomerID, &d.Name, &d.CSVName, &d.OrderName); err != nil {
		return nil
	}
	return d
}

// DepotByOrderName looks a depot up within one customer's catalog.
func (s *Store) DepotByOrderName(customerID int64, name string) *model.Depot {
	return s.scanDepot(s.db.QueryRow(
		`SELECT id, customer_id, name, csv_name, order_name FROM depots WHERE customer_id = ? AND order_name = ?`,
		customerID, name))
}

// DepotByID looks a depot up by id.
func (s *Store) DepotByID(id int64) *model.Depot {
	return s.scanDepot(s.db.QueryRow(
		`SELECT id, customer_id, name, csv_name, order_name FROM depots WHERE id = ?`, id))
}

// HasDepotOrderName reports whether the customer has a depot with this order name.
func (s *Store) HasDepotOrderName(customerID int64, name string) bool {
	return s.DepotByOrderName(customerID, name) != nil
}

// ---- products ----

// ListProducts returns a customer's products ordered by name.
func (s *Store) ListProducts(customerID int64) ([]*model.Product, error) {
	rows, err := s.db.Query(
		`SELECT id, customer_id, name, csv_name, order_name, price FROM products WHERE customer_id = ? ORDER BY name`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Product
	for rows.Next() {
		p := &model.Product{}
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Name, &p.CSVName, &p.OrderName, &p.Price); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// AddProduct inserts a product and returns it with its id filled in.
func (s *Store) AddProduct(p *model.Product) error {
	res, err := s.db.Exec(
		`INSERT INTO products (customer_id, name, csv_name, order_name, price) VALUES (?, ?, ?, ?, ?)`,
		p.CustomerID, p.Name, p.CSVName, p.OrderName, p.Price)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	p.ID, err = res.LastInsertId()
	return err
}

// DeleteProduct removes a product.
func (s *Store) DeleteProduct(id int64) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

func (s *Store) scanProduct(row *sql.Row) *model.Product {
	p := &model.Product{}
	if err := row.Scan(&p.ID, &p.CustomerID, &p.Name, &p.CSVName, &p.OrderName, &p.Price); err != nil {
		return nil
	}
	return p
}

// ProductByOrderName looks a product up within one customer's catalog.
func (s *Store) ProductByOrderName(customerID int64, name string) *model.Product {
	return s.scanProduct(s.db.QueryRow(
		`SELECT id, customer_id, name, csv_name, order_name, price FROM products WHERE customer_id = ? AND order_name = ?`,
		customerID, name))
}

// ProductByID looks a product up by id.
func (s *Store) ProductByID(id int64) *model.Product {
	return s.scanProduct(s.db.QueryRow(
		`SELECT id, customer_id, name, csv_name, order_name, price FROM products WHERE id = ?`, id))
}

// HasProductOrderName reports whether the customer has a product with this order name.
func (s *Store) HasProductOrderName(customerID int64, name string) bool {
	return s.ProductByOrderName(customerID, name) != nil
}

// ---- profiles ----

// AddProfile inserts a profile with its member customers.
func (s *Store) AddProfile(p *model.CustomerProfile) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO customer_profiles (name, order_name) VALUES (?, ?)`,
		p.Name, p.OrderName)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	for _, customerID := range p.CustomerIDs {
		if _, err := tx.Exec(`INSERT INTO profile_members (profile_id, customer_id) VALUES (?, ?)`,
			p.ID, customerID); err != nil {
			return fmt.Errorf("failed to insert profile member: %w", err)
		}
	}
	return tx.Commit()
}

// ProfileByOrderName looks a profile up by the name used inside documents.
func (s *Store) ProfileByOrderName(name string) *model.CustomerProfile {
	p := &model.CustomerProfile{}
	row := s.db.QueryRow(`SELECT id, name, order_name FROM customer_profiles WHERE order_name = ?`, name)
	if err := row.Scan(&p.ID, &p.Name, &p.OrderName); err != nil {
		return nil
	}

	rows, err := s.db.Query(`SELECT customer_id FROM profile_members WHERE profile_id = ?`, p.ID)
	if err != nil {
		return nil
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil
		}
		p.CustomerIDs = append(p.CustomerIDs, id)
	}
	return p
}
