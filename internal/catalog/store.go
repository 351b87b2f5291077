// Package catalog is the SQLite-backed product/customer store the CLI
// feeds snapshots from. It stands in for the shop application's
// persistence layer; the interpretation engine itself never touches it,
// it only consumes the snapshot lists.
package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vietshop/voicepilot/pkg/models"
)

//go:embed migration.sql
var migrationSQL string

// Store wraps the SQLite connection.
type Store struct {
	conn *sql.DB
	path string
}

// Open creates or opens the catalog database and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best over a single connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	s := &Store{conn: conn, path: dbPath}
	if _, err := conn.Exec(migrationSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

// Close closes the connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// AddProduct inserts a product and returns its id.
func (s *Store) AddProduct(name string, price float64, unit string) (int64, error) {
	res, err := s.conn.Exec(`INSERT INTO products (name, price, unit) VALUES (?, ?, ?)`, name, price, unit)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product %q: %w", name, err)
	}
	return res.LastInsertId()
}

// AddCustomer inserts a customer and returns its id.
func (s *Store) AddCustomer(name, phone string) (int64, error) {
	res, err := s.conn.Exec(`INSERT INTO customers (name, phone) VALUES (?, ?)`, name, phone)
	if err != nil {
		return 0, fmt.Errorf("failed to insert customer %q: %w", name, err)
	}
	return res.LastInsertId()
}

// Products returns the product snapshot in insertion order. Snapshot
// ordering is part of the contract: the matcher breaks ties by position.
func (s *Store) Products() ([]models.Product, error) {
	rows, err := s.conn.Query(`SELECT id, name, price, unit FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Customers returns the customer snapshot in insertion order.
func (s *Store) Customers() ([]models.Customer, error) {
	rows, err := s.conn.Query(`SELECT id, name, phone FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Seed loads demo data when both tables are empty, so the REPL has
// something to match against out of the box.
func (s *Store) Seed() error {
	var count int
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Bột mì", Price: 25000, Unit: "kg"},
		{Name: "Bột khai", Price: 40000, Unit: "kg"},
		{Name: "Bột cacao", Price: 120000, Unit: "kg"},
		{Name: "Đường đen", Price: 30000, Unit: "kg"},
		{Name: "Đường trắng", Price: 22000, Unit: "kg"},
		{Name: "Sữa đặc", Price: 28000, Unit: "lon"},
		{Name: "Dầu ăn", Price: 45000, Unit: "lít"},
		{Name: "Nước mắm", Price: 38000, Unit: "chai"},
	}
	for _, p := range products {
		if _, err := s.AddProduct(p.Name, p.Price, p.Unit); err != nil {
			return err
		}
	}

	customers := []models.Customer{
		{Name: "Tiệm Hồng", Phone: "0901234567"},
		{Name: "Anh Tuấn", Phone: "0907654321"},
		{Name: "Chị Lan", Phone: "0909998888"},
	}
	for _, c := range customers {
		if _, err := s.AddCustomer(c.Name, c.Phone); err != nil {
			return err
		}
	}
	return nil
}
