package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fieldfab/internal"
)

const populatedKey = "catalog.populated"

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_name TEXT NOT NULL,
  product_url TEXT NOT NULL DEFAULT '',
  short_description TEXT NOT NULL DEFAULT '',
  manufacturer TEXT NOT NULL DEFAULT '',
  search_text TEXT NOT NULL DEFAULT '',
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(product_name);
CREATE INDEX IF NOT EXISTS idx_products_manufacturer ON products(manufacturer);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertProducts persists the batch in one transaction and returns the
// assigned ids in insertion order.
func (d *DB) InsertProducts(products []internal.ProductRecord) ([]int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	ids, err := insertProductsTx(tx, products)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// InsertCatalog inserts the batch and marks the store populated in the same
// transaction, so a partial failure can never leave populated=true with
// records missing.
func (d *DB) InsertCatalog(products []internal.ProductRecord) ([]int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	ids, err := insertProductsTx(tx, products)
	if err != nil {
		return nil, err
	}
	if err := setMetadataTx(tx, populatedKey, "true"); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

func insertProductsTx(tx *sql.Tx, products []internal.ProductRecord) ([]int64, error) {
	stmt, err := tx.Prepare(`
INSERT INTO products (product_name, product_url, short_description, manufacturer, search_text)
VALUES (?, ?, ?, ?, ?)
`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		res, err := stmt.Exec(p.ProductName, p.ProductURL, p.ShortDescription, p.Manufacturer, p.SearchText)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (d *DB) ListProducts() ([]internal.ProductRecord, error) {
	rows, err := d.conn.Query(`
SELECT id, product_name, product_url, short_description, manufacturer, search_text
FROM products ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ProductRecord
	for rows.Next() {
		var p internal.ProductRecord
		if err := rows.Scan(&p.ID, &p.ProductName, &p.ProductURL, &p.ShortDescription, &p.Manufacturer, &p.SearchText); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (d *DB) GetProduct(id int64) (*internal.ProductRecord, error) {
	var p internal.ProductRecord
	err := d.conn.QueryRow(`
SELECT id, product_name, product_url, short_description, manufacturer, search_text
FROM products WHERE id = ?`, id).Scan(
		&p.ID, &p.ProductName, &p.ProductURL, &p.ShortDescription, &p.Manufacturer, &p.SearchText,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DB) CountProducts() (int, error) {
	var count int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

func (d *DB) Manufacturers() ([]string, error) {
	rows, err := d.conn.Query(`
SELECT DISTINCT manufacturer FROM products WHERE manufacturer != '' ORDER BY manufacturer ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (d *DB) IsPopulated() (bool, error) {
	value, err := d.GetMetadata(populatedKey)
	if err != nil {
		return false, err
	}
	return value != nil && *value == "true", nil
}

func (d *DB) SetPopulated(populated bool) error {
	if populated {
		return d.SetMetadata(populatedKey, "true")
	}
	return d.SetMetadata(populatedKey, "false")
}

// Clear removes every record and resets the populated flag in one
// transaction, so both changes become visible together.
func (d *DB) Clear() error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM metadata WHERE key = ?`, populatedKey); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func setMetadataTx(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}
