package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nutrilens/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	barcode TEXT,
	name TEXT NOT NULL,
	brand TEXT,
	data_hash TEXT UNIQUE,
	product_data TEXT,
	health_score TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_barcode ON products(barcode);
CREATE INDEX IF NOT EXISTS idx_name ON products(name);
`

// SQLiteStore persists analysis history in a local SQLite database. Records
// are keyed by content hash; re-saving the same hash overwrites the previous
// row (most-recent-update-wins).
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the database at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// modernc sqlite serializes writes through a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts a product record by content hash.
func (s *SQLiteStore) Save(ctx context.Context, record *domain.ProductRecord) error {
	if record == nil || record.DataHash == "" {
		return domain.ErrInvalidRequest
	}

	productJSON, err := json.Marshal(record.Product)
	if err != nil {
		return fmt.Errorf("encoding product: %w", err)
	}
	scoreJSON, err := json.Marshal(record.Score)
	if err != nil {
		return fmt.Errorf("encoding score: %w", err)
	}

	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO products
		(barcode, name, brand, data_hash, product_data, health_score, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Product.Barcode,
		record.Product.Name,
		record.Product.Brand,
		record.DataHash,
		string(productJSON),
		string(scoreJSON),
		updatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// GetByBarcode returns the most recently updated record for a barcode, or
// domain.ErrProductNotFound.
func (s *SQLiteStore) GetByBarcode(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT data_hash, product_data, health_score, updated_at FROM products
		WHERE barcode = ? ORDER BY updated_at DESC LIMIT 1`, barcode)

	var hash, productJSON, scoreJSON, updatedAt string
	if err := row.Scan(&hash, &productJSON, &scoreJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	record := &domain.ProductRecord{DataHash: hash}
	if err := json.Unmarshal([]byte(productJSON), &record.Product); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	if err := json.Unmarshal([]byte(scoreJSON), &record.Score); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		record.UpdatedAt = ts
	}

	return record, nil
}

// Search returns summaries whose name or brand contains the query,
// newest first.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]domain.ProductSummary, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, brand, barcode, health_score, updated_at FROM products
		WHERE name LIKE ? OR brand LIKE ?
		ORDER BY updated_at DESC LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Recent returns the most recently analyzed products.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.ProductSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, brand, barcode, health_score, updated_at FROM products
		ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]domain.ProductSummary, error) {
	summaries := []domain.ProductSummary{}
	for rows.Next() {
		var name, brand, barcode, scoreJSON, updatedAt string
		if err := rows.Scan(&name, &brand, &barcode, &scoreJSON, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}

		var score domain.HealthScore
		if err := json.Unmarshal([]byte(scoreJSON), &score); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
		}

		summary := domain.ProductSummary{
			Name:    name,
			Brand:   brand,
			Barcode: barcode,
			Score:   score.OverallScore,
			Band:    score.Band,
		}
		if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			summary.UpdatedAt = ts
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return summaries, nil
}
