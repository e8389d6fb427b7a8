// Package store provides read-only access to the catalog/order datastore.
// The resolver never writes: ownership of the data lives with the ordering
// surfaces, which are separate services.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"catalog-assistant/internal/models"
)

// RecentOrderLimit is how many prior orders are projected into context.
const RecentOrderLimit = 3

type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// ProductsForCustomer returns the customer's authorized product set, each
// row carrying the customer's own note (empty string when none is stored).
// Rows come back in stable item-number order so downstream matching is
// reproducible.
func (s *CatalogStore) ProductsForCustomer(ctx context.Context, customerID string) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.item_number, p.description,
		       COALESCE(p.category, ''), COALESCE(cp.note, '')
		FROM products p
		JOIN customer_products cp ON cp.product_id = p.id
		WHERE cp.customer_id = $1
		ORDER BY p.item_number`, customerID)
	if err != nil {
		return nil, fmt.Errorf("query customer products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.ItemNumber, &p.Description, &p.Category, &p.CustomerNote); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// RecentOrders returns up to RecentOrderLimit most recent orders for the
// customer, each expanded to item descriptions, quantities, and notes.
func (s *CatalogStore) RecentOrders(ctx context.Context, customerID string) ([]models.OrderHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.created_at, p.item_number, p.description,
		       oi.quantity, COALESCE(cp.note, '')
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		LEFT JOIN customer_products cp
		       ON cp.customer_id = o.customer_id AND cp.product_id = p.id
		WHERE o.id IN (
			SELECT id FROM orders
			WHERE customer_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)
		ORDER BY o.created_at DESC, o.id, p.item_number`, customerID, RecentOrderLimit)
	if err != nil {
		return nil, fmt.Errorf("query recent orders: %w", err)
	}
	defer rows.Close()

	var (
		history    []models.OrderHistoryEntry
		currentID  string
		currentIdx = -1
	)
	for rows.Next() {
		var (
			orderID   string
			createdAt time.Time
			item      models.OrderItem
		)
		if err := rows.Scan(&orderID, &createdAt, &item.ItemNumber, &item.Description, &item.Quantity, &item.CustomerNote); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		if orderID != currentID {
			history = append(history, models.OrderHistoryEntry{
				Date: createdAt.Format("2006-01-02"),
			})
			currentID = orderID
			currentIdx++
		}
		history[currentIdx].Items = append(history[currentIdx].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return history, nil
}
