// Package models holds the shared domain types for the order-intent
// resolver. Types here carry no behavior beyond normalization; all logic
// lives in the packages that operate on them.
package models

// Product is one entry in a customer's authorized catalog. CustomerNote is
// the customer's own annotation for the product and is empty when none is
// stored.
type Product struct {
	ID           string `json:"id" db:"id"`
	ItemNumber   string `json:"itemNumber" db:"item_number"`
	Description  string `json:"description" db:"description"`
	Category     string `json:"category" db:"category"`
	CustomerNote string `json:"customerNote" db:"note"`
}

// OrderItem is one line of a past order.
type OrderItem struct {
	ItemNumber   string `json:"itemNumber"`
	Description  string `json:"description"`
	Quantity     int    `json:"quantity"`
	CustomerNote string `json:"customerNote"`
}

// OrderHistoryEntry is one past order, date formatted as YYYY-MM-DD.
type OrderHistoryEntry struct {
	Date  string      `json:"date"`
	Items []OrderItem `json:"items"`
}

// CatalogContext is the read-only context assembled for one resolution:
// the customer's product set plus their recent orders, most recent first.
type CatalogContext struct {
	Products     []Product
	OrderHistory []OrderHistoryEntry
}
