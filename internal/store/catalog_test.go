package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProductsForCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "item_number", "description", "category", "note"}).
		AddRow("p1", "NAP-100", "Dinner Napkins White", "Paper Goods", "the good napkins").
		AddRow("p2", "GLV-10", "Nitrile Gloves Large", "Safety", "")

	mock.ExpectQuery(`SELECT p\.id, p\.item_number, p\.description`).
		WithArgs("cust-1").
		WillReturnRows(rows)

	store := NewCatalogStore(db)
	products, err := store.ProductsForCustomer(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "NAP-100", products[0].ItemNumber)
	assert.Equal(t, "the good napkins", products[0].CustomerNote)
	assert.Equal(t, "", products[1].CustomerNote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsForCustomer_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT p\.id, p\.item_number, p\.description`).
		WithArgs("cust-1").
		WillReturnError(errors.New("connection reset"))

	store := NewCatalogStore(db)
	_, err = store.ProductsForCustomer(context.Background(), "cust-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query customer products")
}

func TestProductsForCustomer_EmptyCatalog(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT p\.id, p\.item_number, p\.description`).
		WithArgs("cust-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_number", "description", "category", "note"}))

	store := NewCatalogStore(db)
	products, err := store.ProductsForCustomer(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestRecentOrders_GroupsByOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	newer := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	older := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "created_at", "item_number", "description", "quantity", "note"}).
		AddRow("o2", newer, "NAP-100", "Dinner Napkins White", 4, "the good napkins").
		AddRow("o2", newer, "GLV-10", "Nitrile Gloves Large", 1, "").
		AddRow("o1", older, "NAP-100", "Dinner Napkins White", 2, "the good napkins")

	mock.ExpectQuery(`SELECT o\.id, o\.created_at`).
		WithArgs("cust-1", RecentOrderLimit).
		WillReturnRows(rows)

	store := NewCatalogStore(db)
	history, err := store.RecentOrders(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Len(t, history, 2)

	assert.Equal(t, "2026-08-25", history[0].Date)
	assert.Len(t, history[0].Items, 2)
	assert.Equal(t, 4, history[0].Items[0].Quantity)

	assert.Equal(t, "2026-08-10", history[1].Date)
	assert.Len(t, history[1].Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentOrders_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT o\.id, o\.created_at`).
		WithArgs("cust-1", RecentOrderLimit).
		WillReturnError(errors.New("relation missing"))

	store := NewCatalogStore(db)
	_, err = store.RecentOrders(context.Background(), "cust-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query recent orders")
}

func TestRecentOrders_NoHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT o\.id, o\.created_at`).
		WithArgs("cust-1", RecentOrderLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "item_number", "description", "quantity", "note"}))

	store := NewCatalogStore(db)
	history, err := store.RecentOrders(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Empty(t, history)
}
