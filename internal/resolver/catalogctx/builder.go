// Package catalogctx assembles the read-only context the resolver hands to
// the external generator: the customer's product set and recent orders.
package catalogctx

import (
	"context"
	"sync"

	"catalog-assistant/internal/common/errors"
	"catalog-assistant/internal/common/logger"
	"catalog-assistant/internal/models"
)

// CatalogReader is the slice of the datastore the builder needs.
type CatalogReader interface {
	ProductsForCustomer(ctx context.Context, customerID string) ([]models.Product, error)
	RecentOrders(ctx context.Context, customerID string) ([]models.OrderHistoryEntry, error)
}

type Builder struct {
	store  CatalogReader
	logger logger.Logger
}

func NewBuilder(store CatalogReader, log logger.Logger) *Builder {
	return &Builder{
		store:  store,
		logger: log.With(map[string]interface{}{"stage": "context-build"}),
	}
}

// Build fetches the authorized product set and the recent order history.
// The two fetches are independent and run concurrently; both complete
// before Build returns.
//
// A product fetch failure is fatal: there is no safe fallback when the
// catalog cannot be enumerated. A history fetch failure is logged and the
// context proceeds with an empty history.
func (b *Builder) Build(ctx context.Context, customerID string) (*models.CatalogContext, error) {
	var (
		wg         sync.WaitGroup
		products   []models.Product
		history    []models.OrderHistoryEntry
		productErr error
		historyErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, productErr = b.store.ProductsForCustomer(ctx, customerID)
	}()
	go func() {
		defer wg.Done()
		history, historyErr = b.store.RecentOrders(ctx, customerID)
	}()
	wg.Wait()

	if productErr != nil {
		return nil, errors.NewCatalogFetchError(productErr)
	}

	if historyErr != nil {
		b.logger.Warn("order history fetch failed, proceeding with empty history", map[string]interface{}{
			"customerId": customerID,
			"error":      historyErr.Error(),
		})
		history = nil
	}

	return &models.CatalogContext{
		Products:     products,
		OrderHistory: history,
	}, nil
}
