package catalogctx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	stderrors "catalog-assistant/internal/common/errors"
	"catalog-assistant/internal/common/logger"
	"catalog-assistant/internal/models"
)

// fakeReader returns canned data or errors for both fetches.
type fakeReader struct {
	products   []models.Product
	history    []models.OrderHistoryEntry
	productErr error
	historyErr error
}

func (f *fakeReader) ProductsForCustomer(ctx context.Context, customerID string) ([]models.Product, error) {
	return f.products, f.productErr
}

func (f *fakeReader) RecentOrders(ctx context.Context, customerID string) ([]models.OrderHistoryEntry, error) {
	return f.history, f.historyErr
}

func TestBuild_Success(t *testing.T) {
	reader := &fakeReader{
		products: []models.Product{{ID: "p1", ItemNumber: "NAP-100"}},
		history:  []models.OrderHistoryEntry{{Date: "2026-08-20"}},
	}
	builder := NewBuilder(reader, logger.NewTestLogger(t))

	catalog, err := builder.Build(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Len(t, catalog.Products, 1)
	assert.Len(t, catalog.OrderHistory, 1)
}

func TestBuild_ProductFetchFailureIsFatal(t *testing.T) {
	reader := &fakeReader{
		productErr: errors.New("connection reset"),
		history:    []models.OrderHistoryEntry{{Date: "2026-08-20"}},
	}
	builder := NewBuilder(reader, logger.NewTestLogger(t))

	catalog, err := builder.Build(context.Background(), "cust-1")

	assert.Nil(t, catalog)
	assert.Error(t, err)

	var stdErr *stderrors.StandardError
	assert.ErrorAs(t, err, &stdErr)
	assert.Equal(t, stderrors.ErrCodeCatalogFetchFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestBuild_HistoryFetchFailureIsNotFatal(t *testing.T) {
	reader := &fakeReader{
		products:   []models.Product{{ID: "p1"}},
		historyErr: errors.New("query timeout"),
	}
	builder := NewBuilder(reader, logger.NewTestLogger(t))

	catalog, err := builder.Build(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Len(t, catalog.Products, 1)
	assert.Empty(t, catalog.OrderHistory)
}

func TestBuild_EmptyCatalog(t *testing.T) {
	builder := NewBuilder(&fakeReader{}, logger.NewTestLogger(t))

	catalog, err := builder.Build(context.Background(), "cust-1")

	assert.NoError(t, err)
	assert.Empty(t, catalog.Products)
	assert.Empty(t, catalog.OrderHistory)
}
