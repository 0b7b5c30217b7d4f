package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

type fakeProductRepository struct {
	products map[string]model.Product
	nextID   string
	err      error
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{products: map[string]model.Product{}, nextID: "p-1"}
}

func (f *fakeProductRepository) ListAllProducts(context.Context) ([]model.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	products := []model.Product{}
	for _, p := range f.products {
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeProductRepository) GetProduct(_ context.Context, id string) (model.Product, error) {
	if f.err != nil {
		return model.Product{}, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, apperr.ProductNotFound(id)
	}
	return p, nil
}

func (f *fakeProductRepository) CreateProduct(_ context.Context, product model.Product) (model.Product, error) {
	if f.err != nil {
		return model.Product{}, f.err
	}
	product.ID = f.nextID
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepository) UpdateProduct(_ context.Context, id string, product model.Product) (model.Product, error) {
	if f.err != nil {
		return model.Product{}, f.err
	}
	if _, ok := f.products[id]; !ok {
		return model.Product{}, apperr.ProductNotFound(id)
	}
	product.ID = id
	f.products[id] = product
	return product, nil
}

func (f *fakeProductRepository) DeleteProduct(_ context.Context, id string) (model.Product, error) {
	if f.err != nil {
		return model.Product{}, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, apperr.ProductNotFound(id)
	}
	delete(f.products, id)
	return p, nil
}

type published struct {
	product       model.Product
	eventType     model.EventType
	actor         string
	correlationID string
}

type fakePublisher struct {
	calls []published
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, product model.Product, eventType model.EventType, actor, correlationID string) error {
	f.calls = append(f.calls, published{product, eventType, actor, correlationID})
	return f.err
}

var meta = MutationMeta{Actor: "usuario@email.com", CorrelationID: "req-1"}

func sampleProduct() model.Product {
	return model.Product{ProductName: "Galaxy S24", Code: "SM-S921B", Price: 899.99, Model: "S24"}
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store the product and publish CREATED", func(t *testing.T) {
		repo := newFakeProductRepository()
		pub := &fakePublisher{}
		svc := NewProductService(slog.Default(), repo, pub)

		created, err := svc.CreateProduct(ctx, sampleProduct(), meta)
		require.NoError(t, err)
		assert.Equal(t, "p-1", created.ID)

		require.Len(t, pub.calls, 1)
		assert.Equal(t, published{created, model.EventTypeCreated, "usuario@email.com", "req-1"}, pub.calls[0])
	})

	t.Run("Should keep the result and log when publishing fails", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&logs, nil))

		repo := newFakeProductRepository()
		pub := &fakePublisher{err: apperr.PublishFailureErr.WrapParent(errors.New("broker down"))}
		svc := NewProductService(logger, repo, pub)

		created, err := svc.CreateProduct(ctx, sampleProduct(), meta)
		require.NoError(t, err)
		assert.Equal(t, "p-1", created.ID)
		assert.Contains(t, repo.products, "p-1")
		assert.Contains(t, logs.String(), "failed to publish product event")
	})

	t.Run("Should not publish when the store fails", func(t *testing.T) {
		repo := newFakeProductRepository()
		repo.err = apperr.StorageFailure("Could not create product", errors.New("disk full"))
		pub := &fakePublisher{}
		svc := NewProductService(slog.Default(), repo, pub)

		_, err := svc.CreateProduct(ctx, sampleProduct(), meta)
		assert.ErrorIs(t, err, apperr.StorageFailureErr)
		assert.Empty(t, pub.calls)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should publish UPDATED with the stored product", func(t *testing.T) {
		repo := newFakeProductRepository()
		repo.products["p-1"] = model.Product{ID: "p-1", Code: "OLD"}
		pub := &fakePublisher{}
		svc := NewProductService(slog.Default(), repo, pub)

		updated, err := svc.UpdateProduct(ctx, "p-1", sampleProduct(), meta)
		require.NoError(t, err)
		assert.Equal(t, "SM-S921B", updated.Code)

		require.Len(t, pub.calls, 1)
		assert.Equal(t, model.EventTypeUpdated, pub.calls[0].eventType)
		assert.Equal(t, updated, pub.calls[0].product)
	})

	t.Run("Should return not found without publishing", func(t *testing.T) {
		pub := &fakePublisher{}
		svc := NewProductService(slog.Default(), newFakeProductRepository(), pub)

		_, err := svc.UpdateProduct(ctx, "missing", sampleProduct(), meta)
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
		assert.Empty(t, pub.calls)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Should publish DELETED with the prior product", func(t *testing.T) {
		repo := newFakeProductRepository()
		prior := model.Product{ID: "p-1", Code: "SM-S921B", Price: 10}
		repo.products["p-1"] = prior
		pub := &fakePublisher{}
		svc := NewProductService(slog.Default(), repo, pub)

		deleted, err := svc.DeleteProduct(ctx, "p-1", meta)
		require.NoError(t, err)
		assert.Equal(t, prior, deleted)

		require.Len(t, pub.calls, 1)
		assert.Equal(t, published{prior, model.EventTypeDeleted, "usuario@email.com", "req-1"}, pub.calls[0])
	})

	t.Run("Should return not found without publishing", func(t *testing.T) {
		pub := &fakePublisher{}
		svc := NewProductService(slog.Default(), newFakeProductRepository(), pub)

		_, err := svc.DeleteProduct(ctx, "missing", meta)
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
		assert.Empty(t, pub.calls)
	})
}

func TestProductService_Queries(t *testing.T) {
	ctx := context.Background()

	t.Run("Should never publish on reads", func(t *testing.T) {
		repo := newFakeProductRepository()
		repo.products["p-1"] = model.Product{ID: "p-1"}
		pub := &fakePublisher{}
		svc := NewProductService(slog.Default(), repo, pub)

		products, err := svc.ListAllProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 1)

		product, err := svc.GetProduct(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, "p-1", product.ID)

		assert.Empty(t, pub.calls)
	})
}
