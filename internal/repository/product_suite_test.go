package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

func sampleProduct() model.Product {
	return model.Product{
		ProductName: "Galaxy S24",
		Code:        "SM-S921B",
		Price:       899.99,
		Model:       "S24",
		ProductURL:  "https://example.com/products/s24",
	}
}

// runProductRepositorySuite exercises the ProductRepository contract against a fresh, empty store.
func runProductRepositorySuite(t *testing.T, newRepo func(t *testing.T) ProductRepository) {
	ctx := context.Background()

	t.Run("Should return an empty list when no product exists", func(t *testing.T) {
		repo := newRepo(t)

		products, err := repo.ListAllProducts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Should assign a new id on create and overwrite the caller id", func(t *testing.T) {
		repo := newRepo(t)

		input := sampleProduct()
		input.ID = "caller-supplied"

		created, err := repo.CreateProduct(ctx, input)
		require.NoError(t, err)
		assert.NotEqual(t, "caller-supplied", created.ID)
		_, err = uuid.Parse(created.ID)
		assert.NoError(t, err)

		input.ID = created.ID
		assert.Equal(t, input, created)

		got, err := repo.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("Should list every created product", func(t *testing.T) {
		repo := newRepo(t)

		first, err := repo.CreateProduct(ctx, sampleProduct())
		require.NoError(t, err)
		second, err := repo.CreateProduct(ctx, sampleProduct())
		require.NoError(t, err)

		products, err := repo.ListAllProducts(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []model.Product{first, second}, products)
	})

	t.Run("Should return not found for an unknown id", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetProduct(ctx, "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "Product with ID missing not found", zErr.Msg())
	})

	t.Run("Should reject an empty id", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetProduct(ctx, "")
		assert.ErrorIs(t, err, apperr.ProductIDRequiredErr)

		_, err = repo.UpdateProduct(ctx, "", sampleProduct())
		assert.ErrorIs(t, err, apperr.ProductIDRequiredErr)

		_, err = repo.DeleteProduct(ctx, "")
		assert.ErrorIs(t, err, apperr.ProductIDRequiredErr)
	})

	t.Run("Should overwrite every field but the id on update", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.CreateProduct(ctx, sampleProduct())
		require.NoError(t, err)

		changes := model.Product{
			ID:          "ignored",
			ProductName: "Galaxy S24 Ultra",
			Code:        "SM-S928B",
			Price:       1299.5,
			Model:       "S24U",
			ProductURL:  "https://example.com/products/s24u",
		}
		updated, err := repo.UpdateProduct(ctx, created.ID, changes)
		require.NoError(t, err)

		changes.ID = created.ID
		assert.Equal(t, changes, updated)

		got, err := repo.GetProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, changes, got)
	})

	t.Run("Should succeed on update when nothing changes", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.CreateProduct(ctx, sampleProduct())
		require.NoError(t, err)

		updated, err := repo.UpdateProduct(ctx, created.ID, created)
		require.NoError(t, err)
		assert.Equal(t, created, updated)
	})

	t.Run("Should not create a product on update of an unknown id", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.UpdateProduct(ctx, "missing", sampleProduct())
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)

		products, err := repo.ListAllProducts(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Should return the prior content on delete", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.CreateProduct(ctx, sampleProduct())
		require.NoError(t, err)

		deleted, err := repo.DeleteProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, deleted)

		_, err = repo.GetProduct(ctx, created.ID)
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})

	t.Run("Should return not found on delete of an unknown id", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.DeleteProduct(ctx, "missing")
		assert.ErrorIs(t, err, apperr.ProductNotFoundErr)
	})

	t.Run("Should report a storage failure when the store is unavailable", func(t *testing.T) {
		repo := newRepo(t)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.ListAllProducts(cancelled)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.StorageFailureErr)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, "Could not fetch products", zErr.Msg())
	})
}
