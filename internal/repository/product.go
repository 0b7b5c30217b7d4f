package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

// ProductRepository persists products.
//
// Errors are apperr ZErrors: ProductIDRequiredErr for an empty id, ProductNotFound when the
// product does not exist and StorageFailure wrapping any driver error.
type ProductRepository interface {
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	// CreateProduct ignores product.ID and stores the product under a freshly generated id.
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	// UpdateProduct overwrites every field but the id, only if the product already exists.
	UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, error)
	// DeleteProduct removes the product and returns its content before deletion.
	DeleteProduct(ctx context.Context, id string) (model.Product, error)
}

const (
	msgListFailed   = "Could not fetch products"
	msgGetFailed    = "Could not fetch product"
	msgCreateFailed = "Could not create product"
	msgUpdateFailed = "Could not update product"
	msgDeleteFailed = "Could not delete product"
)

func newProductID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid v7: %w", err)
	}
	return id.String(), nil
}

// withNewID returns product stored under a new id.
func withNewID(product model.Product) (model.Product, error) {
	id, err := newProductID()
	if err != nil {
		return model.Product{}, apperr.StorageFailure(msgCreateFailed, err)
	}
	product.ID = id
	return product, nil
}

func requireID(id string) error {
	if id == "" {
		return apperr.ProductIDRequiredErr
	}
	return nil
}

const productColumns = "id, product_name, code, price, model, product_url"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.ProductName, &p.Code, &p.Price, &p.Model, &p.ProductURL)
	return p, err
}
