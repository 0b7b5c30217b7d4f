package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type postgresProductRepository struct {
	db    db.DB
	table string
}

// NewPostgresProductRepository creates a product repository on the given postgres table.
func NewPostgresProductRepository(db db.DB, table string) ProductRepository {
	return &postgresProductRepository{
		db:    db,
		table: pgx.Identifier{table}.Sanitize(),
	}
}

func (r postgresProductRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, productColumns, r.table))
	if err != nil {
		return nil, apperr.StorageFailure(msgListFailed, fmt.Errorf("query products: %w", err))
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, apperr.StorageFailure(msgListFailed, fmt.Errorf("collect products: %w", err))
	}

	return products, nil
}

func (r postgresProductRepository) GetProduct(ctx context.Context, id string) (model.Product, error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, productColumns, r.table), id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFound(id)
		}
		return model.Product{}, apperr.StorageFailure(msgGetFailed, fmt.Errorf("select product: %w", err))
	}

	return product, nil
}

func (r postgresProductRepository) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	product, err := withNewID(product)
	if err != nil {
		return model.Product{}, err
	}

	if _, err := r.db.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.table, productColumns),
		product.ID, product.ProductName, product.Code, product.Price, product.Model, product.ProductURL,
	); err != nil {
		return model.Product{}, apperr.StorageFailure(msgCreateFailed, fmt.Errorf("insert product: %w", err))
	}

	return product, nil
}

func (r postgresProductRepository) UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		UPDATE %s
		SET
			product_name = $2,
			code         = $3,
			price        = $4,
			model        = $5,
			product_url  = $6
		WHERE id = $1
		RETURNING %s
	`, r.table, productColumns),
		id, product.ProductName, product.Code, product.Price, product.Model, product.ProductURL,
	)

	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFound(id)
		}
		return model.Product{}, apperr.StorageFailure(msgUpdateFailed, fmt.Errorf("update product: %w", err))
	}

	return updated, nil
}

func (r postgresProductRepository) DeleteProduct(ctx context.Context, id string) (model.Product, error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	row := r.db.QueryRow(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING %s`, r.table, productColumns), id)
	deleted, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFound(id)
		}
		return model.Product{}, apperr.StorageFailure(msgDeleteFailed, fmt.Errorf("delete product: %w", err))
	}

	return deleted, nil
}
