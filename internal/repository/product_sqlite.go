package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

type sqliteProductRepository struct {
	db    *sql.DB
	table string
}

// NewSQLiteProductRepository creates a product repository on the given SQLite table.
func NewSQLiteProductRepository(db *sql.DB, table string) ProductRepository {
	return &sqliteProductRepository{
		db:    db,
		table: `"` + strings.ReplaceAll(table, `"`, `""`) + `"`,
	}
}

func (r sqliteProductRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := queryProducts(ctx, r.db, fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, productColumns, r.table))
	if err != nil {
		return nil, apperr.StorageFailure(msgListFailed, err)
	}
	return products, nil
}

func (r sqliteProductRepository) GetProduct(ctx context.Context, id string) (model.Product, error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, productColumns, r.table), id)
	return r.scanOne(row, id, msgGetFailed)
}

func (r sqliteProductRepository) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	product, err := withNewID(product)
	if err != nil {
		return model.Product{}, err
	}

	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.table, productColumns),
		product.ID, product.ProductName, product.Code, product.Price, product.Model, product.ProductURL,
	); err != nil {
		return model.Product{}, apperr.StorageFailure(msgCreateFailed, fmt.Errorf("insert product: %w", err))
	}

	return product, nil
}

func (r sqliteProductRepository) UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET
			product_name = ?,
			code         = ?,
			price        = ?,
			model        = ?,
			product_url  = ?
		WHERE id = ?
		RETURNING %s
	`, r.table, productColumns),
		product.ProductName, product.Code, product.Price, product.Model, product.ProductURL, id,
	)
	return r.scanOne(row, id, msgUpdateFailed)
}

func (r sqliteProductRepository) DeleteProduct(ctx context.Context, id string) (model.Product, error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ? RETURNING %s`, r.table, productColumns), id)
	return r.scanOne(row, id, msgDeleteFailed)
}

func (r sqliteProductRepository) scanOne(row *sql.Row, id, failureMsg string) (model.Product, error) {
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFound(id)
		}
		return model.Product{}, apperr.StorageFailure(failureMsg, err)
	}
	return product, nil
}
