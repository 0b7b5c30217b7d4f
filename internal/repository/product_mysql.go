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

type mysqlProductRepository struct {
	db    *sql.DB
	table string
}

// NewMySQLProductRepository creates a product repository on the given MySQL table.
// The connection must be opened with ClientFoundRows enabled, see db.NewMySQL.
func NewMySQLProductRepository(db *sql.DB, table string) ProductRepository {
	return &mysqlProductRepository{
		db:    db,
		table: "`" + strings.ReplaceAll(table, "`", "``") + "`",
	}
}

func (r mysqlProductRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := queryProducts(ctx, r.db, fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, productColumns, r.table))
	if err != nil {
		return nil, apperr.StorageFailure(msgListFailed, err)
	}
	return products, nil
}

func (r mysqlProductRepository) GetProduct(ctx context.Context, id string) (model.Product, error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?`, productColumns, r.table), id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFound(id)
		}
		return model.Product{}, apperr.StorageFailure(msgGetFailed, fmt.Errorf("select product: %w", err))
	}

	return product, nil
}

func (r mysqlProductRepository) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
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

// UpdateProduct relies on the single UPDATE statement for atomicity; with ClientFoundRows the
// affected row count is the number of matched rows, so zero means the product does not exist.
func (r mysqlProductRepository) UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET
			product_name = ?,
			code         = ?,
			price        = ?,
			model        = ?,
			product_url  = ?
		WHERE id = ?
	`, r.table),
		product.ProductName, product.Code, product.Price, product.Model, product.ProductURL, id,
	)
	if err != nil {
		return model.Product{}, apperr.StorageFailure(msgUpdateFailed, fmt.Errorf("update product: %w", err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return model.Product{}, apperr.StorageFailure(msgUpdateFailed, fmt.Errorf("rows affected: %w", err))
	}
	if affected == 0 {
		return model.Product{}, apperr.ProductNotFound(id)
	}

	product.ID = id
	return product, nil
}

// DeleteProduct locks the row while reading it so the returned content is exactly what was deleted.
func (r mysqlProductRepository) DeleteProduct(ctx context.Context, id string) (product model.Product, err error) {
	if err := requireID(id); err != nil {
		return model.Product{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Product{}, apperr.StorageFailure(msgDeleteFailed, fmt.Errorf("begin transaction: %w", err))
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	row := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? FOR UPDATE`, productColumns, r.table), id)
	product, err = scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFound(id)
		}
		return model.Product{}, apperr.StorageFailure(msgDeleteFailed, fmt.Errorf("select product: %w", err))
	}

	if _, err = tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table), id); err != nil {
		return model.Product{}, apperr.StorageFailure(msgDeleteFailed, fmt.Errorf("delete product: %w", err))
	}

	if err = tx.Commit(); err != nil {
		return model.Product{}, apperr.StorageFailure(msgDeleteFailed, fmt.Errorf("commit transaction: %w", err))
	}

	return product, nil
}

func queryProducts(ctx context.Context, db *sql.DB, query string, args ...any) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}
