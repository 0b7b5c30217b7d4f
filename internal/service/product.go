package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/publisher"
	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
)

// MutationMeta identifies who issued a mutation and the request it belongs to.
type MutationMeta struct {
	Actor         string
	CorrelationID string
}

type ProductService interface {
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, product model.Product, meta MutationMeta) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, product model.Product, meta MutationMeta) (model.Product, error)
	DeleteProduct(ctx context.Context, id string, meta MutationMeta) (model.Product, error)
}

type productService struct {
	logger      *slog.Logger
	productRepo repository.ProductRepository
	publisher   publisher.Publisher
}

// NewProductService creates the product service. Every successful mutation publishes its
// event before returning; a publish failure is logged and does not fail the mutation.
func NewProductService(
	logger *slog.Logger,
	productRepo repository.ProductRepository,
	publisher publisher.Publisher,
) ProductService {
	return &productService{
		logger:      logger,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

func (s *productService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, product model.Product, meta MutationMeta) (model.Product, error) {
	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository create product: %w", err)
	}

	s.publish(ctx, created, model.EventTypeCreated, meta)
	return created, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, product model.Product, meta MutationMeta) (model.Product, error) {
	updated, err := s.productRepo.UpdateProduct(ctx, id, product)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository update product: %w", err)
	}

	s.publish(ctx, updated, model.EventTypeUpdated, meta)
	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string, meta MutationMeta) (model.Product, error) {
	deleted, err := s.productRepo.DeleteProduct(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository delete product: %w", err)
	}

	s.publish(ctx, deleted, model.EventTypeDeleted, meta)
	return deleted, nil
}

func (s *productService) publish(ctx context.Context, product model.Product, eventType model.EventType, meta MutationMeta) {
	ctx = log.WithProductEvent(ctx, product.ID, eventType)
	if err := s.publisher.Publish(ctx, product, eventType, meta.Actor, meta.CorrelationID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product event", slog.Any("error", err))
	}
}
