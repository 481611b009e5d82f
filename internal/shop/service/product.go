package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/merchware/shopd/internal/shop/domain"
	"github.com/merchware/shopd/internal/shop/store"
	"github.com/merchware/shopd/pkg/idx"
	"github.com/merchware/shopd/pkg/slogx"
)

var (
	ErrProductNotFound = errors.New("product_not_found")
	ErrProductExists   = errors.New("product_already_exists")
)

type ProductService struct {
	Store store.Store
}

// CreateProductParams holds the catalog fields for a new product.
type CreateProductParams struct {
	Name        string
	Description string
	PriceCents  int64
	Stock       int64
	IsAvailable bool
}

// CreateProduct adds a product to the catalog. Names are unique
// case-insensitively, so "Plumbus" and "plumbus" collide.
func (s *ProductService) CreateProduct(ctx context.Context, params CreateProductParams) (domain.Product, error) {
	l := slogx.FromContext(ctx)

	p := domain.Product{
		ID:          idx.New().String(),
		Name:        params.Name,
		Description: params.Description,
		PriceCents:  params.PriceCents,
		Stock:       params.Stock,
		IsAvailable: params.IsAvailable,
	}

	if err := s.Store.Products().CreateProduct(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Product{}, ErrProductExists
		}
		return domain.Product{}, err
	}

	created, err := s.Store.Products().GetProductByID(ctx, p.ID)
	if err != nil {
		return domain.Product{}, err
	}

	l.Info("product created", slog.String("product_id", p.ID), slog.String("name", p.Name))
	return created, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, productID string) (domain.Product, error) {
	p, err := s.Store.Products().GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return p, nil
}

func (s *ProductService) ListProducts(ctx context.Context, offset, limit int64) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Store.Products().ListProducts(ctx, offset, limit)
}

// UpdateProductParams carries a partial update; nil fields keep their value.
type UpdateProductParams struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Stock       *int64
	IsAvailable *bool
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID string, params UpdateProductParams) (domain.Product, error) {
	p, err := s.Store.Products().GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}

	if params.Name != nil {
		p.Name = *params.Name
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.PriceCents != nil {
		p.PriceCents = *params.PriceCents
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.IsAvailable != nil {
		p.IsAvailable = *params.IsAvailable
	}

	if err := s.Store.Products().UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Product{}, ErrProductExists
		}
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}

	return s.Store.Products().GetProductByID(ctx, productID)
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.Store.Products().DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
