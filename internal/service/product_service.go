package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nueltech/catalog-service/internal/domain"
	"github.com/nueltech/catalog-service/internal/events"
	"github.com/nueltech/catalog-service/internal/repository"
	apperrors "github.com/nueltech/catalog-service/pkg/util"
)

// ProductService coordinates catalog workflows.
type ProductService struct {
	products   repository.ProductRepository
	cache      repository.ProductCache
	dispatcher events.Dispatcher
}

// ProductDependencies bundles collaborators for the product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Cache       repository.ProductCache
	Dispatcher  events.Dispatcher
}

// NewProductService constructs the service.
func NewProductService(deps ProductDependencies) *ProductService {
	return &ProductService{
		products:   deps.ProductRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// ProductCreateInput describes product creation payload.
type ProductCreateInput struct {
	Name        string
	Description *string
	Price       float64
	Category    string
	Stock       int
}

// ProductUpdateInput describes a partial update; nil fields stay untouched.
type ProductUpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, actorID string, input ProductCreateInput) (*domain.Product, error) {
	if err := validateProduct(input.Name, input.Category, input.Price, input.Stock); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		Stock:       input.Stock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.ID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventProductCreated,
		EntityID: product.ID,
		ActorID:  actorID,
		Payload: events.ProductCreatedPayload{
			Name:     product.Name,
			Category: product.Category,
			Price:    product.Price,
		},
	})
	return product, nil
}

// Update applies the provided fields to an existing product.
func (s *ProductService) Update(ctx context.Context, actorID, id string, input ProductUpdateInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}

	changed := applyProductUpdate(product, input)
	if len(changed) == 0 {
		return product, nil
	}
	if err := validateProduct(product.Name, product.Category, product.Price, product.Stock); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}

	s.invalidate(ctx, product.ID)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventProductUpdated,
		EntityID: product.ID,
		ActorID:  actorID,
		Payload:  events.ProductUpdatedPayload{Name: product.Name, ChangedFields: changed},
	})
	return product, nil
}

// Get returns a single product, served from cache when possible.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.GetProduct(ctx, id); ok {
			return product, nil
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetProduct(ctx, product)
	}
	return product, nil
}

// List returns products matching the filter. Only the unfiltered listing
// is cached; filtered queries always hit the store.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	cacheable := filter.IsZero() && s.cache != nil
	if cacheable {
		if products, ok := s.cache.GetList(ctx); ok {
			return products, nil
		}
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.SetList(ctx, products)
	}
	return products, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, actorID, id string) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return err
	}

	s.invalidate(ctx, id)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventProductDeleted,
		EntityID: id,
		ActorID:  actorID,
		Payload:  events.ProductDeletedPayload{Name: product.Name},
	})
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

func (s *ProductService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func applyProductUpdate(product *domain.Product, input ProductUpdateInput) []string {
	var changed []string
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
		changed = append(changed, "name")
	}
	if input.Description != nil {
		product.Description = input.Description
		changed = append(changed, "description")
	}
	if input.Price != nil {
		product.Price = *input.Price
		changed = append(changed, "price")
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
		changed = append(changed, "category")
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
		changed = append(changed, "stock")
	}
	return changed
}

func validateProduct(name, category string, price float64, stock int) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if strings.TrimSpace(category) == "" {
		return apperrors.NewValidationError("category is required", nil)
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return apperrors.NewValidationError("price must be a number >= 0", nil)
	}
	if stock < 0 {
		return apperrors.NewValidationError("stock must be an integer >= 0", nil)
	}
	return nil
}
