package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nueltech/catalog-service/internal/domain"
)

const (
	productKeyPrefix = "catalog:product:"
	productListKey   = "catalog:products:all"
)

// ProductCache is a best-effort read-through cache in front of the product
// store. Misses and backend errors look identical to callers; writes to the
// catalog must invalidate.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, bool)
	SetProduct(ctx context.Context, product *domain.Product)
	GetList(ctx context.Context) ([]domain.Product, bool)
	SetList(ctx context.Context, products []domain.Product)
	Invalidate(ctx context.Context, id string)
}

type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache returns a Redis-backed implementation.
func NewProductCache(client *redis.Client, ttl time.Duration) ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisProductCache{client: client, ttl: ttl}
}

func (c *redisProductCache) GetProduct(ctx context.Context, id string) (*domain.Product, bool) {
	payload, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *redisProductCache) SetProduct(ctx context.Context, product *domain.Product) {
	payload, err := json.Marshal(product)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, productKeyPrefix+product.ID, payload, c.ttl).Err()
}

func (c *redisProductCache) GetList(ctx context.Context) ([]domain.Product, bool) {
	payload, err := c.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *redisProductCache) SetList(ctx context.Context, products []domain.Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, productListKey, payload, c.ttl).Err()
}

func (c *redisProductCache) Invalidate(ctx context.Context, id string) {
	keys := []string{productListKey}
	if id != "" {
		keys = append(keys, productKeyPrefix+id)
	}
	_ = c.client.Del(ctx, keys...).Err()
}
