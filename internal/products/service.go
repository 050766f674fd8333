// Package products serves the catalog of ready-made prints. Listings are
// cached in Redis with a short TTL since the catalog changes rarely and
// the storefront reads it on every page view.
package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/printlabth/printlab-backend/pkg/db/models"
	pkgerrors "github.com/printlabth/printlab-backend/pkg/errors"
	"github.com/printlabth/printlab-backend/pkg/logger"
	"github.com/printlabth/printlab-backend/pkg/redis"
)

var (
	errRepoRequired   = errors.New("products repository is required")
	errLoggerRequired = errors.New("products logger is required")
)

// Cache is the subset of the Redis wrapper the catalog uses. Nil-able so
// the service degrades to direct reads when Redis is not configured.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(parts ...string) string
}

// Service exposes catalog reads.
type Service interface {
	ListProducts(ctx context.Context, filters Filters) ([]models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewService builds a catalog service. cache may be nil.
func NewService(repo Repository, cache Cache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errRepoRequired
	}
	if logg == nil {
		return nil, errLoggerRequired
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logg}, nil
}

// ListProducts returns catalog entries matching the filters, read through
// the cache when one is configured.
func (s *service) ListProducts(ctx context.Context, filters Filters) ([]models.Product, error) {
	key := s.listCacheKey(filters)

	if s.cache != nil && key != "" {
		raw, err := s.cache.Get(ctx, key)
		if err == nil {
			var cached []models.Product
			if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), "catalog cache read failed")
		}
	}

	products, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list products")
	}

	if s.cache != nil && key != "" {
		if encoded, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
				s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), "catalog cache write failed")
			}
		}
	}
	return products, nil
}

// GetProductBySlug returns one product or a not found error.
func (s *service) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "find product")
	}
	return product, nil
}

func (s *service) listCacheKey(filters Filters) string {
	if s.cache == nil {
		return ""
	}
	category := "all"
	if filters.Category != nil {
		category = filters.Category.String()
	}
	featured := "any"
	if filters.Featured != nil {
		featured = fmt.Sprintf("%t", *filters.Featured)
	}
	return s.cache.CatalogKey("products", category, featured)
}
