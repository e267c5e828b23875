// internal/services/catalog_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/cache"
	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/utils"
)

const catalogCacheKey = "catalog:products"

// CatalogService answers catalog queries over a Source, keeping the decoded
// product list in a Cache between loads.
type CatalogService struct {
	source   catalog.Source
	cache    cache.Cache
	ttl      time.Duration
	imageURL func(string) string
	logger   *logrus.Entry
}

type CatalogOption func(*CatalogService)

// WithImageResolver rewrites every product image through fn on load.
func WithImageResolver(fn func(string) string) CatalogOption {
	return func(s *CatalogService) {
		s.imageURL = fn
	}
}

func WithCatalogLogger(logger *logrus.Entry) CatalogOption {
	return func(s *CatalogService) {
		s.logger = logger
	}
}

type SearchResult struct {
	Products   []catalog.Product      `json:"products"`
	Facets     catalog.Facets         `json:"facets"`
	Total      int                    `json:"total"`
	Matched    int                    `json:"matched"`
	Pagination utils.PaginationResult `json:"-"`
}

func NewCatalogService(source catalog.Source, c cache.Cache, ttl time.Duration, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		source: source,
		cache:  c,
		ttl:    ttl,
		logger: logrus.WithField("component", "catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs the query engine over the whole catalog and returns the
// requested page of the ordered result.
func (s *CatalogService) Search(ctx context.Context, criteria catalog.Criteria, page utils.PaginationParams) (*SearchResult, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	result := catalog.Query(products, criteria)
	window := utils.Paginate(result.Products, page)

	return &SearchResult{
		Products:   window,
		Facets:     result.Facets,
		Total:      result.Total,
		Matched:    result.Matched,
		Pagination: utils.CreatePaginationResult(window, int64(result.Matched), page),
	}, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (catalog.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.Find(products, id)
}

// Categories counts products per category across the whole catalog.
func (s *CatalogService) Categories(ctx context.Context) ([]catalog.Facet, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Query(products, catalog.Criteria{}).Facets.Categories, nil
}

// Products returns the full catalog, from cache when possible. Cache
// failures fall through to the source; source failures are returned.
func (s *CatalogService) Products(ctx context.Context) ([]catalog.Product, error) {
	if products, ok := s.cached(ctx); ok {
		return products, nil
	}

	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	if s.imageURL != nil {
		for i := range products {
			products[i].Image = s.imageURL(products[i].Image)
		}
	}

	s.store(ctx, products)
	return products, nil
}

// Invalidate drops the cached catalog so the next read hits the source.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}

func (s *CatalogService) cached(ctx context.Context) ([]catalog.Product, bool) {
	raw, err := s.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WithError(err).Warn("Catalog cache read failed")
		}
		return nil, false
	}

	var products []catalog.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		s.logger.WithError(err).Warn("Discarding undecodable catalog cache entry")
		return nil, false
	}
	return products, true
}

func (s *CatalogService) store(ctx context.Context, products []catalog.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode catalog for cache")
		return
	}
	if err := s.cache.Set(ctx, catalogCacheKey, string(raw), s.ttl); err != nil {
		s.logger.WithError(err).Warn("Catalog cache write failed")
		return
	}
	s.logger.WithField("products", len(products)).Debug("Catalog cached")
}
