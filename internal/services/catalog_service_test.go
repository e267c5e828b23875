package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/cache"
	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/utils"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Products(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]catalog.Product)
	return products, args.Error(1)
}

// failingCache reports every operation as a backend outage.
type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}

func (failingCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return errors.New("connection refused")
}

func (failingCache) Delete(ctx context.Context, key string) error {
	return errors.New("connection refused")
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "a", Name: "Alpha", Price: 10, Category: "Books", Store: "One", Image: "img/a.jpg", Rating: 4, ReviewCount: 10, Available: true},
		{ID: "b", Name: "Beta", Price: 25, Category: "Books", Store: "Two", Rating: 5, ReviewCount: 2, Available: true},
		{ID: "c", Name: "Gamma", Price: 5, Category: "Home", Store: "One", Rating: 3, ReviewCount: 50, Available: false},
	}
}

func newTestCatalogService(source catalog.Source, c cache.Cache) *CatalogService {
	return NewCatalogService(source, c, time.Minute, WithCatalogLogger(logrus.NewEntry(logrus.New())))
}

func TestCatalogService_ProductsAreCached(t *testing.T) {
	source := new(mockSource)
	source.On("Products", mock.Anything).Return(testProducts(), nil).Once()

	svc := newTestCatalogService(source, cache.NewMemoryCache(nil))
	ctx := context.Background()

	first, err := svc.Products(ctx)
	require.NoError(t, err)
	second, err := svc.Products(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	source.AssertNumberOfCalls(t, "Products", 1)
}

func TestCatalogService_RedisBackedCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	defer rc.Close()

	source := new(mockSource)
	source.On("Products", mock.Anything).Return(testProducts(), nil).Twice()
	svc := newTestCatalogService(source, rc)

	first, err := svc.Products(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(catalogCacheKey))
	assert.Equal(t, time.Minute, mr.TTL(catalogCacheKey))

	second, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	source.AssertNumberOfCalls(t, "Products", 1)

	mr.FastForward(time.Minute)
	_, err = svc.Products(ctx)
	require.NoError(t, err)
	source.AssertNumberOfCalls(t, "Products", 2)

	require.NoError(t, svc.Invalidate(ctx))
	assert.False(t, mr.Exists(catalogCacheKey))
}

func TestCatalogService_InvalidateReloads(t *testing.T) {
	source := new(mockSource)
	source.On("Products", mock.Anything).Return(testProducts(), nil).Twice()

	svc := newTestCatalogService(source, cache.NewMemoryCache(nil))
	ctx := context.Background()

	_, err := svc.Products(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.Products(ctx)
	require.NoError(t, err)

	source.AssertExpectations(t)
}

func TestCatalogService_CacheOutageFallsThrough(t *testing.T) {
	source := new(mockSource)
	source.On("Products", mock.Anything).Return(testProducts(), nil)

	svc := newTestCatalogService(source, failingCache{})

	products, err := svc.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestCatalogService_SourceErrorIsWrapped(t *testing.T) {
	boom := errors.New("bucket unreachable")
	source := new(mockSource)
	source.On("Products", mock.Anything).Return(nil, boom)

	svc := newTestCatalogService(source, cache.NewMemoryCache(nil))

	_, err := svc.Search(context.Background(), catalog.Criteria{}, utils.NewPaginationParams(1, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to load catalog")
}

func TestCatalogService_ImageResolver(t *testing.T) {
	source := new(mockSource)
	source.On("Products", mock.Anything).Return(testProducts(), nil)

	svc := NewCatalogService(source, cache.NewMemoryCache(nil), time.Minute,
		WithImageResolver(func(key string) string {
			if key == "" {
				return ""
			}
			return "https://cdn.example.com/" + key
		}))

	product, err := svc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img/a.jpg", product.Image)

	product, err = svc.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Empty(t, product.Image)
}

func TestCatalogService_SearchPaginates(t *testing.T) {
	source := new(mockSource)
	source.On("Products", mock.Anything).Return(testProducts(), nil)

	svc := newTestCatalogService(source, cache.NewMemoryCache(nil))

	result, err := svc.Search(context.Background(), catalog.Criteria{Sort: catalog.SortPriceAsc}, utils.NewPaginationParams(2, 2))
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "b", result.Products[0].ID)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Matched)
	assert.Equal(t, int64(3), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
}

func TestCatalogService_GetUnknown(t *testing.T) {
	source := new(mockSource)
	source.On("Products", mock.Anything).Return(testProducts(), nil)

	svc := newTestCatalogService(source, cache.NewMemoryCache(nil))

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestCatalogService_Categories(t *testing.T) {
	source := new(mockSource)
	source.On("Products", mock.Anything).Return(testProducts(), nil)

	svc := newTestCatalogService(source, cache.NewMemoryCache(nil))

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []catalog.Facet{
		{Value: "Books", Count: 2},
		{Value: "Home", Count: 1},
	}, categories)
}
