// internal/catalog/product.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownSource   = errors.New("unknown catalog source")
)

// Product is a catalog record as supplied by an external provider. The query
// engine never mutates it.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         Price   `json:"price"`
	OriginalPrice *Price  `json:"original_price,omitempty"`
	Category      string  `json:"category"`
	Store         string  `json:"store"`
	Image         string  `json:"image,omitempty"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	Available     bool    `json:"available"`
}

// Popularity is the relevance proxy: rating weighted by review count.
func (p Product) Popularity() float64 {
	return p.Rating * float64(p.ReviewCount)
}

// ListPrice returns the original price when it is a genuine markdown.
func (p Product) ListPrice() (Price, bool) {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return 0, false
	}
	return *p.OriginalPrice, true
}

// DiscountPercent is the rounded markdown shown next to a struck-through
// list price, or 0.
func (p Product) DiscountPercent() int {
	list, ok := p.ListPrice()
	if !ok || list == 0 {
		return 0
	}
	return int((1-float64(p.Price)/float64(list))*100 + 0.5)
}

// Source supplies the product collection the engine queries.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
}

// StaticSource serves a fixed in-memory product list.
type StaticSource struct {
	products []Product
}

func NewStaticSource(products []Product) *StaticSource {
	return &StaticSource{products: products}
}

func (s *StaticSource) Products(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := make([]Product, len(s.products))
	copy(products, s.products)
	return products, nil
}

// Find returns the product with the given id.
func Find(products []Product, id string) (Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

// DecodeProducts reads a JSON array of products, as published in catalog
// snapshots.
func DecodeProducts(r io.Reader) ([]Product, error) {
	var products []Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return products, nil
}
