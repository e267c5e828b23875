// internal/models/product.go
package models

import (
	"github.com/lib/pq"

	"github.com/javajoker/storefront/internal/catalog"
)

type Product struct {
	BaseModel
	SKU            string         `json:"sku" gorm:"size:64;not null;uniqueIndex"`
	Title          string         `json:"title" gorm:"size:255;not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Category       string         `json:"category" gorm:"size:100;index"`
	StoreName      string         `json:"store_name" gorm:"size:100;index"`
	Price          float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice  *float64       `json:"original_price,omitempty" gorm:"type:decimal(10,2)"`
	InventoryCount int            `json:"inventory_count" gorm:"default:0"`
	Images         pq.StringArray `json:"images" gorm:"type:text[]"`
	Tags           pq.StringArray `json:"tags" gorm:"type:text[]"`
	Specifications JSONB          `json:"specifications" gorm:"type:jsonb"`
	Status         ProductStatus  `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	Rating         float64        `json:"rating" gorm:"type:decimal(3,2);default:0"`
	ReviewCount    int64          `json:"review_count" gorm:"default:0"`
}

// Available reports whether the product can be bought right now.
func (p *Product) Available() bool {
	return p.Status == ProductStatusActive && p.InventoryCount > 0
}

func (p *Product) ToCatalog() catalog.Product {
	out := catalog.Product{
		ID:          p.SKU,
		Name:        p.Title,
		Price:       catalog.Price(p.Price),
		Category:    p.Category,
		Store:       p.StoreName,
		Rating:      p.Rating,
		ReviewCount: int(p.ReviewCount),
		Available:   p.Available(),
	}
	if p.OriginalPrice != nil {
		original := catalog.Price(*p.OriginalPrice)
		out.OriginalPrice = &original
	}
	if len(p.Images) > 0 {
		out.Image = p.Images[0]
	}
	return out
}

// ProductFromCatalog builds a row for seeding. Availability maps onto an
// active status with one unit in stock, or sold out.
func ProductFromCatalog(p catalog.Product) *Product {
	row := &Product{
		SKU:         p.ID,
		Title:       p.Name,
		Category:    p.Category,
		StoreName:   p.Store,
		Price:       p.Price.Float64(),
		Rating:      p.Rating,
		ReviewCount: int64(p.ReviewCount),
		Status:      ProductStatusSoldOut,
	}
	if p.Available {
		row.Status = ProductStatusActive
		row.InventoryCount = 1
	}
	if p.OriginalPrice != nil {
		original := p.OriginalPrice.Float64()
		row.OriginalPrice = &original
	}
	if p.Image != "" {
		row.Images = pq.StringArray{p.Image}
	}
	return row
}
