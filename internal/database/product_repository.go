// internal/database/product_repository.go
package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/models"
)

// ProductRepository serves the catalog from the products table. Draft and
// suspended rows are hidden; sold out rows are listed as unavailable.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

var listedStatuses = []models.ProductStatus{
	models.ProductStatusActive,
	models.ProductStatusSoldOut,
}

func (r *ProductRepository) Products(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("status IN ?", listedStatuses).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].ToCatalog())
	}
	return products, nil
}
