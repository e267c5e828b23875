// internal/database/seed.go
package database

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/models"
)

//go:embed seeds/products.json
var seedProducts []byte

// SeedCatalog returns the bundled demo catalog.
func SeedCatalog() ([]catalog.Product, error) {
	return catalog.DecodeProducts(bytes.NewReader(seedProducts))
}

// SeedInitialData inserts the demo catalog, skipping SKUs already present.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data...")

	products, err := SeedCatalog()
	if err != nil {
		return err
	}

	return WithTransaction(db, func(tx *gorm.DB) error {
		for _, p := range products {
			row := models.ProductFromCatalog(p)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "sku"}},
				DoNothing: true,
			}).Create(row).Error
			if err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
			}
		}
		logrus.WithField("products", len(products)).Info("Initial data seeding completed")
		return nil
	})
}
