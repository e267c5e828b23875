// internal/handlers/product.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/catalog"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

type ProductSearchQuery struct {
	Search    string  `form:"search" validate:"max=200"`
	Category  string  `form:"category" validate:"max=100"`
	Store     string  `form:"store" validate:"max=100"`
	Price     string  `form:"price" validate:"omitempty,price_range"`
	MinRating float64 `form:"min_rating" validate:"gte=0,lte=5"`
	Sort      string  `form:"sort" validate:"omitempty,sort_key"`
}

func (q ProductSearchQuery) Criteria(lang string) catalog.Criteria {
	// Validated by the price_range tag.
	priceRange, _ := catalog.ParsePriceRange(q.Price)

	return catalog.Criteria{
		Search:     q.Search,
		Category:   q.Category,
		Store:      q.Store,
		PriceRange: priceRange,
		MinRating:  q.MinRating,
		Sort:       catalog.SortKey(q.Sort),
		Language:   i18n.LanguageTag(lang),
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var query ProductSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&query)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.catalogService.Search(c.Request.Context(), query.Criteria(lang), params)
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	utils.PaginatedResponse(c, result.Pagination, gin.H{
		"facets":  result.Facets,
		"total":   result.Total,
		"matched": result.Matched,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		catalogUnavailable(c, err)
		return
	}

	if body, err := json.Marshal(product); err == nil {
		etag := utils.ETag(body)
		c.Header("ETag", etag)
		if c.GetHeader("If-None-Match") == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	list, marked := product.ListPrice()
	view := gin.H{
		"product":          product,
		"discount_percent": product.DiscountPercent(),
	}
	if marked {
		view["list_price"] = list
	}
	utils.SuccessResponse(c, view)
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

func catalogUnavailable(c *gin.Context, err error) {
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Catalog request failed")
	lang := utils.GetLangFromContext(c)
	utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyCatalogUnavailable))
}
