// internal/catalog/criteria.go
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// AllOption is the picker value that disables the category and store filters.
const AllOption = "all"

type SortKey string

const (
	SortRelevance   SortKey = "relevance"
	SortPriceAsc    SortKey = "price-ascending"
	SortPriceDesc   SortKey = "price-descending"
	SortRatingDesc  SortKey = "rating-descending"
	SortReviewsDesc SortKey = "review-count-descending"
	SortNameAsc     SortKey = "name-ascending"
)

var sortKeys = []SortKey{
	SortRelevance,
	SortPriceAsc,
	SortPriceDesc,
	SortRatingDesc,
	SortReviewsDesc,
	SortNameAsc,
}

func SortKeys() []SortKey {
	keys := make([]SortKey, len(sortKeys))
	copy(keys, sortKeys)
	return keys
}

// Valid reports whether k is a known key. The empty key is valid and means
// relevance.
func (k SortKey) Valid() bool {
	if k == "" {
		return true
	}
	for _, key := range sortKeys {
		if k == key {
			return true
		}
	}
	return false
}

var ErrInvalidPriceRange = errors.New("invalid price range")

// PriceRange is an inclusive [Min, Max] bound. Unbounded drops the upper
// bound.
type PriceRange struct {
	Min       float64
	Max       float64
	Unbounded bool
}

func (r PriceRange) Contains(price float64) bool {
	if price < r.Min {
		return false
	}
	return r.Unbounded || price <= r.Max
}

func (r PriceRange) String() string {
	if r.Unbounded {
		return strconv.FormatFloat(r.Min, 'f', -1, 64) + "+"
	}
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

// ParsePriceRange reads the picker forms "10-50" and "100+". An empty string
// yields nil, meaning no constraint.
func ParsePriceRange(s string) (*PriceRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if strings.HasSuffix(s, "+") {
		lo, err := ParsePriceStrict(strings.TrimSuffix(s, "+"))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
		}
		return &PriceRange{Min: lo, Unbounded: true}, nil
	}

	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}
	lo, err := ParsePriceStrict(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}
	hi, err := ParsePriceStrict(parts[1])
	if err != nil || hi < lo {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}
	return &PriceRange{Min: lo, Max: hi}, nil
}

// Criteria is rebuilt by the caller on every interaction. Zero values
// disable their filter.
type Criteria struct {
	Search     string
	Category   string
	Store      string
	PriceRange *PriceRange
	MinRating  float64
	Sort       SortKey
	// Language selects the collation for SortNameAsc.
	Language language.Tag
}

func (c Criteria) categoryActive() bool {
	return c.Category != "" && !strings.EqualFold(c.Category, AllOption)
}

func (c Criteria) storeActive() bool {
	return c.Store != "" && c.Store != AllOption
}
