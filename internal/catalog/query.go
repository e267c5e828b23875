// internal/catalog/query.go
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
)

// Facet is one option of a filter picker with the number of candidates
// carrying it.
type Facet struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type PriceBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets describe the choosable filter options. Categories are counted after
// the text filter; every other facet is counted after the text and category
// filters, before the price, store and rating filters, so a picker never
// hides the option currently selected in it.
type Facets struct {
	Categories   []Facet     `json:"categories"`
	Stores       []Facet     `json:"stores"`
	PriceRange   PriceBounds `json:"price_range"`
	Availability struct {
		InStock    int `json:"in_stock"`
		OutOfStock int `json:"out_of_stock"`
	} `json:"availability"`
}

type Result struct {
	Products []Product `json:"products"`
	Facets   Facets    `json:"facets"`
	Total    int       `json:"total"`
	Matched  int       `json:"matched"`
}

// Query filters and sorts products. It is a pure function of its inputs: the
// input slice is never reordered and no state survives the call.
func Query(products []Product, criteria Criteria) Result {
	term := strings.ToLower(strings.TrimSpace(criteria.Search))

	searched := make([]Product, 0, len(products))
	for _, p := range products {
		if matchesText(p, term) {
			searched = append(searched, p)
		}
	}

	candidates := searched
	if criteria.categoryActive() {
		candidates = make([]Product, 0, len(searched))
		for _, p := range searched {
			if strings.EqualFold(p.Category, criteria.Category) {
				candidates = append(candidates, p)
			}
		}
	}

	facets := buildFacets(candidates)
	facets.Categories = countBy(searched, func(p Product) string { return p.Category }, true)

	matched := make([]Product, 0, len(candidates))
	for _, p := range candidates {
		if criteria.PriceRange != nil && !criteria.PriceRange.Contains(p.Price.Float64()) {
			continue
		}
		if criteria.storeActive() && p.Store != criteria.Store {
			continue
		}
		if criteria.MinRating > 0 && p.Rating < criteria.MinRating {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, criteria)

	return Result{
		Products: matched,
		Facets:   facets,
		Total:    len(products),
		Matched:  len(matched),
	}
}

func matchesText(p Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Store), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func buildFacets(candidates []Product) Facets {
	var facets Facets
	facets.Stores = countBy(candidates, func(p Product) string { return p.Store }, false)

	for i, p := range candidates {
		price := p.Price.Float64()
		if i == 0 || price < facets.PriceRange.Min {
			facets.PriceRange.Min = price
		}
		if i == 0 || price > facets.PriceRange.Max {
			facets.PriceRange.Max = price
		}
		if p.Available {
			facets.Availability.InStock++
		} else {
			facets.Availability.OutOfStock++
		}
	}
	return facets
}

// countBy returns distinct non-empty labels ordered by label. With fold set,
// labels differing only in case are one option, shown with the first
// spelling seen, matching the case-insensitive category filter.
func countBy(products []Product, label func(Product) string, fold bool) []Facet {
	var (
		order  []string
		counts = make(map[string]*Facet)
	)
	for _, p := range products {
		v := label(p)
		if v == "" {
			continue
		}
		key := v
		if fold {
			key = strings.ToLower(v)
		}
		f, ok := counts[key]
		if !ok {
			f = &Facet{Value: v}
			counts[key] = f
			order = append(order, key)
		}
		f.Count++
	}

	facets := make([]Facet, 0, len(order))
	for _, key := range order {
		facets = append(facets, *counts[key])
	}
	sort.SliceStable(facets, func(i, j int) bool { return facets[i].Value < facets[j].Value })
	return facets
}

func sortProducts(products []Product, criteria Criteria) {
	var less func(a, b Product) bool

	switch criteria.Sort {
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.Price > b.Price }
	case SortRatingDesc:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortReviewsDesc:
		less = func(a, b Product) bool { return a.ReviewCount > b.ReviewCount }
	case SortNameAsc:
		// Collators are not safe for concurrent use.
		c := collate.New(criteria.Language, collate.IgnoreCase)
		less = func(a, b Product) bool { return c.CompareString(a.Name, b.Name) < 0 }
	default:
		less = func(a, b Product) bool { return a.Popularity() > b.Popularity() }
	}

	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}
