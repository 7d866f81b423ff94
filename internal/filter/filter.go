// Package filter implements the catalog search predicates: free-text match
// on name, inclusive price range, and exact category. All predicates are
// ANDed and catalog order is preserved.
package filter

import (
	"math"
	"strings"

	"storefront/internal/catalog"
)

// Criteria are the active filter inputs. The zero value of Query and
// Category means "no constraint"; use DefaultCriteria for an unbounded price
// range.
type Criteria struct {
	Query    string
	MinPrice float64
	MaxPrice float64
	Category string
}

// DefaultCriteria matches every product: empty query, price range
// [0, +Inf), any category.
func DefaultCriteria() Criteria {
	return Criteria{MaxPrice: math.Inf(1)}
}

// IsDefault reports whether no filter is active.
func (c Criteria) IsDefault() bool {
	return c.Query == "" && c.Category == "" && c.MinPrice == 0 && math.IsInf(c.MaxPrice, 1)
}

// Matches evaluates all predicates against a single product.
func (c Criteria) Matches(p catalog.Product) bool {
	if c.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.Query)) {
		return false
	}
	if p.Price < c.MinPrice || p.Price > c.MaxPrice {
		return false
	}
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	return true
}

// Apply returns the products satisfying the criteria, in input order.
func (c Criteria) Apply(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
