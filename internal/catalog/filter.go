// Package catalog narrows, orders and projects marketplace listings.
// Every function is pure: inputs are never modified and results are new slices.
package catalog

import (
	"math"

	"medishare/internal/collection"
	"medishare/internal/domain"
)

// Criteria selects listings. Category matching is exact and case-sensitive;
// "" and "all" disable it. The price range is inclusive at both ends.
type Criteria struct {
	Query    string
	Category string
	Min      float64
	Max      float64
}

// DefaultCriteria matches every listing.
func DefaultCriteria() Criteria {
	return Criteria{Min: 0, Max: math.Inf(1)}
}

// Validate rejects ranges that can never match.
func (c Criteria) Validate() error {
	if math.IsNaN(c.Min) || math.IsNaN(c.Max) {
		return domain.NewValidationError("price", "price bounds must be numbers")
	}
	if c.Min < 0 {
		return domain.NewValidationError("min", "minimum price cannot be negative")
	}
	if c.Min > c.Max {
		return domain.NewValidationError("price", "minimum price exceeds maximum price")
	}
	return nil
}

func (c Criteria) Match(l domain.Listing) bool {
	return c.matchText(l) && c.matchCategory(l) && c.matchPrice(l)
}

func (c Criteria) matchText(l domain.Listing) bool {
	return collection.Contains(l.Name, c.Query)
}

func (c Criteria) matchCategory(l domain.Listing) bool {
	return collection.IsAll(c.Category) || l.Category == c.Category
}

func (c Criteria) matchPrice(l domain.Listing) bool {
	return l.Price >= c.Min && l.Price <= c.Max
}

// Filter returns the subsequence of items that satisfy every active predicate.
func Filter(items []domain.Listing, c Criteria) []domain.Listing {
	return collection.Filter(items, c.Match)
}

// Visible keeps the listings buyers are allowed to see.
func Visible(items []domain.Listing) []domain.Listing {
	return collection.Filter(items, func(l domain.Listing) bool { return l.Status.Visible() })
}
