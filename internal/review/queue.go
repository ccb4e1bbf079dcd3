package review

import (
	"time"

	"medishare/internal/catalog"
	"medishare/internal/collection"
	"medishare/internal/domain"
)

// Criteria narrows a moderation queue. Status "" or "all" keeps every state.
type Criteria struct {
	Text   string
	Status string
}

// FilterListings matches Text against the medicine name or the seller name.
func FilterListings(items []domain.Listing, c Criteria) []domain.Listing {
	return collection.Filter(items, func(l domain.Listing) bool {
		return collection.ContainsAny(c.Text, l.Name, l.SellerName) &&
			(collection.IsAll(c.Status) || string(l.Status) == c.Status)
	})
}

// FilterAccounts matches Text against name or email and never returns admins.
func FilterAccounts(items []domain.Account, c Criteria) []domain.Account {
	return collection.Filter(items, func(a domain.Account) bool {
		return a.Role != domain.RoleAdmin &&
			collection.ContainsAny(c.Text, a.Name, a.Email) &&
			(collection.IsAll(c.Status) || string(a.Status) == c.Status)
	})
}

func FilterPharmacies(items []domain.Pharmacy, c Criteria) []domain.Pharmacy {
	return collection.Filter(items, func(p domain.Pharmacy) bool {
		return collection.ContainsAny(c.Text, p.Name, p.City, p.License) &&
			(collection.IsAll(c.Status) || string(p.Status) == c.Status)
	})
}

const (
	ExpiringSoonDays = 180
	HighValueLimit   = 20.0
)

// Summary is the moderation overview for listings.
type Summary struct {
	Pending          int     `json:"pending"`
	Approved         int     `json:"approved"`
	Rejected         int     `json:"rejected"`
	AveragePrice     float64 `json:"averagePrice"`
	ExpiringSoon     int     `json:"expiringSoon"`
	HighValuePending int     `json:"highValuePending"`
}

// Summarize counts listings per moderation state. ExpiringSoon counts listings
// with fewer than ExpiringSoonDays left, ignoring undated ones; HighValuePending counts pending listings
// whose total value (quantity × price) exceeds HighValueLimit.
func Summarize(items []domain.Listing, now time.Time) Summary {
	var s Summary
	var sum float64
	for _, l := range items {
		switch l.Status {
		case domain.ListingPending:
			s.Pending++
			if float64(l.Quantity)*l.Price > HighValueLimit {
				s.HighValuePending++
			}
		case domain.ListingApproved:
			s.Approved++
		case domain.ListingRejected:
			s.Rejected++
		}
		if days, ok := catalog.DaysUntil(l.ExpiryDate, now); ok && days < ExpiringSoonDays {
			s.ExpiringSoon++
		}
		sum += l.Price
	}
	if len(items) > 0 {
		s.AveragePrice = sum / float64(len(items))
	}
	return s
}
