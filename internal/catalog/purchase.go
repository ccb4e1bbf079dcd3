package catalog

import (
	"fmt"

	"medishare/internal/collection"
	"medishare/internal/domain"
)

// Purchase takes qty units from the listing with the given id. It returns the
// updated collection and the listing as it was bought (pre-decrement price and
// name). A listing whose quantity reaches zero becomes sold.
func Purchase(items []domain.Listing, id string, qty int) ([]domain.Listing, domain.Listing, error) {
	if qty < 1 {
		return nil, domain.Listing{}, domain.NewValidationError("qty", "quantity must be at least 1")
	}
	var bought domain.Listing
	out, err := collection.Update(items, id, domain.ListingID, "listing", func(l domain.Listing) (domain.Listing, error) {
		if !l.Status.Visible() {
			return l, fmt.Errorf("listing %s is %s: %w", l.ID, l.Status, domain.ErrInvalidTransition)
		}
		if qty > l.Quantity {
			return l, fmt.Errorf("need %d, have %d: %w", qty, l.Quantity, domain.ErrInsufficientQuantity)
		}
		bought = l
		l.Quantity -= qty
		if l.Quantity == 0 {
			l.Status = domain.ListingSold
		}
		return l, nil
	})
	if err != nil {
		return nil, domain.Listing{}, err
	}
	return out, bought, nil
}
