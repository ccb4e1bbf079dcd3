// Package review implements the moderation state machine applied by
// administrators to listings, accounts and pharmacies.
//
// Every entity moves between three states: pending, accepted (approved for
// listings, verified for accounts and pharmacies) and rejected. Decisions may be
// revised at any time: an accepted item can be rejected and a rejected one
// accepted. Repeating the decision an item already carries is a no-op.
package review

import (
	"fmt"

	"medishare/internal/collection"
	"medishare/internal/domain"
)

type Decision string

const (
	Accept Decision = "accept"
	Reject Decision = "reject"
)

// Machine names the three moderation states of one entity kind.
type Machine[S ~string] struct {
	Pending  S
	Accepted S
	Rejected S
}

var (
	Listings   = Machine[domain.ListingStatus]{domain.ListingPending, domain.ListingApproved, domain.ListingRejected}
	Accounts   = Machine[domain.VerificationStatus]{domain.VerificationPending, domain.VerificationVerified, domain.VerificationRejected}
	Pharmacies = Accounts
)

// Next returns the state reached from `from` under decision d.
func (m Machine[S]) Next(from S, d Decision) (S, error) {
	if from != m.Pending && from != m.Accepted && from != m.Rejected {
		return from, fmt.Errorf("%s from %q: %w", d, from, domain.ErrInvalidTransition)
	}
	switch d {
	case Accept:
		return m.Accepted, nil
	case Reject:
		return m.Rejected, nil
	}
	return from, fmt.Errorf("unknown decision %q: %w", d, domain.ErrInvalidTransition)
}

// ApproveListing marks the listing approved. Approval implies the purchase
// bill was checked, so BillVerified is set as well.
func ApproveListing(items []domain.Listing, id string) ([]domain.Listing, error) {
	return decideListing(items, id, Accept)
}

func RejectListing(items []domain.Listing, id string) ([]domain.Listing, error) {
	return decideListing(items, id, Reject)
}

func decideListing(items []domain.Listing, id string, d Decision) ([]domain.Listing, error) {
	return collection.Update(items, id, domain.ListingID, "listing", func(l domain.Listing) (domain.Listing, error) {
		next, err := Listings.Next(l.Status, d)
		if err != nil {
			return l, err
		}
		l.Status = next
		if d == Accept {
			l.BillVerified = true
		}
		return l, nil
	})
}

func VerifyAccount(items []domain.Account, id string) ([]domain.Account, error) {
	return decideAccount(items, id, Accept)
}

func RejectAccount(items []domain.Account, id string) ([]domain.Account, error) {
	return decideAccount(items, id, Reject)
}

func decideAccount(items []domain.Account, id string, d Decision) ([]domain.Account, error) {
	return collection.Update(items, id, domain.AccountID, "account", func(a domain.Account) (domain.Account, error) {
		if a.Role == domain.RoleAdmin {
			return a, fmt.Errorf("admin accounts are not moderated: %w", domain.ErrInvalidTransition)
		}
		next, err := Accounts.Next(a.Status, d)
		if err != nil {
			return a, err
		}
		a.Status = next
		return a, nil
	})
}

func VerifyPharmacy(items []domain.Pharmacy, id string) ([]domain.Pharmacy, error) {
	return decidePharmacy(items, id, Accept)
}

func RejectPharmacy(items []domain.Pharmacy, id string) ([]domain.Pharmacy, error) {
	return decidePharmacy(items, id, Reject)
}

func decidePharmacy(items []domain.Pharmacy, id string, d Decision) ([]domain.Pharmacy, error) {
	return collection.Update(items, id, domain.PharmacyID, "pharmacy", func(p domain.Pharmacy) (domain.Pharmacy, error) {
		next, err := Pharmacies.Next(p.Status, d)
		if err != nil {
			return p, err
		}
		p.Status = next
		return p, nil
	})
}
