package services

import (
	"sync"

	"medishare/internal/catalog"
	"medishare/internal/clock"
	"medishare/internal/collection"
	"medishare/internal/domain"
	"medishare/internal/repos"
	"medishare/internal/review"
	"medishare/internal/support"
)

// ModerationService applies review decisions to stored listings, accounts and
// pharmacies. Each decision loads the collection, runs the pure transition
// and writes back only the decided item.
type ModerationService struct {
	Listings   *repos.ListingRepo
	Accounts   *repos.AccountRepo
	Pharmacies *repos.PharmacyRepo
	Queries    *repos.QueryRepo
	Txns       *repos.TransactionRepo
	Clock      clock.Clock

	mu sync.Mutex
}

func NewModerationService(listings *repos.ListingRepo, accounts *repos.AccountRepo, pharmacies *repos.PharmacyRepo,
	queries *repos.QueryRepo, txns *repos.TransactionRepo, clk clock.Clock) *ModerationService {
	if clk == nil {
		clk = clock.System()
	}
	return &ModerationService{Listings: listings, Accounts: accounts, Pharmacies: pharmacies,
		Queries: queries, Txns: txns, Clock: clk}
}

// ListingQueue returns the admin listing queue, filtered then sorted.
func (s *ModerationService) ListingQueue(c review.Criteria, key catalog.SortKey) ([]domain.Listing, error) {
	all, err := s.Listings.All()
	if err != nil {
		return nil, err
	}
	return catalog.Sort(review.FilterListings(all, c), key), nil
}

func (s *ModerationService) ApproveListing(id string) (domain.Listing, error) {
	return s.decideListing(id, review.ApproveListing)
}

func (s *ModerationService) RejectListing(id string) (domain.Listing, error) {
	return s.decideListing(id, review.RejectListing)
}

func (s *ModerationService) decideListing(id string, op func([]domain.Listing, string) ([]domain.Listing, error)) (domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.Listings.All()
	if err != nil {
		return domain.Listing{}, err
	}
	next, err := op(all, id)
	if err != nil {
		return domain.Listing{}, err
	}
	prev, err := collection.Find(all, id, domain.ListingID, "listing")
	if err != nil {
		return domain.Listing{}, err
	}
	l, err := collection.Find(next, id, domain.ListingID, "listing")
	if err != nil {
		return domain.Listing{}, err
	}
	return l, s.Listings.SaveReview(l, prev.Status)
}

func (s *ModerationService) AccountQueue(c review.Criteria) ([]domain.Account, error) {
	all, err := s.Accounts.All()
	if err != nil {
		return nil, err
	}
	return review.FilterAccounts(all, c), nil
}

func (s *ModerationService) VerifyAccount(id string) (domain.Account, error) {
	return s.decideAccount(id, review.VerifyAccount)
}

func (s *ModerationService) RejectAccount(id string) (domain.Account, error) {
	return s.decideAccount(id, review.RejectAccount)
}

func (s *ModerationService) decideAccount(id string, op func([]domain.Account, string) ([]domain.Account, error)) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.Accounts.All()
	if err != nil {
		return domain.Account{}, err
	}
	next, err := op(all, id)
	if err != nil {
		return domain.Account{}, err
	}
	a, err := collection.Find(next, id, domain.AccountID, "account")
	if err != nil {
		return domain.Account{}, err
	}
	return a, s.Accounts.SaveStatus(a)
}

func (s *ModerationService) PharmacyQueue(c review.Criteria) ([]domain.Pharmacy, error) {
	all, err := s.Pharmacies.All()
	if err != nil {
		return nil, err
	}
	return review.FilterPharmacies(all, c), nil
}

func (s *ModerationService) VerifyPharmacy(id string) (domain.Pharmacy, error) {
	return s.decidePharmacy(id, review.VerifyPharmacy)
}

func (s *ModerationService) RejectPharmacy(id string) (domain.Pharmacy, error) {
	return s.decidePharmacy(id, review.RejectPharmacy)
}

func (s *ModerationService) decidePharmacy(id string, op func([]domain.Pharmacy, string) ([]domain.Pharmacy, error)) (domain.Pharmacy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.Pharmacies.All()
	if err != nil {
		return domain.Pharmacy{}, err
	}
	next, err := op(all, id)
	if err != nil {
		return domain.Pharmacy{}, err
	}
	p, err := collection.Find(next, id, domain.PharmacyID, "pharmacy")
	if err != nil {
		return domain.Pharmacy{}, err
	}
	return p, s.Pharmacies.SaveStatus(p)
}

func (s *ModerationService) Summary() (review.Summary, error) {
	all, err := s.Listings.All()
	if err != nil {
		return review.Summary{}, err
	}
	return review.Summarize(all, s.Clock.Now()), nil
}

// Dashboard is the admin overview.
type Dashboard struct {
	Listings              review.Summary `json:"listings"`
	PendingAccounts       int            `json:"pendingAccounts"`
	PendingPharmacies     int            `json:"pendingPharmacies"`
	OpenQueries           int            `json:"openQueries"`
	CompletedTransactions int            `json:"completedTransactions"`
}

func (s *ModerationService) Dashboard() (Dashboard, error) {
	var d Dashboard
	var err error
	if d.Listings, err = s.Summary(); err != nil {
		return d, err
	}
	accounts, err := s.AccountQueue(review.Criteria{Status: string(domain.VerificationPending)})
	if err != nil {
		return d, err
	}
	d.PendingAccounts = len(accounts)
	pharmacies, err := s.PharmacyQueue(review.Criteria{Status: string(domain.VerificationPending)})
	if err != nil {
		return d, err
	}
	d.PendingPharmacies = len(pharmacies)
	queries, err := s.Queries.All()
	if err != nil {
		return d, err
	}
	d.OpenQueries = support.Count(queries).Open()
	if d.CompletedTransactions, err = s.Txns.CountByStatus(domain.TransactionCompleted); err != nil {
		return d, err
	}
	return d, nil
}
