package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"medishare/internal/catalog"
	"medishare/internal/clock"
	"medishare/internal/collection"
	"medishare/internal/domain"
	"medishare/internal/repos"
)

type MarketService struct {
	Cats     *repos.CategoryRepo
	Listings *repos.ListingRepo
	Txns     *repos.TransactionRepo
	Clock    clock.Clock

	mu sync.Mutex
}

func NewMarketService(cats *repos.CategoryRepo, listings *repos.ListingRepo, txns *repos.TransactionRepo, clk clock.Clock) *MarketService {
	if clk == nil {
		clk = clock.System()
	}
	return &MarketService{Cats: cats, Listings: listings, Txns: txns, Clock: clk}
}

func (s *MarketService) Categories() ([]domain.Category, error) {
	return s.Cats.List()
}

// Browse returns the buyer-visible listings after filtering and sorting.
func (s *MarketService) Browse(c catalog.Criteria, key catalog.SortKey, mode catalog.DisplayMode) (catalog.View, error) {
	if err := c.Validate(); err != nil {
		return catalog.View{}, err
	}
	all, err := s.Listings.All()
	if err != nil {
		return catalog.View{}, err
	}
	return catalog.Project(catalog.Visible(all), c, key, mode), nil
}

func (s *MarketService) Get(id string) (domain.Listing, error) {
	return s.Listings.Get(id)
}

// Order is what a buyer submits to purchase a listing.
type Order struct {
	ListingID string
	Qty       int
	BuyerName string
	Address   string
}

// Purchase decrements stock and records a Processing transaction.
func (s *MarketService) Purchase(o Order) (domain.Transaction, error) {
	if strings.TrimSpace(o.BuyerName) == "" {
		return domain.Transaction{}, domain.NewValidationError("name", "is required")
	}
	if len(strings.TrimSpace(o.Address)) < 5 {
		return domain.Transaction{}, domain.NewValidationError("address", "is too short")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.Listings.All()
	if err != nil {
		return domain.Transaction{}, err
	}
	updated, bought, err := catalog.Purchase(all, o.ListingID, o.Qty)
	if err != nil {
		return domain.Transaction{}, err
	}
	after, err := collection.Find(updated, o.ListingID, domain.ListingID, "listing")
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := s.Listings.SaveStock(after, bought); err != nil {
		return domain.Transaction{}, err
	}

	t := domain.Transaction{
		ID:        "TRX-" + strings.ToUpper(uuid.NewString()[:8]),
		ListingID: bought.ID,
		Medicine:  bought.Name,
		BuyerName: strings.TrimSpace(o.BuyerName),
		Address:   strings.TrimSpace(o.Address),
		Quantity:  o.Qty,
		UnitPrice: bought.Price,
		Total:     float64(o.Qty) * bought.Price,
		Status:    domain.TransactionProcessing,
		CreatedAt: s.Clock.Now().Format(time.RFC3339),
	}
	if err := s.Txns.Create(t); err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}

func (s *MarketService) Transactions(limit int) ([]domain.Transaction, error) {
	return s.Txns.ListLatest(limit)
}
