package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"medishare/internal/clock"
	"medishare/internal/domain"
	"medishare/internal/repos"
	"medishare/internal/validate"
)

// SubmissionService accepts new listings from sellers and disposal pickup requests.
type SubmissionService struct {
	Cats      *repos.CategoryRepo
	Listings  *repos.ListingRepo
	Disposals *repos.DisposalRepo
	Clock     clock.Clock
}

func NewSubmissionService(cats *repos.CategoryRepo, listings *repos.ListingRepo, disposals *repos.DisposalRepo, clk clock.Clock) *SubmissionService {
	if clk == nil {
		clk = clock.System()
	}
	return &SubmissionService{Cats: cats, Listings: listings, Disposals: disposals, Clock: clk}
}

// sellerID is stable per email so repeat submissions share one seller.
func sellerID(email string) string {
	key := strings.ToLower(strings.TrimSpace(email))
	return "s-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+key)).String()[:8]
}

// SubmitListing stores a new pending listing awaiting moderation.
func (s *SubmissionService) SubmitListing(f validate.ListingForm) (domain.Listing, error) {
	if err := validate.Listing(f); err != nil {
		return domain.Listing{}, err
	}
	ok, err := s.Cats.Exists(f.Category)
	if err != nil {
		return domain.Listing{}, err
	}
	if !ok {
		return domain.Listing{}, domain.NewValidationError("category", "is not a known category")
	}
	l := domain.Listing{
		ID:              "m-" + uuid.NewString(),
		Name:            strings.TrimSpace(f.Name),
		Description:     strings.TrimSpace(f.Description),
		Category:        f.Category,
		Price:           f.Price,
		Quantity:        f.Quantity,
		ExpiryDate:      f.ExpiryDate,
		ManufactureDate: f.ManufactureDate,
		ListingDate:     s.Clock.Now().Format("2006-01-02"),
		Status:          domain.ListingPending,
		SellerID:        sellerID(f.SellerEmail),
		SellerName:      strings.TrimSpace(f.SellerName),
		SellerEmail:     strings.TrimSpace(f.SellerEmail),
	}
	if err := s.Listings.Insert(l); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

func (s *SubmissionService) RequestDisposal(f validate.DisposalForm) (domain.DisposalRequest, error) {
	if err := validate.Struct(f); err != nil {
		return domain.DisposalRequest{}, err
	}
	d := domain.DisposalRequest{
		ID:           "D-" + strings.ToUpper(uuid.NewString()[:8]),
		MedicineName: strings.TrimSpace(f.MedicineName),
		Quantity:     f.Quantity,
		ExpiryDate:   f.ExpiryDate,
		Address:      strings.TrimSpace(f.Address),
		Phone:        strings.TrimSpace(f.Phone),
		Email:        strings.TrimSpace(f.Email),
		Description:  strings.TrimSpace(f.Description),
		PickupDate:   f.PickupDate,
		CreatedAt:    s.Clock.Now().Format(time.RFC3339),
	}
	if err := s.Disposals.Create(d); err != nil {
		return domain.DisposalRequest{}, err
	}
	return d, nil
}
