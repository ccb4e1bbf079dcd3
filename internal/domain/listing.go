package domain

type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type ListingStatus string

const (
	ListingPending  ListingStatus = "pending"
	ListingApproved ListingStatus = "approved"
	ListingRejected ListingStatus = "rejected"

	// Stock states used once a listing is on the marketplace.
	ListingAvailable ListingStatus = "available"
	ListingReserved  ListingStatus = "reserved"
	ListingSold      ListingStatus = "sold"
)

// Visible reports whether buyers may see and purchase a listing in this state.
func (s ListingStatus) Visible() bool {
	return s == ListingApproved || s == ListingAvailable
}

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingPending, ListingApproved, ListingRejected, ListingAvailable, ListingReserved, ListingSold:
		return true
	}
	return false
}

// Listing is a medicine offered by a seller. Dates are calendar dates (YYYY-MM-DD).
type Listing struct {
	ID              string        `db:"id" json:"id"`
	Name            string        `db:"name" json:"name"`
	Description     string        `db:"description" json:"description,omitempty"`
	Category        string        `db:"category" json:"category"`
	Price           float64       `db:"price" json:"price"`
	Quantity        int           `db:"quantity" json:"quantity"`
	ExpiryDate      string        `db:"expiry_date" json:"expiryDate"`
	ManufactureDate string        `db:"manufacture_date" json:"manufactureDate,omitempty"`
	ListingDate     string        `db:"listing_date" json:"listingDate"`
	Status          ListingStatus `db:"status" json:"status"`
	BillVerified    bool          `db:"bill_verified" json:"billVerified"`
	SellerID        string        `db:"seller_id" json:"sellerId"`
	SellerName      string        `db:"seller_name" json:"sellerName"`
	SellerEmail     string        `db:"seller_email" json:"sellerEmail"`
	Rating          float64       `db:"rating" json:"rating,omitempty"` // 0 = unrated
}

func ListingID(l Listing) string { return l.ID }

// Stock labels shown next to a listing.
const (
	InStock    = "IN_STOCK"
	LowStock   = "LOW_STOCK"
	OutOfStock = "OUT_OF_STOCK"
)

// Stock converts the remaining quantity into a stock label.
func (l Listing) Stock() string {
	switch {
	case l.Quantity >= 5:
		return InStock
	case l.Quantity > 0:
		return LowStock
	}
	return OutOfStock
}

type TransactionStatus string

const (
	TransactionProcessing TransactionStatus = "Processing"
	TransactionCompleted  TransactionStatus = "Completed"
)

// Transaction records a purchase against a listing.
type Transaction struct {
	ID        string            `db:"id" json:"id"`
	ListingID string            `db:"listing_id" json:"listingId"`
	Medicine  string            `db:"medicine" json:"medicine"`
	BuyerName string            `db:"buyer_name" json:"buyerName"`
	Address   string            `db:"address" json:"address"`
	Quantity  int               `db:"quantity" json:"quantity"`
	UnitPrice float64           `db:"unit_price" json:"unitPrice"`
	Total     float64           `db:"total" json:"total"`
	Status    TransactionStatus `db:"status" json:"status"`
	CreatedAt string            `db:"created_at" json:"createdAt"`
}

// DisposalRequest asks for pickup of medicines that cannot be resold.
type DisposalRequest struct {
	ID           string `db:"id" json:"id"`
	MedicineName string `db:"medicine_name" json:"medicineName"`
	Quantity     int    `db:"quantity" json:"quantity"`
	ExpiryDate   string `db:"expiry_date" json:"expiryDate"`
	Address      string `db:"address" json:"address"`
	Phone        string `db:"phone" json:"phone"`
	Email        string `db:"email" json:"email"`
	Description  string `db:"description" json:"description,omitempty"`
	PickupDate   string `db:"pickup_date" json:"pickupDate,omitempty"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}
