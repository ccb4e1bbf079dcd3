package domain

type Role string

const (
	RoleDonor     Role = "Donor"
	RoleRecipient Role = "Recipient"
	RolePharmacy  Role = "Pharmacy"
	RoleAdmin     Role = "ADMIN"
)

// VerificationStatus is shared by accounts and pharmacies.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type Account struct {
	ID                string             `db:"id" json:"id"`
	Email             string             `db:"email" json:"email"`
	Name              string             `db:"name" json:"name"`
	Phone             string             `db:"phone" json:"phone,omitempty"`
	Hash              string             `db:"password_hash" json:"-"`
	Role              Role               `db:"role" json:"role"`
	Status            VerificationStatus `db:"status" json:"status"`
	JoinDate          string             `db:"join_date" json:"joinDate"`
	TotalTransactions int                `db:"total_transactions" json:"totalTransactions"`
}

func AccountID(a Account) string { return a.ID }

type Pharmacy struct {
	ID      string             `db:"id" json:"id"`
	Name    string             `db:"name" json:"name"`
	License string             `db:"license" json:"license"`
	City    string             `db:"city" json:"city"`
	Email   string             `db:"email" json:"email"`
	Status  VerificationStatus `db:"status" json:"status"`
}

func PharmacyID(p Pharmacy) string { return p.ID }
