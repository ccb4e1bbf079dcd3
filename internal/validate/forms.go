package validate

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"medishare/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dateLayout, fl.Field().String())
			return err == nil
		})
	})
	return v
}

// ListingForm is what a seller submits to put a medicine up for sale.
type ListingForm struct {
	Name            string  `form:"medicineName" validate:"required,min=2,max=100"`
	Quantity        int     `form:"quantity" validate:"required,min=1,max=10000"`
	Price           float64 `form:"pricePerUnit" validate:"required,gt=0"`
	ExpiryDate      string  `form:"expiryDate" validate:"required,date"`
	ManufactureDate string  `form:"manufactureDate" validate:"required,date"`
	Category        string  `form:"category" validate:"required,max=32"`
	Description     string  `form:"description" validate:"max=500"`
	SellerName      string  `form:"sellerName" validate:"required,max=40"`
	SellerEmail     string  `form:"sellerEmail" validate:"required,email"`
}

// DisposalForm requests pickup of medicines for safe disposal.
type DisposalForm struct {
	MedicineName string `form:"medicineName" validate:"required,min=2,max=100"`
	Quantity     int    `form:"quantity" validate:"required,min=1"`
	ExpiryDate   string `form:"expiryDate" validate:"required,date"`
	Address      string `form:"address" validate:"required,min=5"`
	Phone        string `form:"phone" validate:"required,min=10,max=15"`
	Email        string `form:"email" validate:"required,email"`
	Description  string `form:"description" validate:"max=500"`
	PickupDate   string `form:"pickupDate" validate:"omitempty,date"`
	AcceptTerms  bool   `form:"acceptTerms" validate:"required"`
}

var messages = map[string]string{
	"required": "is required",
	"min":      "is too short or too small",
	"max":      "is too long or too large",
	"gt":       "must be greater than zero",
	"email":    "must be a valid email address",
	"date":     "must be a date (YYYY-MM-DD)",
}

// Struct runs tag validation and returns the first problem as a *domain.ValidationError.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		return domain.NewValidationError(lowerFirst(fe.Field()), msg)
	}
	return err
}

// Listing validates a listing form including the date ordering rule.
func Listing(f ListingForm) error {
	if err := Struct(f); err != nil {
		return err
	}
	exp, _ := time.Parse(dateLayout, f.ExpiryDate)
	mfg, _ := time.Parse(dateLayout, f.ManufactureDate)
	if !exp.After(mfg) {
		return domain.NewValidationError("expiryDate", "must be after the manufacture date")
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
