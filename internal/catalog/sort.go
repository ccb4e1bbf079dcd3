package catalog

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"medishare/internal/domain"
)

type SortKey string

const (
	SortNone   SortKey = ""
	SortDate   SortKey = "date"
	SortName   SortKey = "name"
	SortPrice  SortKey = "price"
	SortExpiry SortKey = "expiry"
)

const dateLayout = "2006-01-02"

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortDate, SortName, SortPrice, SortExpiry:
		return k, nil
	}
	return SortNone, domain.NewValidationError("sort", "unknown sort key "+s)
}

// Sort returns a stably sorted copy. Listing date sorts newest first; every
// other key sorts ascending. SortNone returns a plain copy.
func Sort(items []domain.Listing, key SortKey) []domain.Listing {
	out := slices.Clone(items)
	if out == nil {
		out = []domain.Listing{}
	}
	switch key {
	case SortName:
		col := collate.New(language.English, collate.Loose)
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			return col.CompareString(a.Name, b.Name)
		})
	case SortPrice:
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortExpiry:
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			return parseDate(a.ExpiryDate).Compare(parseDate(b.ExpiryDate))
		})
	case SortDate:
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			return parseDate(b.ListingDate).Compare(parseDate(a.ListingDate))
		})
	}
	return out
}

// parseDate accepts YYYY-MM-DD or RFC 3339. Unparseable dates sort as the zero time.
func parseDate(s string) time.Time {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// DaysUntil is the ceiling of whole days from now until date; negative once past.
// ok is false when date cannot be parsed.
func DaysUntil(date string, now time.Time) (days int, ok bool) {
	d := parseDate(date)
	if d.IsZero() {
		return 0, false
	}
	hours := d.Sub(now).Hours()
	days = int(hours / 24)
	if float64(days)*24 < hours {
		days++
	}
	return days, true
}
