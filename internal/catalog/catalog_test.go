package catalog_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"medishare/internal/catalog"
	"medishare/internal/domain"
)

func sample() []domain.Listing {
	return []domain.Listing{
		{ID: "1", Name: "Paracetamol 500mg", Category: "painkillers", Price: 2.5, Quantity: 30, ExpiryDate: "2025-12-31", ListingDate: "2025-03-28", Status: domain.ListingAvailable},
		{ID: "2", Name: "Amoxicillin 250mg", Category: "antibiotics", Price: 4.75, Quantity: 20, ExpiryDate: "2025-06-30", ListingDate: "2025-03-25", Status: domain.ListingAvailable},
		{ID: "3", Name: "cetirizine 10mg", Category: "antiallergic", Price: 3.25, Quantity: 15, ExpiryDate: "2025-09-15", ListingDate: "2025-03-30", Status: domain.ListingPending},
		{ID: "4", Name: "Ibuprofen 400mg", Category: "painkillers", Price: 2.5, Quantity: 10, ExpiryDate: "2025-06-30", ListingDate: "2025-03-28", Status: domain.ListingApproved},
	}
}

func ids(ls []domain.Listing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterScenarioCategory(t *testing.T) {
	items := []domain.Listing{
		{ID: "p", Name: "Paracetamol", Price: 2.5, Category: "painkillers"},
		{ID: "a", Name: "Amoxicillin", Price: 4.75, Category: "antibiotics"},
	}
	got := catalog.Filter(items, catalog.Criteria{Query: "", Category: "painkillers", Min: 0, Max: 10})
	if diff := cmp.Diff([]domain.Listing{items[0]}, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterPredicates(t *testing.T) {
	cases := []struct {
		name string
		c    catalog.Criteria
		want []string
	}{
		{"all", catalog.DefaultCriteria(), []string{"1", "2", "3", "4"}},
		{"text case-insensitive", catalog.Criteria{Query: "CETIRIZINE", Max: 10}, []string{"3"}},
		{"category sentinel", catalog.Criteria{Category: "all", Max: 10}, []string{"1", "2", "3", "4"}},
		{"category exact case", catalog.Criteria{Category: "Painkillers", Max: 10}, []string{}},
		{"inclusive bounds", catalog.Criteria{Min: 2.5, Max: 3.25}, []string{"1", "3", "4"}},
		{"combined", catalog.Criteria{Query: "mg", Category: "painkillers", Min: 2.5, Max: 2.5}, []string{"1", "4"}},
		{"nothing", catalog.Criteria{Query: "zzz", Max: math.Inf(1)}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(catalog.Filter(sample(), tc.c))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterIdempotentSubsequence(t *testing.T) {
	src := sample()
	c := catalog.Criteria{Query: "0", Min: 2, Max: 4}
	once := catalog.Filter(src, c)
	twice := catalog.Filter(once, c)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("not idempotent:\n%s", diff)
	}
	// every result appears in the source, in source order
	j := 0
	for _, l := range once {
		for j < len(src) && src[j].ID != l.ID {
			j++
		}
		if j == len(src) || !cmp.Equal(src[j], l) {
			t.Fatalf("result %s is not a subsequence element", l.ID)
		}
	}
}

func TestFilterEmptySource(t *testing.T) {
	got := catalog.Filter(nil, catalog.DefaultCriteria())
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty slice, got %#v", got)
	}
}

func TestCriteriaValidate(t *testing.T) {
	if err := (catalog.Criteria{Min: 5, Max: 1}).Validate(); !domain.IsValidation(err) {
		t.Fatalf("min>max should be a validation error, got %v", err)
	}
	if err := (catalog.Criteria{Min: -1, Max: 1}).Validate(); !domain.IsValidation(err) {
		t.Fatalf("negative min should be a validation error, got %v", err)
	}
	if err := catalog.DefaultCriteria().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestSortScenarioPrice(t *testing.T) {
	items := []domain.Listing{
		{ID: "a", Name: "Amoxicillin", Price: 4.75},
		{ID: "p", Name: "Paracetamol", Price: 2.5},
	}
	got := ids(catalog.Sort(items, catalog.SortPrice))
	if diff := cmp.Diff([]string{"p", "a"}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestSortKeys(t *testing.T) {
	cases := []struct {
		key  catalog.SortKey
		want []string
	}{
		{catalog.SortNone, []string{"1", "2", "3", "4"}},
		{catalog.SortPrice, []string{"1", "4", "3", "2"}},
		{catalog.SortName, []string{"2", "3", "4", "1"}},
		{catalog.SortExpiry, []string{"2", "4", "3", "1"}},
		{catalog.SortDate, []string{"3", "1", "4", "2"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			got := ids(catalog.Sort(sample(), tc.key))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortDoesNotMutateAndIsOrdered(t *testing.T) {
	src := sample()
	before := ids(src)
	out := catalog.Sort(src, catalog.SortPrice)
	if diff := cmp.Diff(before, ids(src)); diff != "" {
		t.Fatalf("input mutated:\n%s", diff)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Price > out[i].Price {
			t.Fatalf("not ascending at %d: %v > %v", i, out[i-1].Price, out[i].Price)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	if k, err := catalog.ParseSortKey(" Price "); err != nil || k != catalog.SortPrice {
		t.Fatalf("got %q %v", k, err)
	}
	if _, err := catalog.ParseSortKey("rating"); !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestProjectModeHasNoDataEffect(t *testing.T) {
	c := catalog.Criteria{Category: "painkillers", Max: 10}
	grid := catalog.Project(sample(), c, catalog.SortName, catalog.ModeGrid)
	list := catalog.Project(sample(), c, catalog.SortName, catalog.ParseDisplayMode("LIST"))
	if list.Mode != catalog.ModeList {
		t.Fatalf("mode = %q", list.Mode)
	}
	if diff := cmp.Diff(grid.Items, list.Items); diff != "" {
		t.Fatalf("display mode changed data:\n%s", diff)
	}
	if grid.Count != 2 || grid.Items[0].ID != "4" {
		t.Fatalf("unexpected projection: %+v", grid)
	}
}

func TestVisible(t *testing.T) {
	if diff := cmp.Diff([]string{"1", "2", "4"}, ids(catalog.Visible(sample()))); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestPurchase(t *testing.T) {
	src := sample()
	out, bought, err := catalog.Purchase(src, "4", 10)
	if err != nil {
		t.Fatal(err)
	}
	if bought.Quantity != 10 || bought.Price != 2.5 {
		t.Fatalf("bought = %+v", bought)
	}
	if out[3].Quantity != 0 || out[3].Status != domain.ListingSold {
		t.Fatalf("want sold with 0 left, got %+v", out[3])
	}
	if src[3].Quantity != 10 {
		t.Fatal("input mutated")
	}
}

func TestPurchaseErrors(t *testing.T) {
	if _, _, err := catalog.Purchase(sample(), "1", 0); !domain.IsValidation(err) {
		t.Fatalf("qty 0: %v", err)
	}
	if _, _, err := catalog.Purchase(sample(), "1", 31); !errors.Is(err, domain.ErrInsufficientQuantity) {
		t.Fatalf("too many: %v", err)
	}
	if _, _, err := catalog.Purchase(sample(), "3", 1); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("pending listing: %v", err)
	}
	if _, _, err := catalog.Purchase(sample(), "nope", 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: %v", err)
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if d, ok := catalog.DaysUntil("2025-01-03", now); !ok || d != 2 {
		t.Fatalf("want 2, got %d (ok=%v)", d, ok)
	}
	if d, ok := catalog.DaysUntil("2024-12-31", now); !ok || d != -1 {
		t.Fatalf("want -1, got %d (ok=%v)", d, ok)
	}
	for _, bad := range []string{"", "soon", "2025-13-40"} {
		if _, ok := catalog.DaysUntil(bad, now); ok {
			t.Fatalf("%q should not parse", bad)
		}
	}
}
