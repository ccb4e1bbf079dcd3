package catalog

import (
	"strings"

	"medishare/internal/domain"
)

type DisplayMode string

const (
	ModeGrid DisplayMode = "grid"
	ModeList DisplayMode = "list"
)

func ParseDisplayMode(s string) DisplayMode {
	if DisplayMode(strings.ToLower(strings.TrimSpace(s))) == ModeList {
		return ModeList
	}
	return ModeGrid
}

// View is what a browse page renders. Mode never changes Items.
type View struct {
	Mode  DisplayMode      `json:"view"`
	Sort  SortKey          `json:"sort,omitempty"`
	Count int              `json:"count"`
	Items []domain.Listing `json:"items"`
}

// Project filters, then sorts, the source listings for display.
func Project(items []domain.Listing, c Criteria, key SortKey, mode DisplayMode) View {
	sorted := Sort(Filter(items, c), key)
	return View{Mode: mode, Sort: key, Count: len(sorted), Items: sorted}
}
