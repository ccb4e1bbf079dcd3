// Package collection holds copy-on-write helpers shared by the catalog,
// moderation and support logic. Inputs are never modified.
package collection

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"medishare/internal/domain"
)

// Filter returns the items satisfying keep, in input order. The result is
// never nil so callers can encode it as an empty list.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Update returns a new slice where the item with the given id is replaced by
// fn(item). A missing id yields a *domain.NotFoundError and a nil slice.
func Update[T any](items []T, id string, idOf func(T) string, kind string, fn func(T) (T, error)) ([]T, error) {
	i := slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
	if i < 0 {
		return nil, &domain.NotFoundError{Kind: kind, ID: id}
	}
	next, err := fn(items[i])
	if err != nil {
		return nil, err
	}
	out := slices.Clone(items)
	out[i] = next
	return out, nil
}

// Find returns the item with the given id.
func Find[T any](items []T, id string, idOf func(T) string, kind string) (T, error) {
	for _, it := range items {
		if idOf(it) == id {
			return it, nil
		}
	}
	var zero T
	return zero, &domain.NotFoundError{Kind: kind, ID: id}
}

// Fold applies Unicode case folding so "ß" and "SS" style pairs compare equal.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Contains reports whether needle occurs in haystack ignoring case.
// An empty needle matches everything.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

// ContainsAny is Contains OR-combined over several fields.
func ContainsAny(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	n := Fold(needle)
	for _, f := range fields {
		if strings.Contains(Fold(f), n) {
			return true
		}
	}
	return false
}

// IsAll reports whether an option filter value means "no filter".
func IsAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}
