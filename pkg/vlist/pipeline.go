package vlist

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vanderheijden86/listview/pkg/model"
)

// Apply derives the rendered view from the backing array: substring
// filter first, then a stable sort on the chosen field. The source
// slice is never touched and the result is always a fresh slice, so
// callers can hold the previous view and compare.
func Apply(source []model.Item, term string, field model.SortField, dir model.SortDirection) []model.Item {
	out := filterItems(source, term)
	sortItems(out, field, dir)
	return out
}

// filterItems keeps items matching the term. The empty term matches
// everything.
func filterItems(source []model.Item, term string) []model.Item {
	out := make([]model.Item, 0, len(source))
	if term == "" {
		return append(out, source...)
	}
	needle := strings.ToLower(term)
	for _, it := range source {
		if matchesTerm(it, needle) {
			out = append(out, it)
		}
	}
	return out
}

// matchesTerm checks a lowercased needle against the name, the
// category, and the stringified id.
func matchesTerm(it model.Item, needle string) bool {
	if strings.Contains(strings.ToLower(it.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(string(it.Category)), needle) {
		return true
	}
	return strings.Contains(strconv.Itoa(it.ID), needle)
}

// sortItems sorts in place with a stable algorithm so equal keys keep
// their original relative order. String fields compare
// case-insensitively. SortNone leaves the slice in source order.
func sortItems(items []model.Item, field model.SortField, dir model.SortDirection) {
	less := lessFor(field)
	if less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if dir == model.SortDesc {
			// Swapped arguments flip the order while keeping ties
			// untouched, which preserves stability.
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func lessFor(field model.SortField) func(a, b model.Item) bool {
	switch field {
	case model.SortByID:
		return func(a, b model.Item) bool { return a.ID < b.ID }
	case model.SortByName:
		return func(a, b model.Item) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case model.SortByCategory:
		return func(a, b model.Item) bool {
			return strings.ToLower(string(a.Category)) < strings.ToLower(string(b.Category))
		}
	case model.SortByValue:
		return func(a, b model.Item) bool { return a.Value < b.Value }
	case model.SortByDate:
		return func(a, b model.Item) bool {
			return strings.ToLower(a.Date) < strings.ToLower(b.Date)
		}
	}
	return nil
}
