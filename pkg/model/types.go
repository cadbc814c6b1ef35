// Package model defines the item records the viewer operates on.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Category buckets items by urgency. Stored as a plain string so data
// files stay readable and diffable.
type Category string

const (
	CategoryUrgent Category = "urgent"
	CategoryNormal Category = "normal"
	CategoryLow    Category = "low"
)

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryUrgent, CategoryNormal, CategoryLow:
		return true
	}
	return false
}

// Categories returns the known categories in display order, most urgent
// first. Board columns and histogram buckets follow this order.
func Categories() []Category {
	return []Category{CategoryUrgent, CategoryNormal, CategoryLow}
}

// Rank returns the display rank of the category (0 = most urgent).
// Unknown categories sort last.
func (c Category) Rank() int {
	switch c {
	case CategoryUrgent:
		return 0
	case CategoryNormal:
		return 1
	case CategoryLow:
		return 2
	}
	return 3
}

// Item is a single list entry. IDs are unique and stable for the
// lifetime of a collection; the backing array keeps items in id order.
// Name, Category, Value, and Selected are mutated in place by edit
// operations; everything about rendering is derived elsewhere.
type Item struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Value    int      `json:"value"`
	Date     string   `json:"date,omitempty"`
	Selected bool     `json:"selected,omitempty"`
}

// Validate checks that a single item is well formed. Value is
// intentionally unconstrained and Date is freeform (consumers that need
// a time parse it and tolerate failure).
func (i Item) Validate() error {
	if i.ID < 0 {
		return fmt.Errorf("item id must be non-negative, got %d", i.ID)
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("item %d: name is required", i.ID)
	}
	if !i.Category.IsValid() {
		return fmt.Errorf("item %d: invalid category %q (want urgent, normal, or low)", i.ID, i.Category)
	}
	return nil
}

// ValidateItems checks every item and rejects duplicate ids. This runs
// at the boundary where bulk data enters the system, so code past the
// boundary can trust the collection.
func ValidateItems(items []Item) error {
	seen := make(map[int]int, len(items))
	for idx, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item at position %d: %w", idx, err)
		}
		if prev, ok := seen[it.ID]; ok {
			return fmt.Errorf("duplicate item id %d at positions %d and %d", it.ID, prev, idx)
		}
		seen[it.ID] = idx
	}
	return nil
}

// dateFormats are the layouts item dates may arrive in.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParsedDate parses the item's Date field. The second return is false
// when the field is empty or not in a known layout; callers treat such
// items as undated.
func (i Item) ParsedDate() (time.Time, bool) {
	s := strings.TrimSpace(i.Date)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CopyItems returns a fresh slice with the same elements. Item has no
// reference fields, so a shallow copy is a full copy.
func CopyItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// SortField names an item field the view can be ordered by. The empty
// value means no sort (source order).
type SortField string

const (
	SortNone       SortField = ""
	SortByID       SortField = "id"
	SortByName     SortField = "name"
	SortByCategory SortField = "category"
	SortByValue    SortField = "value"
	SortByDate     SortField = "date"
)

// IsValid reports whether f is a known sort field. SortNone is valid.
func (f SortField) IsValid() bool {
	switch f {
	case SortNone, SortByID, SortByName, SortByCategory, SortByValue, SortByDate:
		return true
	}
	return false
}

// SortFields returns the sortable fields in picker display order.
func SortFields() []SortField {
	return []SortField{SortByName, SortByCategory, SortByValue, SortByDate, SortByID}
}

// DefaultDirection returns the direction users usually want for a
// field: newest dates and biggest values first, everything else
// ascending. Preset files that omit a direction get this.
func (f SortField) DefaultDirection() SortDirection {
	switch f {
	case SortByValue, SortByDate:
		return SortDesc
	}
	return SortAsc
}

// SortDirection is the order applied to the chosen sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid reports whether d is a known direction.
func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}
