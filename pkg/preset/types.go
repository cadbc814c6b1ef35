package preset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vanderheijden86/listview/pkg/model"
)

// View mode names accepted in preset files.
const (
	ViewModeAll      = "all"
	ViewModeWindowed = "windowed"
)

// Preset defines a reusable view configuration: which items to show,
// how to order them, and how to render them.
type Preset struct {
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Filters     FilterConfig `yaml:"filters,omitempty" json:"filters,omitempty"`
	Sort        SortConfig   `yaml:"sort,omitempty" json:"sort,omitempty"`
	View        ViewConfig   `yaml:"view,omitempty" json:"view,omitempty"`
}

// FilterConfig defines which items to include
type FilterConfig struct {
	Term       string   `yaml:"term,omitempty" json:"term,omitempty"`               // Substring match on name, category, id
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`   // urgent, normal, low
	MinValue   *int     `yaml:"min_value,omitempty" json:"min_value,omitempty"`     // Inclusive lower bound
	MaxValue   *int     `yaml:"max_value,omitempty" json:"max_value,omitempty"`     // Inclusive upper bound
	Selected   *bool    `yaml:"selected,omitempty" json:"selected,omitempty"`       // Only (de)selected items
	NewerThan  string   `yaml:"newer_than,omitempty" json:"newer_than,omitempty"`   // Relative: "7d", "2w", "1m" or ISO date
	OlderThan  string   `yaml:"older_than,omitempty" json:"older_than,omitempty"`   // Relative or ISO date
}

// SortConfig defines how to order items
type SortConfig struct {
	Field     string `yaml:"field" json:"field"`                             // name, category, value, date, id
	Direction string `yaml:"direction,omitempty" json:"direction,omitempty"` // asc, desc (default depends on field)
}

// ViewConfig controls display options
type ViewConfig struct {
	Mode       string `yaml:"mode,omitempty" json:"mode,omitempty"`               // all or windowed
	ItemHeight int    `yaml:"item_height,omitempty" json:"item_height,omitempty"` // Row height override (0 = default)
	MaxItems   int    `yaml:"max_items,omitempty" json:"max_items,omitempty"`     // Limit displayed items (0 = unlimited)
}

// Validate checks a preset for internal consistency so bad files fail
// at load time rather than mid-session.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("preset name is required")
	}
	for _, c := range p.Filters.Categories {
		if !model.Category(c).IsValid() {
			return fmt.Errorf("preset %q: unknown category %q", p.Name, c)
		}
	}
	if p.Filters.MinValue != nil && p.Filters.MaxValue != nil && *p.Filters.MinValue > *p.Filters.MaxValue {
		return fmt.Errorf("preset %q: min_value %d exceeds max_value %d", p.Name, *p.Filters.MinValue, *p.Filters.MaxValue)
	}
	if p.Filters.NewerThan != "" {
		if _, err := ParseRelativeTime(p.Filters.NewerThan, time.Now()); err != nil {
			return fmt.Errorf("preset %q: newer_than: %w", p.Name, err)
		}
	}
	if p.Filters.OlderThan != "" {
		if _, err := ParseRelativeTime(p.Filters.OlderThan, time.Now()); err != nil {
			return fmt.Errorf("preset %q: older_than: %w", p.Name, err)
		}
	}
	if !model.SortField(p.Sort.Field).IsValid() {
		return fmt.Errorf("preset %q: unknown sort field %q", p.Name, p.Sort.Field)
	}
	if p.Sort.Direction != "" && !model.SortDirection(p.Sort.Direction).IsValid() {
		return fmt.Errorf("preset %q: unknown sort direction %q", p.Name, p.Sort.Direction)
	}
	switch p.View.Mode {
	case "", ViewModeAll, ViewModeWindowed:
	default:
		return fmt.Errorf("preset %q: unknown view mode %q (want %q or %q)", p.Name, p.View.Mode, ViewModeAll, ViewModeWindowed)
	}
	if p.View.ItemHeight < 0 {
		return fmt.Errorf("preset %q: item_height must not be negative", p.Name)
	}
	if p.View.MaxItems < 0 {
		return fmt.Errorf("preset %q: max_items must not be negative", p.Name)
	}
	return nil
}

// SortField returns the typed sort field with its default direction
// filled in when the file omitted one.
func (p Preset) SortField() (model.SortField, model.SortDirection) {
	field := model.SortField(p.Sort.Field)
	dir := model.SortDirection(p.Sort.Direction)
	if field != model.SortNone && dir == "" {
		dir = field.DefaultDirection()
	}
	return field, dir
}

// relativeTimePattern matches relative time expressions like "14d", "2w", "1m", "1y"
var relativeTimePattern = regexp.MustCompile(`^(\d+)([dwmy])$`)

// ParseRelativeTime converts a relative time string to an absolute time.
// Supports: Nd (days), Nw (weeks), Nm (months), Ny (years)
// If the string is not a relative time, it tries to parse as ISO 8601.
// Returns zero time if parsing fails.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	s = strings.TrimSpace(s)

	// Try relative time first (case-insensitive)
	if matches := relativeTimePattern.FindStringSubmatch(strings.ToLower(s)); matches != nil {
		n, _ := strconv.Atoi(matches[1])
		unit := matches[2]

		switch unit {
		case "d":
			return now.AddDate(0, 0, -n), nil
		case "w":
			return now.AddDate(0, 0, -n*7), nil
		case "m":
			return now.AddDate(0, -n, 0), nil
		case "y":
			return now.AddDate(-n, 0, 0), nil
		}
	}

	// Try ISO 8601 formats (preserve case for parsing)
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &TimeParseError{Input: s}
}

// TimeParseError indicates a time parsing failure
type TimeParseError struct {
	Input string
}

func (e *TimeParseError) Error() string {
	return "invalid time format: " + e.Input + " (expected relative like '14d', '2w', '1m' or ISO date)"
}

// DefaultPreset shows everything in source order, render-all.
func DefaultPreset() Preset {
	return Preset{
		Name:        "default",
		Description: "Everything in source order",
		View: ViewConfig{
			Mode: ViewModeAll,
		},
	}
}

// UrgentPreset narrows to the urgent category, biggest values first.
func UrgentPreset() Preset {
	return Preset{
		Name:        "urgent",
		Description: "Urgent items, biggest values first",
		Filters: FilterConfig{
			Categories: []string{"urgent"},
		},
		Sort: SortConfig{
			Field:     "value",
			Direction: "desc",
		},
	}
}

// HighValuePreset keeps items above a value floor, windowed for the
// large collections this tends to be used on.
func HighValuePreset() Preset {
	min := 500
	return Preset{
		Name:        "high-value",
		Description: "Items valued 500 or more",
		Filters: FilterConfig{
			MinValue: &min,
		},
		Sort: SortConfig{
			Field:     "value",
			Direction: "desc",
		},
		View: ViewConfig{
			Mode: ViewModeWindowed,
		},
	}
}

// RecentPreset shows items dated within the last week.
func RecentPreset() Preset {
	return Preset{
		Name:        "recent",
		Description: "Items dated in the last 7 days",
		Filters: FilterConfig{
			NewerThan: "7d",
		},
		Sort: SortConfig{
			Field:     "date",
			Direction: "desc",
		},
	}
}

// SelectedPreset narrows to selected items.
func SelectedPreset() Preset {
	selected := true
	return Preset{
		Name:        "selected",
		Description: "Only selected items",
		Filters: FilterConfig{
			Selected: &selected,
		},
		Sort: SortConfig{
			Field: "name",
		},
	}
}

// StalePreset shows items not touched in 30+ days, oldest first.
func StalePreset() Preset {
	return Preset{
		Name:        "stale",
		Description: "Items dated 30+ days ago",
		Filters: FilterConfig{
			OlderThan: "30d",
		},
		Sort: SortConfig{
			Field:     "date",
			Direction: "asc",
		},
	}
}

// BuiltinPresets returns all built-in presets
func BuiltinPresets() []Preset {
	return []Preset{
		DefaultPreset(),
		UrgentPreset(),
		HighValuePreset(),
		RecentPreset(),
		SelectedPreset(),
		StalePreset(),
	}
}
