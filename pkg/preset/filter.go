package preset

import (
	"strconv"
	"strings"
	"time"

	"github.com/vanderheijden86/listview/pkg/model"
)

// FilterItems returns the items matching f. The term matches the same
// way the list filter does: case-insensitive substring on name,
// category, and the stringified id. now anchors the relative date
// bounds; undated items never pass a date-bounded filter. Bounds that
// fail to parse are ignored, Validate reports them on user-facing
// paths before filtering happens.
func FilterItems(items []model.Item, f FilterConfig, now time.Time) []model.Item {
	var newerThan, olderThan time.Time
	var hasNewer, hasOlder bool
	if f.NewerThan != "" {
		if t, err := ParseRelativeTime(f.NewerThan, now); err == nil {
			newerThan, hasNewer = t, true
		}
	}
	if f.OlderThan != "" {
		if t, err := ParseRelativeTime(f.OlderThan, now); err == nil {
			olderThan, hasOlder = t, true
		}
	}

	term := strings.ToLower(strings.TrimSpace(f.Term))

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if term != "" && !termMatches(it, term) {
			continue
		}
		if len(f.Categories) > 0 && !categoryListed(f.Categories, it.Category) {
			continue
		}
		if f.MinValue != nil && it.Value < *f.MinValue {
			continue
		}
		if f.MaxValue != nil && it.Value > *f.MaxValue {
			continue
		}
		if f.Selected != nil && it.Selected != *f.Selected {
			continue
		}
		if hasNewer || hasOlder {
			ts, ok := it.ParsedDate()
			if !ok {
				continue
			}
			if hasNewer && ts.Before(newerThan) {
				continue
			}
			if hasOlder && !ts.Before(olderThan) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func termMatches(it model.Item, needle string) bool {
	if strings.Contains(strings.ToLower(it.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(string(it.Category)), needle) {
		return true
	}
	return strings.Contains(strconv.Itoa(it.ID), needle)
}

func categoryListed(cats []string, c model.Category) bool {
	for _, s := range cats {
		if strings.EqualFold(s, string(c)) {
			return true
		}
	}
	return false
}
