package loader

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vanderheijden86/listview/pkg/model"
)

// demoSeed keeps --demo output stable across runs so screenshots and
// e2e fixtures do not churn.
const demoSeed = 42

var demoVerbs = []string{
	"Review", "Archive", "Migrate", "Rotate", "Audit", "Refresh",
	"Index", "Compact", "Export", "Verify", "Prune", "Sync",
}

var demoNouns = []string{
	"invoices", "access logs", "build cache", "user records",
	"backup set", "mail queue", "release notes", "metrics batch",
	"session store", "media library", "config snapshots", "changelog",
}

// GenerateItems builds n demo items with stable ids, plausible names,
// and dates spread over the year before now. The same n and now always
// produce the same collection.
func GenerateItems(n int, now time.Time) []model.Item {
	if n <= 0 {
		return []model.Item{}
	}

	rng := rand.New(rand.NewSource(demoSeed))
	items := make([]model.Item, 0, n)
	for i := 0; i < n; i++ {
		verb := demoVerbs[rng.Intn(len(demoVerbs))]
		noun := demoNouns[rng.Intn(len(demoNouns))]
		name := fmt.Sprintf("%s %s", verb, noun)
		if n > len(demoVerbs)*len(demoNouns) {
			// Large collections repeat combinations; suffix the id to
			// keep names distinguishable on screen.
			name = fmt.Sprintf("%s #%d", name, i)
		}

		// Roughly 1 in 5 urgent, 1 in 4 low, the rest normal.
		var category model.Category
		switch roll := rng.Intn(20); {
		case roll < 4:
			category = model.CategoryUrgent
		case roll < 9:
			category = model.CategoryLow
		default:
			category = model.CategoryNormal
		}

		daysAgo := rng.Intn(365)
		items = append(items, model.Item{
			ID:       i,
			Name:     name,
			Category: category,
			Value:    rng.Intn(1000),
			Date:     now.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
			Selected: rng.Intn(10) == 0,
		})
	}
	return items
}
