// Package analysis derives summary statistics from item collections
// for the insights overlay and robot output.
package analysis

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/listview/pkg/model"
)

// topItemsLimit caps the top-by-value list so robot output stays bounded.
const topItemsLimit = 5

// StaleAfter is how old an item's date must be before it counts as stale.
const StaleAfter = 30 * 24 * time.Hour

// ValueStats summarizes the value distribution of a collection.
type ValueStats struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Total  int     `json:"total"`
}

// CategoryBreakdown is the per-category slice of the collection.
type CategoryBreakdown struct {
	Category  model.Category `json:"category"`
	Count     int            `json:"count"`
	Share     float64        `json:"share"` // Count / TotalItems (0.0-1.0)
	MeanValue float64        `json:"mean_value"`
}

// Insights is the full derived summary of a collection.
type Insights struct {
	TotalItems    int                 `json:"total_items"`
	Selected      int                 `json:"selected"`
	SelectedShare float64             `json:"selected_share"`
	Categories    []CategoryBreakdown `json:"categories"`
	Values        ValueStats          `json:"values"`
	TopByValue    []model.Item        `json:"top_by_value,omitempty"`
	StaleCount    int                 `json:"stale_count"`
	UndatedCount  int                 `json:"undated_count"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// Compute builds insights for a collection. Items with unparseable or
// missing dates count as undated rather than stale.
func Compute(items []model.Item, now time.Time) *Insights {
	ins := &Insights{
		TotalItems:  len(items),
		GeneratedAt: now,
	}

	if len(items) == 0 {
		ins.Categories = emptyBreakdown()
		return ins
	}

	values := make([]float64, 0, len(items))
	catCount := map[model.Category]int{}
	catSum := map[model.Category]float64{}
	staleCutoff := now.Add(-StaleAfter)

	for _, item := range items {
		values = append(values, float64(item.Value))
		catCount[item.Category]++
		catSum[item.Category] += float64(item.Value)
		ins.Values.Total += item.Value

		if item.Selected {
			ins.Selected++
		}

		if d, ok := item.ParsedDate(); !ok {
			ins.UndatedCount++
		} else if d.Before(staleCutoff) {
			ins.StaleCount++
		}
	}

	ins.SelectedShare = float64(ins.Selected) / float64(len(items))

	for _, c := range model.Categories() {
		b := CategoryBreakdown{
			Category: c,
			Count:    catCount[c],
			Share:    float64(catCount[c]) / float64(len(items)),
		}
		if b.Count > 0 {
			b.MeanValue = catSum[c] / float64(b.Count)
		}
		ins.Categories = append(ins.Categories, b)
	}

	// Quantiles need the sample sorted.
	sort.Float64s(values)
	ins.Values.Min = int(values[0])
	ins.Values.Max = int(values[len(values)-1])
	ins.Values.Mean = stat.Mean(values, nil)
	ins.Values.Median = stat.Quantile(0.5, stat.Empirical, values, nil)
	ins.Values.P90 = stat.Quantile(0.9, stat.Empirical, values, nil)
	if len(values) > 1 {
		ins.Values.StdDev = stat.StdDev(values, nil)
	}

	ins.TopByValue = topByValue(items, topItemsLimit)

	return ins
}

// topByValue returns up to limit items ordered by value descending,
// ties broken by id so the list is stable.
func topByValue(items []model.Item, limit int) []model.Item {
	sorted := model.CopyItems(items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func emptyBreakdown() []CategoryBreakdown {
	out := make([]CategoryBreakdown, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		out = append(out, CategoryBreakdown{Category: c})
	}
	return out
}
