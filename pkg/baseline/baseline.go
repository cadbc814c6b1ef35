// Package baseline snapshots collection metrics so later runs can be
// compared against a known-good state.
package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/listview/pkg/analysis"
	"github.com/vanderheijden86/listview/pkg/model"
)

// Version is the on-disk format version.
const Version = 1

// BaselineFile is the file name inside .lv/.
const BaselineFile = "baseline.json"

// Stats is the metric snapshot a baseline carries.
type Stats struct {
	ItemCount      int            `json:"item_count"`
	SelectedCount  int            `json:"selected_count"`
	StaleCount     int            `json:"stale_count"`
	UndatedCount   int            `json:"undated_count"`
	ValueMean      float64        `json:"value_mean"`
	ValueStdDev    float64        `json:"value_std_dev"`
	ValueTotal     int            `json:"value_total"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// TopItem is one entry of the top-by-value list, trimmed to the fields
// drift comparison needs.
type TopItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Baseline is the saved snapshot.
type Baseline struct {
	Version    int       `json:"version"`
	SavedAt    time.Time `json:"saved_at"`
	Stats      Stats     `json:"stats"`
	TopByValue []TopItem `json:"top_by_value,omitempty"`
}

// New captures a baseline from the current collection.
func New(items []model.Item, now time.Time) *Baseline {
	ins := analysis.Compute(items, now)

	b := &Baseline{
		Version: Version,
		SavedAt: now.UTC(),
		Stats: Stats{
			ItemCount:      ins.TotalItems,
			SelectedCount:  ins.Selected,
			StaleCount:     ins.StaleCount,
			UndatedCount:   ins.UndatedCount,
			ValueMean:      ins.Values.Mean,
			ValueStdDev:    ins.Values.StdDev,
			ValueTotal:     ins.Values.Total,
			CategoryCounts: make(map[string]int, len(ins.Categories)),
		},
	}
	for _, c := range ins.Categories {
		b.Stats.CategoryCounts[string(c.Category)] = c.Count
	}
	for _, item := range ins.TopByValue {
		b.TopByValue = append(b.TopByValue, TopItem{ID: item.ID, Name: item.Name, Value: item.Value})
	}
	return b
}

// DefaultPath returns root/.lv/baseline.json.
func DefaultPath(root string) string {
	if root == "" {
		root = "."
	}
	return filepath.Join(root, ".lv", BaselineFile)
}

// Exists reports whether a baseline file is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes the baseline, creating the directory if needed.
func Save(path string, b *Baseline) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(path, data, 0644)
}

// Load reads a baseline and checks its format version.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Version != Version {
		return nil, fmt.Errorf("baseline %s has format version %d, want %d (re-save with --save-baseline)", path, b.Version, Version)
	}
	return &b, nil
}

// Summary returns a short human-readable description of the baseline.
func (b *Baseline) Summary() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Baseline saved %s\n", b.SavedAt.Format("2006-01-02 15:04 MST")))
	sb.WriteString(fmt.Sprintf("  Items:    %d (%d selected, %d stale)\n",
		b.Stats.ItemCount, b.Stats.SelectedCount, b.Stats.StaleCount))
	sb.WriteString(fmt.Sprintf("  Values:   mean %.1f, total %d\n", b.Stats.ValueMean, b.Stats.ValueTotal))

	for _, c := range model.Categories() {
		sb.WriteString(fmt.Sprintf("  %-8s %d\n", string(c)+":", b.Stats.CategoryCounts[string(c)]))
	}
	if len(b.TopByValue) > 0 {
		sb.WriteString("  Top by value:\n")
		for _, item := range b.TopByValue {
			sb.WriteString(fmt.Sprintf("    #%d %s (%d)\n", item.ID, item.Name, item.Value))
		}
	}
	return sb.String()
}
