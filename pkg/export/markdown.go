package export

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/listview/pkg/model"
)

// GenerateMarkdown creates a markdown report of the given items
func GenerateMarkdown(items []model.Item, title string) (string, error) {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC1123)))

	// Summary
	sb.WriteString("## Summary\n\n")

	counts := make(map[model.Category]int)
	valueSums := make(map[model.Category]int)
	selected := 0
	totalValue := 0

	for _, it := range items {
		counts[it.Category]++
		valueSums[it.Category] += it.Value
		totalValue += it.Value
		if it.Selected {
			selected++
		}
	}
	sb.WriteString(fmt.Sprintf("- **Total**: %d\n", len(items)))
	sb.WriteString(fmt.Sprintf("- **Selected**: %d\n", selected))
	sb.WriteString(fmt.Sprintf("- **Total value**: %d\n\n", totalValue))

	// Category breakdown
	sb.WriteString("## Categories\n\n")
	sb.WriteString("| Category | Count | Share | Mean value |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, cat := range model.Categories() {
		n := counts[cat]
		share := 0.0
		if len(items) > 0 {
			share = float64(n) / float64(len(items)) * 100
		}
		mean := 0.0
		if n > 0 {
			mean = float64(valueSums[cat]) / float64(n)
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% | %.1f |\n", cat, n, share, mean))
	}
	sb.WriteString("\n")

	// Top by value
	top := topByValue(items, 10)
	if len(top) > 0 {
		sb.WriteString("## Top by Value\n\n")
		for _, it := range top {
			sb.WriteString(fmt.Sprintf("- **#%d %s**: %d\n", it.ID, it.Name, it.Value))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Table of Contents\n\n")
	for _, it := range items {
		link := fmt.Sprintf("#%d-%s", it.ID, anchorName(it.Name)) // This is heuristic, markdown anchors vary by renderer
		sb.WriteString(fmt.Sprintf("- [#%d %s](%s) (%s)\n", it.ID, it.Name, link, it.Category))
	}
	sb.WriteString("\n---\n\n")

	// Items
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("## %d %s\n\n", it.ID, it.Name))

		// Metadata Table
		date := it.Date
		if date == "" {
			date = "-"
		}
		sb.WriteString("| Category | Value | Date | Selected |\n")
		sb.WriteString("|---|---|---|---|\n")
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %v |\n\n", it.Category, it.Value, date, it.Selected))

		sb.WriteString("---\n\n")
	}

	return sb.String(), nil
}

// anchorName lowercases a name and joins its words with dashes, the way
// most renderers build heading anchors.
func anchorName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	var out []string
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return strings.Join(out, "-")
}

// topByValue returns up to n items sorted by value, highest first.
func topByValue(items []model.Item, n int) []model.Item {
	top := make([]model.Item, len(items))
	copy(top, items)
	sort.Slice(top, func(i, j int) bool {
		if top[i].Value != top[j].Value {
			return top[i].Value > top[j].Value
		}
		return top[i].ID < top[j].ID
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// SaveMarkdownToFile writes the generated markdown to a file
func SaveMarkdownToFile(items []model.Item, filename string) error {
	// Sort items for the report
	sort.Slice(items, func(i, j int) bool {
		// Sort logic: urgent first, then value, then id
		// (Same as UI)
		if items[i].Category != items[j].Category {
			return items[i].Category.Rank() < items[j].Category.Rank()
		}
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].ID < items[j].ID
	})

	content, err := GenerateMarkdown(items, "lv Export")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(content), 0644)
}
