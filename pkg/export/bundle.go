package export

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/listview/pkg/model"
)

// File names inside an export bundle directory.
const (
	BundleReport     = "report.md"
	BundleCategories = "categories.svg"
	BundleValues     = "values.png"
	BundleItems      = "items.json"
)

// SaveBundle writes the markdown report, both charts, and the raw items
// into dir. The four files are produced concurrently.
func SaveBundle(items []model.Item, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		// SaveMarkdownToFile sorts in place, so it gets its own copy.
		return SaveMarkdownToFile(model.CopyItems(items), filepath.Join(dir, BundleReport))
	})
	g.Go(func() error {
		return SaveCategorySVG(items, filepath.Join(dir, BundleCategories))
	})
	g.Go(func() error {
		return SaveValueChart(items, filepath.Join(dir, BundleValues))
	})
	g.Go(func() error {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, BundleItems), append(data, '\n'), 0644)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("export bundle: %w", err)
	}
	return nil
}
