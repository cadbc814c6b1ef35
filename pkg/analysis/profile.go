package analysis

import (
	"time"

	"github.com/vanderheijden86/listview/pkg/model"
	"github.com/vanderheijden86/listview/pkg/vlist"
)

// StartupProfile breaks down where startup time goes for a collection.
// Load is filled in by the caller, which owns the I/O.
type StartupProfile struct {
	ItemCount int `json:"item_count"`

	Load     time.Duration `json:"load"`
	Validate time.Duration `json:"validate"`
	Filter   time.Duration `json:"filter"`
	Sort     time.Duration `json:"sort"`
	Insights time.Duration `json:"insights"`
	Total    time.Duration `json:"total"` // Excludes Load
}

// ProfileStartup times the work a session does on a freshly loaded
// collection: validation, one full filter scan, one full sort pass,
// and the insights build.
func ProfileStartup(items []model.Item) *StartupProfile {
	profile := &StartupProfile{ItemCount: len(items)}
	start := time.Now()

	t0 := time.Now()
	_ = model.ValidateItems(items)
	profile.Validate = time.Since(t0)

	t0 = time.Now()
	_ = vlist.Apply(items, "a", model.SortNone, "")
	profile.Filter = time.Since(t0)

	t0 = time.Now()
	_ = vlist.Apply(items, "", model.SortByValue, model.SortDesc)
	profile.Sort = time.Since(t0)

	t0 = time.Now()
	_ = Compute(items, time.Now())
	profile.Insights = time.Since(t0)

	profile.Total = time.Since(start)
	return profile
}
