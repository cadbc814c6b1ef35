package vlist

import (
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/listview/pkg/model"
)

// checkInvariants asserts the structural guarantees that must hold
// after every settled render, regardless of operation history.
func checkInvariants(t *rapid.T, c *Controller) {
	s := c.Stats()

	if s.VisibleRange.Start < 0 || s.VisibleRange.Start > s.VisibleRange.End {
		t.Fatalf("window %+v is inverted", s.VisibleRange)
	}
	if s.VisibleRange.End > s.FilteredItems {
		t.Fatalf("window %+v exceeds %d filtered items", s.VisibleRange, s.FilteredItems)
	}
	if s.FilteredItems > s.TotalItems {
		t.Fatalf("filtered %d > total %d", s.FilteredItems, s.TotalItems)
	}

	bound, pooled, allocated := c.PoolStats()
	if bound+pooled != allocated {
		t.Fatalf("handle leak: bound=%d pooled=%d allocated=%d", bound, pooled, allocated)
	}

	if c.Virtual() {
		if s.RenderedItems != s.VisibleRange.Len() {
			t.Fatalf("rendered %d != settled window %+v", s.RenderedItems, s.VisibleRange)
		}
		visible := (c.ViewportHeight() + c.ItemHeight() - 1) / c.ItemHeight()
		if limit := visible + 2*visible; s.RenderedItems > limit {
			t.Fatalf("rendered %d exceeds window+2*buffer limit %d", s.RenderedItems, limit)
		}
	} else {
		if s.RenderedItems != s.FilteredItems {
			t.Fatalf("render-all rendered %d != filtered %d", s.RenderedItems, s.FilteredItems)
		}
	}
}

// TestController_RandomOpsInvariants drives the controller through
// random operation sequences, settling after each step.
func TestController_RandomOpsInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		surface := newFakeSurface()
		c, err := New(Config{Surface: surface, ItemHeight: 60, ViewportHeight: 450, Virtual: true})
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		defer c.Teardown()

		nextID := rapid.IntRange(0, 200).Draw(t, "seed")
		if err := c.SetItems(genItems(nextID)); err != nil {
			t.Fatalf("SetItems() error: %v", err)
		}
		c.Flush()
		checkInvariants(t, c)

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 6).Draw(t, "op") {
			case 0:
				if err := c.OnScroll(rapid.IntRange(0, 100_000).Draw(t, "offset")); err != nil {
					t.Fatalf("OnScroll() error: %v", err)
				}
			case 1:
				term := rapid.SampledFrom([]string{"", "1", "item", "urgent", "zzz"}).Draw(t, "term")
				if err := c.SetFilter(term); err != nil {
					t.Fatalf("SetFilter() error: %v", err)
				}
			case 2:
				// May or may not hit an existing id; both are legal.
				if err := c.RemoveItem(rapid.IntRange(0, 250).Draw(t, "rm")); err != nil {
					t.Fatalf("RemoveItem() error: %v", err)
				}
			case 3:
				n := rapid.IntRange(1, 20).Draw(t, "add")
				batch := make([]model.Item, n)
				for j := range batch {
					batch[j] = model.Item{
						ID:       nextID,
						Name:     "item-" + strconv.Itoa(nextID),
						Category: model.CategoryNormal,
						Value:    nextID,
					}
					nextID++
				}
				if err := c.AddItems(batch); err != nil {
					t.Fatalf("AddItems() error: %v", err)
				}
			case 4:
				if err := c.SetViewportSize(rapid.IntRange(0, 1200).Draw(t, "viewport")); err != nil {
					t.Fatalf("SetViewportSize() error: %v", err)
				}
			case 5:
				field := rapid.SampledFrom(model.SortFields()).Draw(t, "field")
				dir := rapid.SampledFrom([]model.SortDirection{model.SortAsc, model.SortDesc}).Draw(t, "dir")
				if err := c.SetSort(field, dir); err != nil {
					t.Fatalf("SetSort() error: %v", err)
				}
			case 6:
				if err := c.SetMode(rapid.Bool().Draw(t, "virtual")); err != nil {
					t.Fatalf("SetMode() error: %v", err)
				}
			}
			c.Flush()
			checkInvariants(t, c)
		}
	})
}

// TestSubscriptionSet_ReleaseAll covers the one-call listener release
// contract on its own.
func TestSubscriptionSet_ReleaseAll(t *testing.T) {
	var s SubscriptionSet
	order := []int{}
	s.Add(func() { order = append(order, 1) })
	s.Add(nil)
	s.Add(func() { order = append(order, 2) })

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (nil ignored)", s.Len())
	}
	s.ReleaseAll()
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("release order = %v, want [2 1]", order)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after release = %d, want 0", s.Len())
	}

	// Releasing an empty set is fine.
	s.ReleaseAll()
}
