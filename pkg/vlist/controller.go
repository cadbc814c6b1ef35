// Package vlist implements the windowed list core: a visible-range
// calculation, a display-handle recycler, and the filter/sort pipeline
// that derives the rendered view from the backing array.
//
// Everything here is single threaded. Mutations recompute derived
// state synchronously but only schedule rendering; the host calls
// Flush once per display tick to run the actual reconcile pass, which
// coalesces any number of scroll and resize signals into one render.
package vlist

import (
	"fmt"
	"log"
	"time"

	"github.com/vanderheijden86/listview/pkg/model"
)

// Config carries the construction-time options for a Controller.
type Config struct {
	// Surface supplies display nodes. Required.
	Surface Surface

	// ItemHeight is the fixed row height in cells. Must be positive.
	ItemHeight int

	// ViewportHeight is the initial container height in cells.
	ViewportHeight int

	// Virtual selects windowed rendering. Off means every item in the
	// filtered view keeps a live node.
	Virtual bool

	// Schedule, when set, is invoked the first time a render becomes
	// pending after a Flush. Hosts use it to arrange the next tick;
	// repeated mutations before that tick do not call it again.
	Schedule func()
}

// Stats is the read-only introspection snapshot.
type Stats struct {
	TotalItems    int   `json:"total_items"`
	RenderedItems int   `json:"rendered_items"`
	FilteredItems int   `json:"filtered_items"`
	VisibleRange  Range `json:"visible_range"`
}

// Controller owns the backing array, the derived view, the visible
// window, and the display handles. Whoever composes the widget owns
// exactly one instance; there is no shared registry.
type Controller struct {
	surface Surface
	rec     *Recycler

	itemHeight     int
	viewportHeight int
	scrollOffset   int
	virtual        bool

	items []model.Item // backing array, id order
	view  []model.Item // filtered and sorted, always rebuilt

	filterTerm string
	sortField  model.SortField
	sortDir    model.SortDirection

	window Range

	allNodes []Node // render-all mode: one node per view index

	dirty     bool
	scheduled bool
	schedule  func()

	subs      SubscriptionSet
	listeners map[int]func(Stats)
	nextSub   int

	lastFlush time.Duration
	dead      bool
}

// New builds a controller or reports why it cannot function. A nil
// surface means there is nothing to render into, so construction
// fails up front instead of every later operation failing one by one.
func New(cfg Config) (*Controller, error) {
	if cfg.Surface == nil {
		return nil, ErrNoSurface
	}
	if cfg.ItemHeight <= 0 {
		return nil, &ConfigError{Field: "item height", Value: cfg.ItemHeight}
	}
	if cfg.ViewportHeight < 0 {
		return nil, &ConfigError{Field: "viewport height", Value: cfg.ViewportHeight}
	}
	rec, err := NewRecycler(cfg.Surface)
	if err != nil {
		return nil, err
	}
	return &Controller{
		surface:        cfg.Surface,
		rec:            rec,
		itemHeight:     cfg.ItemHeight,
		viewportHeight: cfg.ViewportHeight,
		virtual:        cfg.Virtual,
		schedule:       cfg.Schedule,
		listeners:      make(map[int]func(Stats)),
	}, nil
}

// SetItems replaces the backing array. Input is validated at this
// boundary and copied, so the caller keeps no alias into controller
// state. On validation failure nothing changes.
func (c *Controller) SetItems(items []model.Item) error {
	if c.dead {
		return ErrTornDown
	}
	if err := model.ValidateItems(items); err != nil {
		return fmt.Errorf("set items: %w", err)
	}
	c.items = model.CopyItems(items)
	c.refresh()
	return nil
}

// AddItems appends to the backing array. The merged collection is
// validated as a whole so duplicate ids against existing items are
// caught; on failure the backing array is untouched.
func (c *Controller) AddItems(items []model.Item) error {
	if c.dead {
		return ErrTornDown
	}
	if len(items) == 0 {
		return nil
	}
	merged := append(model.CopyItems(c.items), items...)
	if err := model.ValidateItems(merged); err != nil {
		return fmt.Errorf("add items: %w", err)
	}
	c.items = merged
	c.refresh()
	return nil
}

// RemoveItem removes the item with the given id. An id that is not
// present is a no-op: no state change, no render scheduled, no error.
func (c *Controller) RemoveItem(id int) error {
	return c.RemoveItems([]int{id})
}

// RemoveItems removes every item whose id appears in ids. Ids with no
// matching item are ignored; if nothing matches at all the call is a
// complete no-op.
func (c *Controller) RemoveItems(ids []int) error {
	if c.dead {
		return ErrTornDown
	}
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]model.Item, 0, len(c.items))
	removed := 0
	for _, it := range c.items {
		if _, ok := drop[it.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	if removed == 0 {
		return nil
	}
	c.items = kept
	c.refresh()
	return nil
}

// Rename changes an item's name in place. The updated item is
// validated before the backing array changes.
func (c *Controller) Rename(id int, name string) error {
	if c.dead {
		return ErrTornDown
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("rename: no item with id %d", id)
	}
	updated := c.items[idx]
	updated.Name = name
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	c.items[idx] = updated
	c.refresh()
	return nil
}

// ToggleSelected flips an item's selected flag in place.
func (c *Controller) ToggleSelected(id int) error {
	if c.dead {
		return ErrTornDown
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("toggle selected: no item with id %d", id)
	}
	c.items[idx].Selected = !c.items[idx].Selected
	c.refresh()
	return nil
}

// SetCategory moves an item to a different category in place.
func (c *Controller) SetCategory(id int, cat model.Category) error {
	if c.dead {
		return ErrTornDown
	}
	if !cat.IsValid() {
		return fmt.Errorf("set category: invalid category %q", cat)
	}
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("set category: no item with id %d", id)
	}
	c.items[idx].Category = cat
	c.refresh()
	return nil
}

// SetFilter sets the substring filter term and rebuilds the view.
func (c *Controller) SetFilter(term string) error {
	if c.dead {
		return ErrTornDown
	}
	c.filterTerm = term
	c.refresh()
	return nil
}

// SetSort sets the sort field and direction and rebuilds the view.
// SortNone clears the sort; direction is ignored in that case.
func (c *Controller) SetSort(field model.SortField, dir model.SortDirection) error {
	if c.dead {
		return ErrTornDown
	}
	if !field.IsValid() {
		return fmt.Errorf("set sort: unknown field %q", field)
	}
	if field != model.SortNone && !dir.IsValid() {
		return fmt.Errorf("set sort: unknown direction %q", dir)
	}
	c.sortField = field
	c.sortDir = dir
	c.refresh()
	return nil
}

// SetMode switches between windowed and render-all rendering. The
// mode is an external choice; it is never derived from data size.
func (c *Controller) SetMode(virtual bool) error {
	if c.dead {
		return ErrTornDown
	}
	if c.virtual == virtual {
		return nil
	}
	c.virtual = virtual
	if virtual {
		// Render-all nodes are not pool handles; destroy them and let
		// the recycler take over on the next flush.
		c.dropAllNodes()
	} else {
		// Park every windowed handle. The pool stays warm in case the
		// mode flips back.
		c.rec.Reconcile(Range{}, nil)
	}
	c.markDirty()
	return nil
}

// SetViewportSize updates the container height and recomputes the
// window. Negative heights are invalid configuration.
func (c *Controller) SetViewportSize(height int) error {
	if c.dead {
		return ErrTornDown
	}
	if height < 0 {
		return &ConfigError{Field: "viewport height", Value: height}
	}
	c.viewportHeight = height
	c.recomputeWindow()
	c.markDirty()
	return nil
}

// OnScroll records a new scroll offset and recomputes the window.
// Offsets past either edge clamp; the render itself waits for the
// next Flush, so a burst of scroll events costs one reconcile.
func (c *Controller) OnScroll(offset int) error {
	if c.dead {
		return ErrTornDown
	}
	if offset < 0 {
		offset = 0
	}
	if max := c.maxScroll(); offset > max {
		offset = max
	}
	if offset == c.scrollOffset {
		return nil
	}
	c.scrollOffset = offset
	c.recomputeWindow()
	c.markDirty()
	return nil
}

// Flush runs at most one render pass if anything is pending. Hosts
// call it on their display tick; extra calls are free.
func (c *Controller) Flush() error {
	if c.dead {
		return ErrTornDown
	}
	c.scheduled = false
	if !c.dirty {
		return nil
	}
	c.dirty = false
	began := time.Now()
	if c.virtual {
		c.rec.Reconcile(c.window, c.view)
	} else {
		c.renderAll()
	}
	c.lastFlush = time.Since(began)
	c.notify()
	return nil
}

// Stats returns the read-only introspection snapshot.
func (c *Controller) Stats() Stats {
	return Stats{
		TotalItems:    len(c.items),
		RenderedItems: c.renderedCount(),
		FilteredItems: len(c.view),
		VisibleRange:  c.window,
	}
}

// OnChange registers a listener called with fresh stats after every
// completed render pass. The returned cancel detaches this one
// listener; Teardown detaches every listener in a single sweep.
func (c *Controller) OnChange(fn func(Stats)) (cancel func()) {
	if c.dead || fn == nil {
		return func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	cancel = func() { delete(c.listeners, id) }
	c.subs.Add(cancel)
	return cancel
}

// Teardown releases the subscription set in one call, destroys every
// display handle through the surface, and marks the controller dead.
// All later operations return ErrTornDown. Teardown is idempotent.
func (c *Controller) Teardown() {
	if c.dead {
		return
	}
	c.subs.ReleaseAll()
	c.listeners = nil
	c.rec.Teardown()
	c.dropAllNodes()
	c.items = nil
	c.view = nil
	c.dead = true
}

// Items returns a copy of the backing array.
func (c *Controller) Items() []model.Item { return model.CopyItems(c.items) }

// View returns a copy of the current filtered, sorted view.
func (c *Controller) View() []model.Item { return model.CopyItems(c.view) }

// ItemAt returns the view item at a view index.
func (c *Controller) ItemAt(index int) (model.Item, bool) {
	if index < 0 || index >= len(c.view) {
		return model.Item{}, false
	}
	return c.view[index], true
}

// NodeFor returns the live display node for a view index, if one
// exists. In render-all mode every view index has one.
func (c *Controller) NodeFor(index int) (Node, bool) {
	if c.virtual {
		return c.rec.NodeAt(index)
	}
	if index < 0 || index >= len(c.allNodes) {
		return nil, false
	}
	return c.allNodes[index], true
}

// Window returns the current visible window into the view.
func (c *Controller) Window() Range { return c.window }

// Virtual reports whether windowed rendering is active.
func (c *Controller) Virtual() bool { return c.virtual }

// FilterTerm returns the active filter term.
func (c *Controller) FilterTerm() string { return c.filterTerm }

// Sort returns the active sort field and direction.
func (c *Controller) Sort() (model.SortField, model.SortDirection) {
	return c.sortField, c.sortDir
}

// ScrollOffset returns the current clamped scroll offset.
func (c *Controller) ScrollOffset() int { return c.scrollOffset }

// ItemHeight returns the fixed row height.
func (c *Controller) ItemHeight() int { return c.itemHeight }

// ViewportHeight returns the current container height.
func (c *Controller) ViewportHeight() int { return c.viewportHeight }

// LastFlush returns how long the most recent render pass took.
func (c *Controller) LastFlush() time.Duration { return c.lastFlush }

// Pending reports whether a render is waiting for the next Flush.
func (c *Controller) Pending() bool { return c.dirty }

// PopulateFailures returns the recycler's failure count.
func (c *Controller) PopulateFailures() int { return c.rec.PopulateFailures() }

// PoolStats returns bound, pooled, and ever-allocated handle counts
// for the windowed path.
func (c *Controller) PoolStats() (bound, pooled, allocated int) {
	return c.rec.BoundCount(), c.rec.PooledCount(), c.rec.Allocated()
}

// refresh rebuilds the derived view after any backing-array, filter,
// or sort change, then recomputes the window and schedules a render.
func (c *Controller) refresh() {
	c.view = Apply(c.items, c.filterTerm, c.sortField, c.sortDir)
	if max := c.maxScroll(); c.scrollOffset > max {
		c.scrollOffset = max
	}
	c.recomputeWindow()
	c.markDirty()
}

// recomputeWindow recalculates the visible window from the current
// geometry. Kept current in both modes so Stats stays truthful.
func (c *Controller) recomputeWindow() {
	rng, err := ComputeRange(c.scrollOffset, c.viewportHeight, c.itemHeight, len(c.view))
	if err != nil {
		// Geometry was validated at construction; nothing reaches
		// this in practice.
		return
	}
	c.window = rng
}

// markDirty flags a pending render and pokes the scheduler once until
// the next Flush drains it.
func (c *Controller) markDirty() {
	c.dirty = true
	if c.schedule != nil && !c.scheduled {
		c.scheduled = true
		c.schedule()
	}
}

// maxScroll is the largest useful scroll offset for the current view.
func (c *Controller) maxScroll() int {
	total := len(c.view) * c.itemHeight
	if total <= c.viewportHeight {
		return 0
	}
	return total - c.viewportHeight
}

// renderAll keeps one live node per view index, growing and shrinking
// the node list as the view changes. No pooling here; this path is
// O(n) on purpose.
func (c *Controller) renderAll() {
	for len(c.allNodes) > len(c.view) {
		last := len(c.allNodes) - 1
		c.surface.Destroy(c.allNodes[last])
		c.allNodes = c.allNodes[:last]
	}
	for len(c.allNodes) < len(c.view) {
		node, err := c.surface.Create()
		if err != nil {
			log.Printf("vlist: node allocation failed: %v", err)
			break
		}
		c.allNodes = append(c.allNodes, node)
	}
	for i, node := range c.allNodes {
		if err := node.Update(FieldsFor(c.view[i], i)); err != nil {
			log.Printf("vlist: populate failed for index %d (item %d): %v", i, c.view[i].ID, err)
			node.Reset()
		}
	}
}

func (c *Controller) dropAllNodes() {
	for _, n := range c.allNodes {
		c.surface.Destroy(n)
	}
	c.allNodes = nil
}

func (c *Controller) renderedCount() int {
	if c.virtual {
		return c.rec.BoundCount()
	}
	return len(c.allNodes)
}

func (c *Controller) indexOf(id int) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) notify() {
	if len(c.listeners) == 0 {
		return
	}
	s := c.Stats()
	for _, fn := range c.listeners {
		fn(s)
	}
}
