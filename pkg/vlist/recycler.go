package vlist

import (
	"log"
	"sort"

	"github.com/vanderheijden86/listview/pkg/model"
)

// HandleState tracks where a display handle currently lives.
type HandleState int

const (
	// StatePooled means the handle is parked in the free list.
	StatePooled HandleState = iota
	// StateBound means the handle is showing the item at some view
	// index.
	StateBound
)

func (s HandleState) String() string {
	switch s {
	case StatePooled:
		return "pooled"
	case StateBound:
		return "bound"
	}
	return "unknown"
}

// Fields is the complete set of display values written onto a node
// when it binds to an item. Writing equal Fields twice must leave the
// node in identical observable state.
type Fields struct {
	Index    int
	ID       int
	Name     string
	Category model.Category
	Value    int
	Date     string
	Selected bool
}

// FieldsFor derives the display fields for an item at a view index.
func FieldsFor(it model.Item, index int) Fields {
	return Fields{
		Index:    index,
		ID:       it.ID,
		Name:     it.Name,
		Category: it.Category,
		Value:    it.Value,
		Date:     it.Date,
		Selected: it.Selected,
	}
}

// Node is one reusable display slot owned by the environment.
type Node interface {
	// Update redraws the node from the given fields. Equal fields must
	// produce equal observable state.
	Update(f Fields) error
	// Reset strips transient visual state (highlight, focus) so the
	// node can later be rebound to a different item.
	Reset()
}

// Surface is the display capability the list draws on: it creates and
// destroys nodes. The terminal UI implements it with cached row
// slots; tests supply fakes.
type Surface interface {
	Create() (Node, error)
	Destroy(Node)
}

// Handle pairs a display node with its binding state. Handles only
// ever move between the pool and a bound index; they are destroyed by
// recycler teardown alone.
type Handle struct {
	node  Node
	state HandleState
	index int // bound view index, -1 while pooled
}

// Node returns the underlying display node.
func (h *Handle) Node() Node { return h.node }

// State returns the handle's current state.
func (h *Handle) State() HandleState { return h.state }

// Index returns the bound view index, or -1 while pooled.
func (h *Handle) Index() int { return h.index }

// Recycler keeps the set of live display handles bounded to the
// visible window, reusing nodes across indices instead of creating
// and destroying one per item.
type Recycler struct {
	surface Surface
	pool    []*Handle
	bound   map[int]*Handle
	created int

	populateFailures int
}

// NewRecycler builds a recycler over a display surface.
func NewRecycler(surface Surface) (*Recycler, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	return &Recycler{
		surface: surface,
		bound:   make(map[int]*Handle),
	}, nil
}

// Reconcile moves handles so that afterwards exactly the indices in
// rng, clamped to the view, are bound. Handles leaving the window are
// reset and pooled before new indices bind, so scrolling by a row
// reuses the handle that just left instead of allocating. Indices
// that stay in the window are repopulated with current item data,
// which is harmless when nothing changed (populate is idempotent) and
// keeps in-place edits visible.
//
// A populate failure is confined to its own handle: the handle goes
// back to the pool blank, the failure is logged, and the pass
// continues with the remaining indices.
func (r *Recycler) Reconcile(rng Range, view []model.Item) {
	lo, hi := rng.Start, rng.End
	if lo < 0 {
		lo = 0
	}
	if hi > len(view) {
		hi = len(view)
	}
	if lo > hi {
		lo = hi
	}

	// Release handles whose index left the window.
	for idx, h := range r.bound {
		if idx >= lo && idx < hi {
			continue
		}
		r.release(h)
	}

	// Bind and populate the window.
	for idx := lo; idx < hi; idx++ {
		h, ok := r.bound[idx]
		if !ok {
			h = r.take()
			if h == nil {
				continue
			}
			h.state = StateBound
			h.index = idx
			r.bound[idx] = h
		}
		if err := h.node.Update(FieldsFor(view[idx], idx)); err != nil {
			r.populateFailures++
			log.Printf("vlist: populate failed for index %d (item %d): %v", idx, view[idx].ID, err)
			r.release(h)
		}
	}
}

// take pops a pooled handle, allocating a fresh one when the pool is
// empty. Returns nil if the surface refuses to allocate.
func (r *Recycler) take() *Handle {
	if n := len(r.pool); n > 0 {
		h := r.pool[n-1]
		r.pool = r.pool[:n-1]
		return h
	}
	node, err := r.surface.Create()
	if err != nil {
		log.Printf("vlist: node allocation failed: %v", err)
		return nil
	}
	r.created++
	return &Handle{node: node, state: StatePooled, index: -1}
}

// release returns a handle to the pool, stripping transient visual
// state first.
func (r *Recycler) release(h *Handle) {
	if h.state == StateBound {
		delete(r.bound, h.index)
	}
	h.node.Reset()
	h.state = StatePooled
	h.index = -1
	r.pool = append(r.pool, h)
}

// NodeAt returns the node bound to a view index, if any.
func (r *Recycler) NodeAt(index int) (Node, bool) {
	h, ok := r.bound[index]
	if !ok {
		return nil, false
	}
	return h.node, true
}

// BoundCount returns the number of handles currently bound.
func (r *Recycler) BoundCount() int { return len(r.bound) }

// PooledCount returns the number of handles parked in the free list.
func (r *Recycler) PooledCount() int { return len(r.pool) }

// TotalHandles returns pooled plus bound handles. Outside of teardown
// this equals Allocated: handles move, they do not leak.
func (r *Recycler) TotalHandles() int { return len(r.pool) + len(r.bound) }

// Allocated returns how many handles have ever been created.
func (r *Recycler) Allocated() int { return r.created }

// PopulateFailures returns how many populate calls have failed since
// construction.
func (r *Recycler) PopulateFailures() int { return r.populateFailures }

// BoundIndices returns the currently bound view indices in ascending
// order.
func (r *Recycler) BoundIndices() []int {
	out := make([]int, 0, len(r.bound))
	for idx := range r.bound {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Teardown destroys every handle, pooled and bound, through the
// surface. The recycler must not be used afterwards.
func (r *Recycler) Teardown() {
	for _, h := range r.bound {
		r.surface.Destroy(h.node)
	}
	for _, h := range r.pool {
		r.surface.Destroy(h.node)
	}
	r.bound = make(map[int]*Handle)
	r.pool = nil
	r.created = 0
}
