package vlist

// Range is a half-open index window [Start, End) into the filtered
// view.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indices the range covers.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether idx falls inside the range.
func (r Range) Contains(idx int) bool { return idx >= r.Start && idx < r.End }

// ComputeRange computes the window of item indices that need live
// display handles for the given scroll position and geometry. The
// window covers the rows overlapping the viewport plus one viewport's
// worth of buffer on each side, clamped so that
// 0 <= Start <= End <= itemCount always holds.
//
// itemHeight must be positive and the counts non-negative; violations
// return a ConfigError and no range. A negative scroll offset is
// treated as 0 (overscroll past the top edge).
func ComputeRange(scrollOffset, containerHeight, itemHeight, itemCount int) (Range, error) {
	if itemHeight <= 0 {
		return Range{}, &ConfigError{Field: "item height", Value: itemHeight}
	}
	if itemCount < 0 {
		return Range{}, &ConfigError{Field: "item count", Value: itemCount}
	}
	if containerHeight < 0 {
		return Range{}, &ConfigError{Field: "container height", Value: containerHeight}
	}
	if itemCount == 0 {
		return Range{}, nil
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	// The buffer equals one viewport's worth of rows, rounded up.
	visible := (containerHeight + itemHeight - 1) / itemHeight
	buffer := visible
	rawStart := scrollOffset / itemHeight

	end := rawStart + visible + buffer
	if end > itemCount {
		end = itemCount
	}
	start := rawStart - buffer
	if start < 0 {
		start = 0
	}
	if start > end {
		// Scrolled far past the last item.
		start = end
	}
	return Range{Start: start, End: end}, nil
}
