package rundown

// Window is a half-open range [Start, End) over visible-order indices: the
// slice of rows worth materializing for the current scroll position. It is a
// pure rendering optimization and carries no persisted state; recomputing it
// on every scroll or resize is idempotent and safe.
type Window struct {
	Start int
	End   int
}

// ComputeWindow derives the window from fixed-height row geometry. overscan
// rows are materialized beyond each edge so small scrolls don't flash empty
// rows. The result is clamped to [0, visibleLen].
func ComputeWindow(visibleLen, rowHeight, viewportHeight, scrollOffset, overscan int) Window {
	if visibleLen <= 0 || rowHeight <= 0 {
		return Window{}
	}
	if overscan < 0 {
		overscan = 0
	}
	start := scrollOffset/rowHeight - overscan
	count := (viewportHeight+rowHeight-1)/rowHeight + 2*overscan
	end := start + count
	if start < 0 {
		start = 0
	}
	if end > visibleLen {
		end = visibleLen
	}
	if start > end {
		start = end
	}
	return Window{Start: start, End: end}
}

func (w Window) Len() int { return w.End - w.Start }

func (w Window) Contains(vi int) bool { return vi >= w.Start && vi < w.End }

// ToVisible rebases a window-local row index into visible-order space, or -1
// when it falls outside the window. Every index-taking callback handed to a
// materialized row must pass through here before reaching the selection or
// drag layers, which operate in visible space.
func (w Window) ToVisible(local int) int {
	vi := w.Start + local
	if local < 0 || vi >= w.End {
		return -1
	}
	return vi
}

// FromVisible rebases a visible index into window-local space, or -1 when the
// row is not materialized.
func (w Window) FromVisible(vi int) int {
	if !w.Contains(vi) {
		return -1
	}
	return vi - w.Start
}

// TotalHeight is the full scrollable height the host surface should report.
func TotalHeight(visibleLen, rowHeight int) int {
	if visibleLen < 0 {
		return 0
	}
	return visibleLen * rowHeight
}

// OffsetY is the translation applied to the materialized block so it lands at
// the correct scroll position.
func (w Window) OffsetY(rowHeight int) int { return w.Start * rowHeight }
