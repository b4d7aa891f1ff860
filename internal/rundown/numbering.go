package rundown

import (
	"strconv"
	"time"

	"rundown-cli/internal/model"
)

// RowInfo is the derived display state for one canonical row.
type RowInfo struct {
	Label  string
	Status model.RowStatus
	// Start/End are cumulative scheduled offsets in seconds from the top of
	// the show. Floated rows carry the running offset with End == Start.
	Start int
	End   int
}

// Calc derives row labels, playback status and per-header aggregate durations
// from the document. Results are memoized on (document revision, collapse
// revision, playhead id, clock second); a mutation at canonical index N only
// re-derives labels from the start of N's section onward.
type Calc struct {
	doc *Document

	locked       bool
	lockedLabels map[string]string

	memoValid    bool
	memoRev      int64
	memoCollapse int64
	memoPlayhead string
	memoBucket   int64
	dirtyFrom    int

	rows      []RowInfo
	headerAgg map[string]int
	total     int
}

func NewCalc(d *Document) *Calc {
	c := &Calc{
		doc:          d,
		lockedLabels: map[string]string{},
		headerAgg:    map[string]int{},
	}
	d.Subscribe(func(ch Change) {
		if ch.From < c.dirtyFrom {
			c.dirtyFrom = ch.From
		}
		c.memoValid = false
	})
	return c
}

// SetLocked toggles locked numbering. Enabling it freezes every current label;
// rows inserted afterwards get suffixed labels (e.g. "6A") instead of shifting
// the labels of existing rows. Disabling clears the frozen set and renumbers.
func (c *Calc) SetLocked(locked bool) {
	if c.locked == locked {
		return
	}
	if locked {
		// Derive the plain labels first; flipping c.locked before the pass
		// would make it consult the still-empty frozen set and mint suffix
		// labels instead of freezing what the rows show right now.
		c.relabel(0)
		c.locked = true
		c.lockedLabels = make(map[string]string, len(c.rows))
		for i, it := range c.doc.Items() {
			c.lockedLabels[it.ID] = c.rows[i].Label
		}
	} else {
		c.locked = false
		c.lockedLabels = map[string]string{}
	}
	c.dirtyFrom = 0
	c.memoValid = false
}

func (c *Calc) Locked() bool { return c.locked }

// Rows returns the derived state for every canonical row, parallel to
// Document.Items(). The returned slice is the calculator's cache; read-only.
func (c *Calc) Rows(cs *CollapseSet, playheadID string, now time.Time) []RowInfo {
	bucket := now.Unix()
	if c.memoValid &&
		c.memoRev == c.doc.Rev() &&
		c.memoCollapse == cs.Rev() &&
		c.memoPlayhead == playheadID &&
		c.memoBucket == bucket {
		return c.rows
	}
	if !c.memoValid || c.memoRev != c.doc.Rev() {
		c.relabel(c.dirtyFrom)
	}
	c.restatus(playheadID)
	c.memoValid = true
	c.memoRev = c.doc.Rev()
	c.memoCollapse = cs.Rev()
	c.memoPlayhead = playheadID
	c.memoBucket = bucket
	c.dirtyFrom = c.doc.Len()
	return c.rows
}

// HeaderDuration returns the aggregate duration of a header's direct group
// members, floated rows excluded.
func (c *Calc) HeaderDuration(cs *CollapseSet, playheadID string, now time.Time, headerID string) int {
	c.Rows(cs, playheadID, now)
	return c.headerAgg[headerID]
}

// Total is the scheduled length of the whole show, floated rows excluded.
func (c *Calc) Total(cs *CollapseSet, playheadID string, now time.Time) int {
	c.Rows(cs, playheadID, now)
	return c.total
}

// relabel recomputes labels from the start of the section containing `from`;
// earlier rows keep their cached labels (their sections were not touched).
func (c *Calc) relabel(from int) {
	items := c.doc.Items()
	if from > len(c.rows) {
		from = len(c.rows)
	}
	if from < 0 {
		from = 0
	}
	// Back up to the owning section's start (the nearest header at or before
	// from), since segment counters restart per section.
	start := 0
	for i := min(from, len(items)-1); i >= 0; i-- {
		if items[i].IsHeader() {
			start = i
			break
		}
	}

	next := make([]RowInfo, len(items))
	copy(next, c.rows[:min(start, len(c.rows))])

	sections := 0 // headers before start
	for i := 0; i < start; i++ {
		if items[i].IsHeader() {
			sections++
		}
	}
	seg := 0 // segment counter within the current section
	for i := start; i < len(items); i++ {
		it := items[i]
		if it.IsHeader() {
			sections++
			seg = 0
			next[i].Label = c.headerLabel(it.ID, sections)
			continue
		}
		seg++
		next[i].Label = c.segmentLabel(it.ID, i, seg)
	}
	c.rows = next
}

func (c *Calc) headerLabel(id string, ordinal int) string {
	if !c.locked {
		return sectionMarker(ordinal)
	}
	if lbl, ok := c.lockedLabels[id]; ok {
		return lbl
	}
	// New header under locked numbering: take the next marker after every
	// frozen one, so no existing row ever relabels.
	used := map[string]bool{}
	for _, lbl := range c.lockedLabels {
		used[lbl] = true
	}
	for n := 1; ; n++ {
		m := sectionMarker(n)
		if !used[m] {
			c.lockedLabels[id] = m
			return m
		}
	}
}

func (c *Calc) segmentLabel(id string, idx, seg int) string {
	if !c.locked {
		return strconv.Itoa(seg)
	}
	if lbl, ok := c.lockedLabels[id]; ok {
		return lbl
	}
	// New segment under locked numbering: suffix off the nearest preceding
	// frozen label in this section ("6" -> "6A"), or "0" at section top.
	items := c.doc.Items()
	base := "0"
	for j := idx - 1; j >= 0 && !items[j].IsHeader(); j-- {
		if lbl, ok := c.lockedLabels[items[j].ID]; ok {
			base = trimSuffix(lbl)
			break
		}
	}
	used := map[string]bool{}
	for _, lbl := range c.lockedLabels {
		used[lbl] = true
	}
	for n := 1; ; n++ {
		lbl := base + letterSuffix(n)
		if !used[lbl] {
			c.lockedLabels[id] = lbl
			return lbl
		}
	}
}

// restatus recomputes cumulative offsets, statuses and header aggregates in a
// single pass. This is cheap relative to relabeling and always runs full.
func (c *Calc) restatus(playheadID string) {
	items := c.doc.Items()
	c.headerAgg = make(map[string]int, 8)

	offset := 0
	curHeader := ""
	for i, it := range items {
		if it.IsHeader() {
			curHeader = it.ID
			c.rows[i].Start = offset
			continue
		}
		if it.Floated {
			c.rows[i].Start = offset
			c.rows[i].End = offset
			continue
		}
		c.rows[i].Start = offset
		offset += it.Duration
		c.rows[i].End = offset
		if curHeader != "" {
			c.headerAgg[curHeader] += it.Duration
		}
	}
	c.total = offset

	// Close out header End values now that aggregates are known.
	for i, it := range items {
		if it.IsHeader() {
			c.rows[i].End = c.rows[i].Start + c.headerAgg[it.ID]
		}
	}

	phIdx := c.doc.IndexOf(playheadID)
	if playheadID == "" || phIdx < 0 {
		for i := range c.rows {
			c.rows[i].Status = model.StatusUpcoming
		}
		return
	}
	phPos := c.rows[phIdx].Start
	phHeader := c.doc.HeaderOf(playheadID)
	for i, it := range items {
		switch {
		case it.ID == playheadID, it.IsHeader() && it.ID == phHeader:
			c.rows[i].Status = model.StatusCurrent
		case !it.IsHeader() && it.Floated:
			c.rows[i].Status = model.StatusUpcoming
		case i < phIdx && c.rows[i].End <= phPos:
			c.rows[i].Status = model.StatusCompleted
		default:
			c.rows[i].Status = model.StatusUpcoming
		}
	}
}

func trimSuffix(label string) string {
	i := len(label)
	for i > 0 && label[i-1] >= 'A' && label[i-1] <= 'Z' {
		i--
	}
	if i == 0 {
		return label
	}
	return label[:i]
}

// letterSuffix maps 1 -> "A", 26 -> "Z", 27 -> "AA".
func letterSuffix(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

// sectionMarker maps 1 -> "A", 2 -> "B", 27 -> "AA".
func sectionMarker(n int) string { return letterSuffix(n) }
