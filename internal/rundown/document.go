package rundown

import (
	"sort"
	"strings"
	"time"

	"rundown-cli/internal/model"
)

type ChangeOp string

const (
	ChangeInsert ChangeOp = "insert"
	ChangeRemove ChangeOp = "remove"
	ChangeMove   ChangeOp = "move"
	ChangeUpdate ChangeOp = "update"
)

// Change describes one applied mutation: the ids it touched and the lowest
// canonical index affected. Derived state (numbering, aggregates) only needs
// re-deriving from From onward.
type Change struct {
	Op   ChangeOp
	IDs  []string
	From int
}

// Document owns the canonical order of rundown items. It is the single entry
// point for mutations; local edits and remote mutation events go through the
// same four operations so re-derivation is uniform regardless of origin.
//
// Items are keyed by id everywhere. Indices into the canonical order are
// ephemeral: every mutation invalidates them.
type Document struct {
	items []model.Item
	index map[string]int
	rev   int64
	subs  []func(Change)
}

func NewDocument(items []model.Item) *Document {
	d := &Document{items: append([]model.Item(nil), items...)}
	d.reindex()
	return d
}

func (d *Document) reindex() {
	d.index = make(map[string]int, len(d.items))
	for i, it := range d.items {
		d.index[it.ID] = i
	}
}

// Subscribe registers a callback invoked after every applied mutation.
func (d *Document) Subscribe(fn func(Change)) {
	if fn == nil {
		return
	}
	d.subs = append(d.subs, fn)
}

func (d *Document) emit(c Change) {
	d.rev++
	d.reindex()
	for _, fn := range d.subs {
		fn(c)
	}
}

// Rev is a monotonic revision counter, bumped on every mutation. Consumers use
// it as an identity key for memoization and for drag revalidation.
func (d *Document) Rev() int64 { return d.rev }

func (d *Document) Len() int { return len(d.items) }

// Items returns the canonical order. The returned slice is the document's own
// backing array; callers must treat it as read-only.
func (d *Document) Items() []model.Item { return d.items }

func (d *Document) At(i int) (model.Item, bool) {
	if i < 0 || i >= len(d.items) {
		return model.Item{}, false
	}
	return d.items[i], true
}

// IndexOf returns the canonical index of id, or -1.
func (d *Document) IndexOf(id string) int {
	if i, ok := d.index[id]; ok {
		return i
	}
	return -1
}

func (d *Document) Item(id string) (model.Item, bool) {
	i, ok := d.index[id]
	if !ok {
		return model.Item{}, false
	}
	return d.items[i], true
}

// HeaderOf returns the id of the nearest header preceding id in canonical
// order, or "" when the item sits in the ungrouped prefix (or is itself a
// header).
func (d *Document) HeaderOf(id string) string {
	i, ok := d.index[id]
	if !ok {
		return ""
	}
	for j := i - 1; j >= 0; j-- {
		if d.items[j].IsHeader() {
			return d.items[j].ID
		}
	}
	return ""
}

// GroupItemIDs returns the ids of a header's descendants (the contiguous run
// up to the next header), excluding the header itself. Non-header or unknown
// ids yield nil.
func (d *Document) GroupItemIDs(headerID string) []string {
	hi, ok := d.index[headerID]
	if !ok || !d.items[hi].IsHeader() {
		return nil
	}
	var ids []string
	for i := hi + 1; i < len(d.items) && !d.items[i].IsHeader(); i++ {
		ids = append(ids, d.items[i].ID)
	}
	return ids
}

// groupEnd returns the canonical index one past the last descendant of the
// header at index hi.
func (d *Document) groupEnd(hi int) int {
	end := hi + 1
	for end < len(d.items) && !d.items[end].IsHeader() {
		end++
	}
	return end
}

// Insert places item at the given canonical index (clamped to [0, Len]).
// Inserting a duplicate or empty id is rejected.
func (d *Document) Insert(it model.Item, at int) error {
	if strings.TrimSpace(it.ID) == "" {
		return InvalidMoveError{Reason: "insert without id"}
	}
	if _, exists := d.index[it.ID]; exists {
		return InvalidMoveError{Reason: "duplicate id: " + it.ID}
	}
	if at < 0 {
		at = 0
	}
	if at > len(d.items) {
		at = len(d.items)
	}
	d.items = append(d.items, model.Item{})
	copy(d.items[at+1:], d.items[at:])
	d.items[at] = it
	d.emit(Change{Op: ChangeInsert, IDs: []string{it.ID}, From: at})
	return nil
}

// Append places item at the end of the canonical order.
func (d *Document) Append(it model.Item) error {
	return d.Insert(it, len(d.items))
}

// Remove deletes the item with the given id. Unknown ids are a no-op and
// return NotFoundError; nothing destructive happens.
func (d *Document) Remove(id string) error {
	i, ok := d.index[id]
	if !ok {
		return NotFoundError{ID: id}
	}
	d.items = append(d.items[:i], d.items[i+1:]...)
	d.emit(Change{Op: ChangeRemove, IDs: []string{id}, From: i})
	return nil
}

// Patch describes a partial item update; nil fields are left untouched.
// Custom entries are merged in; an empty value deletes the key.
type Patch struct {
	Name     *string
	Duration *int
	Script   *string
	Talent   *string
	Graphics *string
	Video    *string
	Notes    *string
	Color    *string
	Floated  *bool
	Custom   map[string]string
}

// Update applies a patch to the item with the given id.
func (d *Document) Update(id string, p Patch) error {
	i, ok := d.index[id]
	if !ok {
		return NotFoundError{ID: id}
	}
	it := &d.items[i]
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Duration != nil {
		it.Duration = *p.Duration
	}
	if p.Script != nil {
		it.Script = *p.Script
	}
	if p.Talent != nil {
		it.Talent = *p.Talent
	}
	if p.Graphics != nil {
		it.Graphics = *p.Graphics
	}
	if p.Video != nil {
		it.Video = *p.Video
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
	if p.Color != nil {
		it.Color = *p.Color
	}
	if p.Floated != nil {
		it.Floated = *p.Floated
	}
	if len(p.Custom) > 0 {
		if it.Custom == nil {
			it.Custom = map[string]string{}
		}
		for k, v := range p.Custom {
			if strings.TrimSpace(v) == "" {
				delete(it.Custom, k)
				continue
			}
			it.Custom[k] = v
		}
		if len(it.Custom) == 0 {
			it.Custom = nil
		}
	}
	it.UpdatedAt = time.Now().UTC()
	d.emit(Change{Op: ChangeUpdate, IDs: []string{id}, From: i})
	return nil
}

// Move removes the selected spans from the canonical order and reinserts them,
// in their original relative order, at the adjusted target index.
//
// ids may be any mix of headers and loose segments; a header is auto-expanded
// to its full group so a group always moves as one unit. A target index inside
// one of the moved spans is rejected with InvalidMoveError (the order is left
// untouched). Unknown ids are dropped; if none remain the call is a no-op.
func (d *Document) Move(ids []string, to int) error {
	picked := map[int]bool{}
	for _, id := range ids {
		i, ok := d.index[id]
		if !ok {
			continue
		}
		picked[i] = true
		if d.items[i].IsHeader() {
			for j := i + 1; j < d.groupEnd(i); j++ {
				picked[j] = true
			}
		}
	}
	if len(picked) == 0 {
		return nil
	}
	if to < 0 {
		to = 0
	}
	if to > len(d.items) {
		to = len(d.items)
	}

	idxs := make([]int, 0, len(picked))
	for i := range picked {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	// Merge into contiguous spans [start, end).
	type span struct{ start, end int }
	var spans []span
	for _, i := range idxs {
		if n := len(spans); n > 0 && spans[n-1].end == i {
			spans[n-1].end = i + 1
			continue
		}
		spans = append(spans, span{start: i, end: i + 1})
	}

	// Insertion at a span boundary is fine (it reproduces the current order);
	// strictly inside a moved span is rejected.
	for _, sp := range spans {
		if to > sp.start && to < sp.end {
			return InvalidMoveError{Reason: "target inside moved span"}
		}
	}

	// Collect moved items in original relative order and compute the target
	// adjustment: spans entirely before the target shift it left.
	moved := make([]model.Item, 0, len(idxs))
	movedIDs := make([]string, 0, len(idxs))
	adjusted := to
	for _, i := range idxs {
		moved = append(moved, d.items[i])
		movedIDs = append(movedIDs, d.items[i].ID)
		if i < to {
			adjusted--
		}
	}

	rest := make([]model.Item, 0, len(d.items)-len(idxs))
	for i, it := range d.items {
		if picked[i] {
			continue
		}
		rest = append(rest, it)
	}

	next := make([]model.Item, 0, len(d.items))
	next = append(next, rest[:adjusted]...)
	next = append(next, moved...)
	next = append(next, rest[adjusted:]...)

	from := adjusted
	if spans[0].start < from {
		from = spans[0].start
	}
	d.items = next
	d.emit(Change{Op: ChangeMove, IDs: movedIDs, From: from})
	return nil
}
