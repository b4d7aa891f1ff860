package rundown

// Selection tracks the set of selected item ids plus the anchor used by range
// select. Only ids are stored, never indices: indices are invalidated by every
// mutation, ids survive reorder and collapse.
//
// A selected id need not be visible (its header may have been collapsed after
// selection). Bulk operations must resolve the selection against the canonical
// order via IDs.
type Selection struct {
	ids    map[string]struct{}
	anchor string
	last   string
}

func NewSelection() *Selection {
	return &Selection{ids: map[string]struct{}{}}
}

// Toggle flips membership of one id (ctrl/meta-click) and re-anchors on it.
func (s *Selection) Toggle(id string) {
	if id == "" {
		return
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	s.anchor = id
	s.last = id
}

// Click replaces the selection with the clicked item (plain click). Clicking a
// collapsed header selects its whole group (header plus every descendant)
// so copy/delete/move act on the hidden rows too.
func (s *Selection) Click(d *Document, collapsed map[string]bool, id string) {
	it, ok := d.Item(id)
	if !ok {
		return
	}
	s.ids = map[string]struct{}{id: {}}
	if it.IsHeader() && collapsed[id] {
		for _, cid := range d.GroupItemIDs(id) {
			s.ids[cid] = struct{}{}
		}
	}
	s.anchor = id
	s.last = id
}

// RangeTo replaces the selection with the contiguous visible-order range
// between the anchor and id, inclusive (shift-click, spreadsheet semantics:
// not a union with the prior selection). If the anchor is gone or hidden the
// gesture is aborted and the click selects just id.
func (s *Selection) RangeTo(d *Document, p Projection, id string) {
	ci := d.IndexOf(id)
	if ci < 0 {
		return
	}
	vi := p.ToVisible(ci)
	if vi < 0 {
		return
	}
	av := -1
	if s.anchor != "" {
		av = p.ToVisible(d.IndexOf(s.anchor))
	}
	if av < 0 {
		s.ids = map[string]struct{}{id: {}}
		s.anchor = id
		s.last = id
		return
	}
	lo, hi := av, vi
	if lo > hi {
		lo, hi = hi, lo
	}
	s.ids = make(map[string]struct{}, hi-lo+1)
	for i := lo; i <= hi; i++ {
		s.ids[p.Visible[i].ID] = struct{}{}
	}
	s.last = id
}

func (s *Selection) Clear() {
	s.ids = map[string]struct{}{}
	s.anchor = ""
	s.last = ""
}

func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) Anchor() string { return s.anchor }

func (s *Selection) Last() string { return s.last }

// IDs resolves the selection against the canonical order: selected ids are
// returned in canonical position order, and ids that no longer exist in the
// document are dropped (not an error; they were deleted underneath us).
func (s *Selection) IDs(d *Document) []string {
	if len(s.ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.ids))
	for _, it := range d.Items() {
		if _, ok := s.ids[it.ID]; ok {
			out = append(out, it.ID)
		}
	}
	return out
}

// Prune drops selected ids that are no longer present in the document.
func (s *Selection) Prune(d *Document) {
	for id := range s.ids {
		if d.IndexOf(id) < 0 {
			delete(s.ids, id)
		}
	}
	if s.anchor != "" && d.IndexOf(s.anchor) < 0 {
		s.anchor = ""
	}
	if s.last != "" && d.IndexOf(s.last) < 0 {
		s.last = ""
	}
}
