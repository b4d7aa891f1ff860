package rundown

import "sort"

// CollapseSet tracks which headers are collapsed. Collapse has no effect on
// the canonical order, only on projection. The revision counter gives derived
// state an identity key without comparing maps.
type CollapseSet struct {
	m   map[string]bool
	rev int64
}

func NewCollapseSet() *CollapseSet {
	return &CollapseSet{m: map[string]bool{}}
}

func (c *CollapseSet) IsCollapsed(id string) bool { return c.m[id] }

func (c *CollapseSet) Toggle(id string) {
	c.Set(id, !c.m[id])
}

func (c *CollapseSet) Set(id string, collapsed bool) {
	if id == "" || c.m[id] == collapsed {
		return
	}
	if collapsed {
		c.m[id] = true
	} else {
		delete(c.m, id)
	}
	c.rev++
}

func (c *CollapseSet) Rev() int64 { return c.rev }

// Map exposes the underlying flag set for projection; read-only.
func (c *CollapseSet) Map() map[string]bool { return c.m }

// IDs returns the collapsed header ids, sorted, for persistence.
func (c *CollapseSet) IDs() []string {
	ids := make([]string, 0, len(c.m))
	for id := range c.m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
