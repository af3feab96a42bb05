// SPDX-License-Identifier: MIT
package catalog

import (
	"github.com/thatcatcamp/palettekitty/internal/models"
)

// collection is the in-memory form of the stored catalog: palettes in
// insertion order plus an index from ID to position
type collection struct {
	items []models.Palette
	index map[string]int
}

func newCollection(items []models.Palette) *collection {
	c := &collection{
		items: items,
		index: make(map[string]int, len(items)),
	}
	if c.items == nil {
		c.items = []models.Palette{}
	}
	for i, p := range c.items {
		// a hand-edited catalog may repeat an ID; the first one wins lookups
		if _, dup := c.index[p.ID]; !dup {
			c.index[p.ID] = i
		}
	}
	return c
}

func (c *collection) len() int {
	return len(c.items)
}

func (c *collection) has(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *collection) get(id string) (models.Palette, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Palette{}, false
	}
	return c.items[i], true
}

// clone copies the slice and index. Palettes are values; their nested
// slices are only ever replaced, never written through.
func (c *collection) clone() *collection {
	items := make([]models.Palette, len(c.items))
	copy(items, c.items)

	index := make(map[string]int, len(c.index))
	for k, v := range c.index {
		index[k] = v
	}
	return &collection{items: items, index: index}
}

func (c *collection) append(p models.Palette) {
	c.index[p.ID] = len(c.items)
	c.items = append(c.items, p)
}

func (c *collection) replace(p models.Palette) bool {
	i, ok := c.index[p.ID]
	if !ok {
		return false
	}
	c.items[i] = p
	return true
}

// remove drops every palette carrying id and rebuilds the index
func (c *collection) remove(id string) bool {
	if !c.has(id) {
		return false
	}
	kept := c.items[:0:0]
	for _, p := range c.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	*c = *newCollection(kept)
	return true
}

// snapshot returns deep copies safe to hand to callers
func (c *collection) snapshot() []models.Palette {
	out := make([]models.Palette, len(c.items))
	for i, p := range c.items {
		out[i] = p.Clone()
	}
	return out
}

func (c *collection) filter(keep func(models.Palette) bool) []models.Palette {
	out := []models.Palette{}
	for _, p := range c.items {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
