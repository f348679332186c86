// Package catalog holds the sticker library the editor places layers from:
// named packs of entries, each carrying its encoded source image and a
// default placement scale.
package catalog

import "strings"

// Entry is one sticker in a pack.
type Entry struct {
	// ID is stable across sessions and unique within the catalog.
	ID string

	// Name is the human-readable label search matches against.
	Name string

	// Thumbnail is a small encoded preview for pickers; may be empty.
	Thumbnail []byte

	// Source is the encoded full image placed onto the canvas.
	Source []byte

	// DefaultScaleFraction sizes a freshly placed sticker relative to the
	// preview width (0.35 means 35% of the canvas width).
	DefaultScaleFraction float64
}

// Pack groups entries under a display name.
type Pack struct {
	Name    string
	Entries []Entry
}

// Catalog is an immutable set of sticker packs with lookup by ID and
// name search.
type Catalog struct {
	packs []Pack
	byID  map[string]*Entry
}

// New builds a catalog over the given packs.
func New(packs ...Pack) *Catalog {
	c := &Catalog{packs: packs, byID: make(map[string]*Entry)}
	for i := range c.packs {
		for j := range c.packs[i].Entries {
			e := &c.packs[i].Entries[j]
			c.byID[e.ID] = e
		}
	}
	return c
}

// Packs returns the catalog's packs in declaration order.
func (c *Catalog) Packs() []Pack {
	return c.packs
}

// Find returns the entry with the given ID, or nil.
func (c *Catalog) Find(id string) *Entry {
	return c.byID[id]
}

// Search returns every entry whose name contains the query,
// case-insensitively, in pack order. An empty query matches everything.
func (c *Catalog) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Entry
	for i := range c.packs {
		for _, e := range c.packs[i].Entries {
			if q == "" || strings.Contains(strings.ToLower(e.Name), q) {
				out = append(out, e)
			}
		}
	}
	return out
}
