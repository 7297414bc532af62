package types

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// joinNonEmpty renders hierarchical name parts the way the browser UI
// displays them, omitting empty levels.
func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " / ")
}

// Category is one node of the three-level category hierarchy.
type Category struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	Subcategory    string `json:"subcategory"`
	Subsubcategory string `json:"subsubcategory"`

	Presets *roaring.Bitmap `json:"-"`
}

// DisplayName joins the non-empty hierarchy levels with " / ".
func (c *Category) DisplayName() string {
	return joinNonEmpty(c.Name, c.Subcategory, c.Subsubcategory)
}

// PathParts returns the hierarchy levels up to the first empty one,
// suitable for building the category tree.
func (c *Category) PathParts() []string {
	parts := []string{}
	for _, p := range []string{c.Name, c.Subcategory, c.Subsubcategory} {
		if p == "" {
			break
		}
		parts = append(parts, p)
	}
	return parts
}

// Mode is a performance mode (arpeggiated, polyphonic, ...).
type Mode struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`

	Presets *roaring.Bitmap `json:"-"`
}

// DisplayName returns the mode name; it exists so modes sort uniformly
// with the other facet entities.
func (m *Mode) DisplayName() string { return m.Name }

// Bank is a bank chain of up to three entries. Bank id 0 is reserved for
// "no bank" and never appears as an entity.
type Bank struct {
	ID     ID     `json:"id"`
	Entry1 string `json:"entry1"`
	Entry2 string `json:"entry2"`
	Entry3 string `json:"entry3"`

	Presets *roaring.Bitmap `json:"-"`
}

// DisplayName joins the non-empty entries with " / ".
func (b *Bank) DisplayName() string {
	return joinNonEmpty(b.Entry1, b.Entry2, b.Entry3)
}
