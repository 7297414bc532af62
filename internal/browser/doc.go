// Package browser is the read-only query engine over a built catalog.
//
// Every listing answers the same question: which values of one facet
// remain reachable given the selections on the other facets. Constraints
// AND across dimensions and OR within one, always mediated through the
// preset bridge, except where an entity carries the constrained value
// directly (a preset's or product's vendor, a preset's product key).
//
// Preset search results are cached in a small LRU once the catalog has
// finished loading; the index is immutable afterwards, so entries never
// need invalidation.
package browser
