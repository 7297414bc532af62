// Package types contains the shared entity types of the preset browser:
// presets, products, categories, modes, banks, the two-sided product key,
// and the paginated result envelope.
//
// All entities are built once by the catalog and treated as immutable
// afterwards. The preset-id sets on facet entities are roaring bitmaps;
// ids act as arena indices into the catalog's preset table, the sets carry
// no ownership.
package types
