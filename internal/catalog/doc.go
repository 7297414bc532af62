// Package catalog builds and owns the in-memory preset index.
//
// The index is assembled once from the flat rows the storage package
// delivers: entity tables plus the bidirectional preset↔facet
// cross-references. Assembly runs on a background goroutine; the finished,
// immutable snapshot is published with a single lock-guarded swap, so
// readers either see no index at all (loading) or a fully populated one.
//
// Any broken relation encountered during assembly (a preset referencing an
// unknown product, a link row pointing at a missing category) aborts the
// whole build. No partial index is ever published.
package catalog
