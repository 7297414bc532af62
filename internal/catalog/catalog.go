package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/Timtam/kk-browser/internal/storage"
	"github.com/Timtam/kk-browser/pkg/types"
)

// Catalog is the process-scoped index container. It starts empty, builds
// once in the background, and publishes the finished snapshot atomically.
// After publication the snapshot is never mutated, so accessors hand out
// internal slices directly.
type Catalog struct {
	mu      sync.RWMutex
	snap    *snapshot
	loading bool
	dbFound bool
	err     error
	ready   chan struct{}
}

// New returns an empty catalog. dbFound records whether the browser
// database was located; a catalog without a database never starts loading
// and reports empty results forever.
func New(dbFound bool) *Catalog {
	return &Catalog{
		dbFound: dbFound,
		ready:   make(chan struct{}),
	}
}

// NewFromSource assembles a catalog synchronously from pre-fetched rows.
// Load is the production path; this one serves tests and tooling that
// already hold the rows.
func NewFromSource(src *Source) (*Catalog, error) {
	snap, err := assemble(src)
	if err != nil {
		return nil, err
	}
	c := New(true)
	c.snap = snap
	close(c.ready)
	return c, nil
}

// Load starts the background build. Without a database the catalog is
// marked ready immediately. Load must be called at most once.
func (c *Catalog) Load(ctx context.Context, store *storage.Store) {
	if !c.dbFound || store == nil {
		close(c.ready)
		return
	}

	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	go func() {
		snap, err := build(ctx, store)

		c.mu.Lock()
		if err != nil {
			c.err = err
		} else {
			c.snap = snap
		}
		c.loading = false
		c.mu.Unlock()

		if err != nil {
			log.Printf("catalog build failed: %v", err)
		}
		close(c.ready)
	}()
}

// Ready returns a channel closed once loading has finished (successfully
// or not).
func (c *Catalog) Ready() <-chan struct{} { return c.ready }

// Loading reports whether the index build is still running.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// DatabaseFound reports whether the browser database exists on disk.
func (c *Catalog) DatabaseFound() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dbFound
}

// Err returns the build error, if the build failed.
func (c *Catalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// snapshotRef returns the published snapshot, or nil while loading, absent
// or failed.
func (c *Catalog) snapshotRef() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Vendors returns the vendor facet in its fixed display order.
func (c *Catalog) Vendors() []string {
	if snap := c.snapshotRef(); snap != nil {
		return snap.vendors
	}
	return nil
}

// Banks returns the bank facet in its fixed display order.
func (c *Catalog) Banks() []*types.Bank {
	if snap := c.snapshotRef(); snap != nil {
		return snap.banks
	}
	return nil
}

// Categories returns the category facet in its fixed display order.
func (c *Catalog) Categories() []*types.Category {
	if snap := c.snapshotRef(); snap != nil {
		return snap.categories
	}
	return nil
}

// Modes returns the mode facet in its fixed display order.
func (c *Catalog) Modes() []*types.Mode {
	if snap := c.snapshotRef(); snap != nil {
		return snap.modes
	}
	return nil
}

// Products returns every product. Order is unspecified; queries re-sort.
func (c *Catalog) Products() []*types.Product {
	if snap := c.snapshotRef(); snap != nil {
		return snap.products.Values()
	}
	return nil
}

// Presets returns every preset in natural order of name.
func (c *Catalog) Presets() []*types.Preset {
	if snap := c.snapshotRef(); snap != nil {
		return snap.presets
	}
	return nil
}

// CategoryByID looks up one category.
func (c *Catalog) CategoryByID(id types.ID) (*types.Category, bool) {
	if snap := c.snapshotRef(); snap != nil {
		cat, ok := snap.catByID[id]
		return cat, ok
	}
	return nil, false
}

// ModeByID looks up one mode.
func (c *Catalog) ModeByID(id types.ID) (*types.Mode, bool) {
	if snap := c.snapshotRef(); snap != nil {
		m, ok := snap.modeByID[id]
		return m, ok
	}
	return nil, false
}

// BankByID looks up one bank.
func (c *Catalog) BankByID(id types.ID) (*types.Bank, bool) {
	if snap := c.snapshotRef(); snap != nil {
		b, ok := snap.bankByID[id]
		return b, ok
	}
	return nil, false
}

// PresetByID looks up one preset.
func (c *Catalog) PresetByID(id types.ID) (*types.Preset, bool) {
	if snap := c.snapshotRef(); snap != nil {
		p, ok := snap.presetByID[id]
		return p, ok
	}
	return nil, false
}

// ProductByKey looks up one product by either of its keys.
func (c *Catalog) ProductByKey(key types.ProductKey) (*types.Product, bool) {
	if snap := c.snapshotRef(); snap != nil {
		return snap.products.Get(key)
	}
	return nil, false
}

// Preset returns the preset with id, reporting why it can't when the
// index has no answer: types.ErrLoading while the build runs,
// types.ErrNoDatabase without a database, types.ErrNotFound on a miss.
func (c *Catalog) Preset(id types.ID) (*types.Preset, error) {
	if !c.DatabaseFound() {
		return nil, types.ErrNoDatabase
	}
	if c.Loading() {
		return nil, types.ErrLoading
	}
	p, ok := c.PresetByID(id)
	if !ok {
		return nil, types.ErrNotFound
	}
	return p, nil
}

// MustPreset returns the preset for an id that the published index
// guarantees to exist. A miss means the bidirectional cross-references are
// broken, which a finished build rules out, so it fails loudly.
func (c *Catalog) MustPreset(id types.ID) *types.Preset {
	p, ok := c.PresetByID(id)
	if !ok {
		log.Panicf("catalog: preset %d missing from published index", id)
	}
	return p
}
