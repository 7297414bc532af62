package browser

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Timtam/kk-browser/internal/catalog"
	"github.com/Timtam/kk-browser/internal/natsort"
	"github.com/Timtam/kk-browser/pkg/types"
)

// searchCacheSize bounds the preset-search LRU.
const searchCacheSize = 128

// Filter carries the selected values per facet dimension. An empty slice
// leaves that dimension unconstrained.
type Filter struct {
	Vendors    []string   `json:"vendors,omitempty"`
	Products   []types.ID `json:"products,omitempty"`
	Categories []types.ID `json:"categories,omitempty"`
	Modes      []types.ID `json:"modes,omitempty"`
	Banks      []types.ID `json:"banks,omitempty"`
}

// SearchRequest is a paginated preset search: facet selections plus a
// case-insensitive free-text query against name or comment.
type SearchRequest struct {
	Filter
	Query  string `json:"query,omitempty"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

// Browser answers faceted queries over one catalog.
type Browser struct {
	cat   *catalog.Catalog
	cache *lru.Cache[string, types.PaginatedResult[*types.Preset]]
}

// New creates a browser over cat.
func New(cat *catalog.Catalog) (*Browser, error) {
	cache, err := lru.New[string, types.PaginatedResult[*types.Preset]](searchCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}
	return &Browser{cat: cat, cache: cache}, nil
}

// indexReady reports whether loading has finished; results computed before
// that are provisional and must not be cached.
func (b *Browser) indexReady() bool {
	select {
	case <-b.cat.Ready():
		return true
	default:
		return false
	}
}

// anyPreset reports whether any preset in the bridge set satisfies pred.
func (b *Browser) anyPreset(presets *roaring.Bitmap, pred func(*types.Preset) bool) bool {
	it := presets.Iterator()
	for it.HasNext() {
		if pred(b.cat.MustPreset(it.Next())) {
			return true
		}
	}
	return false
}

// anyInBitmap reports whether any selected id is present in the set.
func anyInBitmap(set *roaring.Bitmap, selected []types.ID) bool {
	for _, id := range selected {
		if set.Contains(id) {
			return true
		}
	}
	return false
}

// bridgeSatisfies checks a facet entity's preset set against every
// constrained dimension of f. Each dimension only needs some preset of the
// entity to match; different dimensions may be witnessed by different
// presets.
func (b *Browser) bridgeSatisfies(presets *roaring.Bitmap, f Filter) bool {
	if len(f.Vendors) > 0 && !b.anyPreset(presets, func(p *types.Preset) bool {
		return slices.Contains(f.Vendors, p.Vendor)
	}) {
		return false
	}
	if len(f.Products) > 0 && !b.anyPreset(presets, func(p *types.Preset) bool {
		return slices.Contains(f.Products, p.Product.ID)
	}) {
		return false
	}
	if len(f.Categories) > 0 && !b.anyPreset(presets, func(p *types.Preset) bool {
		return anyInBitmap(p.Categories, f.Categories)
	}) {
		return false
	}
	if len(f.Modes) > 0 && !b.anyPreset(presets, func(p *types.Preset) bool {
		return anyInBitmap(p.Modes, f.Modes)
	}) {
		return false
	}
	if len(f.Banks) > 0 && !b.anyPreset(presets, func(p *types.Preset) bool {
		return slices.Contains(f.Banks, p.BankID)
	}) {
		return false
	}
	return true
}

// presetMatches applies f to one preset's own fields.
func presetMatches(p *types.Preset, f Filter) bool {
	if len(f.Vendors) > 0 && !slices.Contains(f.Vendors, p.Vendor) {
		return false
	}
	if len(f.Products) > 0 && !slices.Contains(f.Products, p.Product.ID) {
		return false
	}
	if len(f.Categories) > 0 && !anyInBitmap(p.Categories, f.Categories) {
		return false
	}
	if len(f.Modes) > 0 && !anyInBitmap(p.Modes, f.Modes) {
		return false
	}
	if len(f.Banks) > 0 && !slices.Contains(f.Banks, p.BankID) {
		return false
	}
	return true
}

// Categories lists the categories still reachable under f, in ingest
// order. The categories dimension of f is ignored.
func (b *Browser) Categories(f Filter) []*types.Category {
	f.Categories = nil
	out := []*types.Category{}
	for _, c := range b.cat.Categories() {
		if b.bridgeSatisfies(c.Presets, f) {
			out = append(out, c)
		}
	}
	return out
}

// Modes lists the modes still reachable under f, in ingest order.
func (b *Browser) Modes(f Filter) []*types.Mode {
	f.Modes = nil
	out := []*types.Mode{}
	for _, m := range b.cat.Modes() {
		if b.bridgeSatisfies(m.Presets, f) {
			out = append(out, m)
		}
	}
	return out
}

// Banks lists the banks still reachable under f, in ingest order.
func (b *Browser) Banks(f Filter) []*types.Bank {
	f.Banks = nil
	out := []*types.Bank{}
	for _, bank := range b.cat.Banks() {
		if b.bridgeSatisfies(bank.Presets, f) {
			out = append(out, bank)
		}
	}
	return out
}

// Products lists the products still reachable under f, naturally sorted by
// name. Vendor selections compare the product's own vendor; the rest go
// through the product's preset set.
func (b *Browser) Products(f Filter) []*types.Product {
	bridged := f
	bridged.Vendors = nil
	bridged.Products = nil

	out := []*types.Product{}
	for _, p := range b.cat.Products() {
		if len(f.Vendors) > 0 && !slices.Contains(f.Vendors, p.Vendor) {
			continue
		}
		if !b.bridgeSatisfies(p.Presets, bridged) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return natsort.Less(out[i].Name, out[j].Name)
	})
	return out
}

// Vendors lists the vendor strings still reachable under f, in ingest
// order. Product selections compare the product's vendor directly; the
// facet selections ask whether the selected entity has a preset of that
// vendor. Selected ids that don't exist simply never match.
func (b *Browser) Vendors(f Filter) []string {
	hasVendor := func(presets *roaring.Bitmap, vendor string) bool {
		return b.anyPreset(presets, func(p *types.Preset) bool { return p.Vendor == vendor })
	}

	out := []string{}
	for _, v := range b.cat.Vendors() {
		if len(f.Products) > 0 {
			matched := false
			for _, id := range f.Products {
				if p, ok := b.cat.ProductByKey(types.ByID(id)); ok && p.Vendor == v {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if len(f.Categories) > 0 && !anyFacet(f.Categories, func(id types.ID) bool {
			c, ok := b.cat.CategoryByID(id)
			return ok && hasVendor(c.Presets, v)
		}) {
			continue
		}
		if len(f.Modes) > 0 && !anyFacet(f.Modes, func(id types.ID) bool {
			m, ok := b.cat.ModeByID(id)
			return ok && hasVendor(m.Presets, v)
		}) {
			continue
		}
		if len(f.Banks) > 0 && !anyFacet(f.Banks, func(id types.ID) bool {
			bank, ok := b.cat.BankByID(id)
			return ok && hasVendor(bank.Presets, v)
		}) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func anyFacet(ids []types.ID, pred func(types.ID) bool) bool {
	for _, id := range ids {
		if pred(id) {
			return true
		}
	}
	return false
}

// SearchPresets filters, searches and paginates the preset universe.
// Results stay in the catalog's natural name order.
func (b *Browser) SearchPresets(req SearchRequest) types.PaginatedResult[*types.Preset] {
	ready := b.indexReady()
	key := req.cacheKey()
	if ready {
		if res, ok := b.cache.Get(key); ok {
			return res
		}
	}

	query := strings.ToLower(req.Query)
	matched := []*types.Preset{}
	for _, p := range b.cat.Presets() {
		if !presetMatches(p, req.Filter) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Comment), query) {
			continue
		}
		matched = append(matched, p)
	}

	res := types.Paginate(matched, req.Offset, req.Limit)
	if ready {
		b.cache.Add(key, res)
	}
	return res
}

// cacheKey canonicalizes the request into a stable cache key.
func (req SearchRequest) cacheKey() string {
	raw, err := json.Marshal(req)
	if err != nil {
		// Only unmarshalable types could fail here, and the request is
		// plain data; fall back to an uncacheable-ish literal key.
		return fmt.Sprintf("%+v", req)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
