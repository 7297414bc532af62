package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring"
	"golang.org/x/sync/errgroup"

	"github.com/Timtam/kk-browser/internal/natsort"
	"github.com/Timtam/kk-browser/internal/storage"
	"github.com/Timtam/kk-browser/pkg/types"
)

// snapshot is the fully assembled, immutable index. Facet slices carry the
// fixed display order established here; presets are kept in natural order
// of their name.
type snapshot struct {
	vendors    []string
	banks      []*types.Bank
	bankByID   map[types.ID]*types.Bank
	categories []*types.Category
	catByID    map[types.ID]*types.Category
	modes      []*types.Mode
	modeByID   map[types.ID]*types.Mode
	products   *MultiKeyMap[types.ProductKey, *types.Product]
	presets    []*types.Preset
	presetByID map[types.ID]*types.Preset
}

// Source is everything the build reads from the database, fetched up
// front so assembly never touches the store. Exported so callers can
// assemble a catalog from rows they already hold (see NewFromSource).
type Source struct {
	Vendors   []string
	Banks     []storage.BankRow
	Paths     map[int64]storage.ContentPathRow
	Seeds     []storage.ProductSeedRow
	Presets   []storage.PresetRow
	Cats      []storage.CategoryRow
	CatLinks  []storage.LinkRow
	Modes     []storage.ModeRow
	ModeLinks []storage.LinkRow
}

// fetchRows reads all source tables concurrently.
func fetchRows(ctx context.Context, store *storage.Store) (*Source, error) {
	var src Source
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { src.Vendors, err = store.Vendors(ctx); return })
	g.Go(func() (err error) { src.Banks, err = store.Banks(ctx); return })
	g.Go(func() (err error) { src.Paths, err = store.ContentPaths(ctx); return })
	g.Go(func() (err error) { src.Seeds, err = store.ProductSeeds(ctx); return })
	g.Go(func() (err error) { src.Presets, err = store.Presets(ctx); return })
	g.Go(func() (err error) { src.Cats, err = store.Categories(ctx); return })
	g.Go(func() (err error) { src.CatLinks, err = store.CategoryLinks(ctx); return })
	g.Go(func() (err error) { src.Modes, err = store.Modes(ctx); return })
	g.Go(func() (err error) { src.ModeLinks, err = store.ModeLinks(ctx); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}
	return &src, nil
}

// build assembles a snapshot from the store. Any broken relation is fatal
// for the whole build.
func build(ctx context.Context, store *storage.Store) (*snapshot, error) {
	src, err := fetchRows(ctx, store)
	if err != nil {
		return nil, err
	}
	return assemble(src)
}

func assemble(src *Source) (*snapshot, error) {
	snap := &snapshot{
		bankByID:   make(map[types.ID]*types.Bank),
		catByID:    make(map[types.ID]*types.Category),
		modeByID:   make(map[types.ID]*types.Mode),
		products:   NewMultiKeyMap[types.ProductKey, *types.Product](),
		presetByID: make(map[types.ID]*types.Preset),
	}

	// Vendors: a plain string facet; display order fixed now.
	snap.vendors = append(snap.vendors, src.Vendors...)
	sort.Slice(snap.vendors, func(i, j int) bool {
		return natsort.Less(snap.vendors[i], snap.vendors[j])
	})

	// Banks, sorted once by display name.
	for _, row := range src.Banks {
		snap.banks = append(snap.banks, &types.Bank{
			ID:      types.ID(row.ID),
			Entry1:  row.Entry1,
			Entry2:  row.Entry2,
			Entry3:  row.Entry3,
			Presets: roaring.New(),
		})
	}
	sort.Slice(snap.banks, func(i, j int) bool {
		return natsort.Less(snap.banks[i].DisplayName(), snap.banks[j].DisplayName())
	})
	for _, b := range snap.banks {
		snap.bankByID[b.ID] = b
	}

	// Products: one per distinct content path that has presets. A path row
	// carrying a UPID makes the product reachable by both keys; a second
	// path sharing an already-bound UPID aggregates into the existing
	// product instead of creating a new one.
	for _, seed := range src.Seeds {
		path, ok := src.Paths[seed.ContentPathID]
		if !ok {
			continue
		}
		id := types.ID(seed.ContentPathID)
		if snap.products.Contains(types.ByID(id)) {
			continue
		}
		if path.UPID != "" && snap.products.Contains(types.ByUPID(path.UPID)) {
			if err := snap.products.Alias(types.ByUPID(path.UPID), types.ByID(id)); err != nil {
				return nil, fmt.Errorf("register product %d: %w", seed.ContentPathID, err)
			}
			continue
		}

		keys := []types.ProductKey{types.ByID(id)}
		if path.UPID != "" {
			keys = append(keys, types.ByUPID(path.UPID))
		}
		err := snap.products.Insert(keys, &types.Product{
			ID:         id,
			Name:       path.Alias,
			Vendor:     seed.Vendor,
			UPID:       path.UPID,
			ContentDir: path.Path,
			Presets:    roaring.New(),
		})
		if err != nil {
			return nil, fmt.Errorf("register product %d: %w", seed.ContentPathID, err)
		}
	}

	// Presets, sorted by name before registration so bitmap insertion order
	// is deterministic. The cached product display name is resolved here;
	// a preset pointing at an unknown product is a broken invariant.
	for _, row := range src.Presets {
		product, ok := snap.products.Get(types.ByID(types.ID(row.ContentPathID)))
		if !ok {
			return nil, fmt.Errorf("preset %d (%q) references unknown product %d", row.ID, row.Name, row.ContentPathID)
		}
		snap.presets = append(snap.presets, &types.Preset{
			ID:          types.ID(row.ID),
			Name:        row.Name,
			Vendor:      row.Vendor,
			Comment:     row.Comment,
			Product:     types.ByID(types.ID(row.ContentPathID)),
			ProductName: product.Name,
			FileName:    row.FileName,
			BankID:      types.ID(row.BankID),
			Categories:  roaring.New(),
			Modes:       roaring.New(),
		})
	}
	sort.Slice(snap.presets, func(i, j int) bool {
		return natsort.Less(snap.presets[i].Name, snap.presets[j].Name)
	})
	for _, p := range snap.presets {
		product, _ := snap.products.Get(p.Product)
		product.Presets.Add(p.ID)
		if p.BankID != 0 {
			bank, ok := snap.bankByID[p.BankID]
			if !ok {
				return nil, fmt.Errorf("preset %d references unknown bank %d", p.ID, p.BankID)
			}
			bank.Presets.Add(p.ID)
		}
		snap.presetByID[p.ID] = p
	}

	// Categories, then their symmetric link rows.
	for _, row := range src.Cats {
		snap.categories = append(snap.categories, &types.Category{
			ID:             types.ID(row.ID),
			Name:           row.Name,
			Subcategory:    row.Subcategory,
			Subsubcategory: row.Subsubcategory,
			Presets:        roaring.New(),
		})
	}
	sort.Slice(snap.categories, func(i, j int) bool {
		return natsort.Less(snap.categories[i].DisplayName(), snap.categories[j].DisplayName())
	})
	for _, c := range snap.categories {
		snap.catByID[c.ID] = c
	}
	for _, link := range src.CatLinks {
		cat, ok := snap.catByID[types.ID(link.FacetID)]
		if !ok {
			return nil, fmt.Errorf("category link references unknown category %d", link.FacetID)
		}
		preset, ok := snap.presetByID[types.ID(link.PresetID)]
		if !ok {
			return nil, fmt.Errorf("category link references unknown preset %d", link.PresetID)
		}
		cat.Presets.Add(preset.ID)
		preset.Categories.Add(cat.ID)
	}

	// Modes, linked the same way.
	for _, row := range src.Modes {
		snap.modes = append(snap.modes, &types.Mode{
			ID:      types.ID(row.ID),
			Name:    row.Name,
			Presets: roaring.New(),
		})
	}
	sort.Slice(snap.modes, func(i, j int) bool {
		return natsort.Less(snap.modes[i].Name, snap.modes[j].Name)
	})
	for _, m := range snap.modes {
		snap.modeByID[m.ID] = m
	}
	for _, link := range src.ModeLinks {
		mode, ok := snap.modeByID[types.ID(link.FacetID)]
		if !ok {
			return nil, fmt.Errorf("mode link references unknown mode %d", link.FacetID)
		}
		preset, ok := snap.presetByID[types.ID(link.PresetID)]
		if !ok {
			return nil, fmt.Errorf("mode link references unknown preset %d", link.PresetID)
		}
		mode.Presets.Add(preset.ID)
		preset.Modes.Add(mode.ID)
	}

	return snap, nil
}
