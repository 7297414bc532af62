package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// BankRow is one row of k_bank_chain.
type BankRow struct {
	ID     int64
	Entry1 string
	Entry2 string
	Entry3 string
}

// ContentPathRow is one row of k_content_path: the per-path metadata used
// to assemble products.
type ContentPathRow struct {
	ID    int64
	Path  string
	Alias string
	UPID  string
}

// ProductSeedRow is one distinct (content path, vendor) pair taken from the
// preset table; products are created from these, not from k_content_path
// directly, so paths without any preset never become products.
type ProductSeedRow struct {
	ContentPathID int64
	Vendor        string
}

// PresetRow is one row of k_sound_info.
type PresetRow struct {
	ID            int64
	Name          string
	Vendor        string
	Comment       string
	ContentPathID int64
	FileName      string
	BankID        int64 // 0 when the preset has no bank
}

// CategoryRow is one row of k_category.
type CategoryRow struct {
	ID             int64
	Name           string
	Subcategory    string
	Subsubcategory string
}

// ModeRow is one row of k_mode.
type ModeRow struct {
	ID   int64
	Name string
}

// LinkRow is one row of a preset↔facet link table.
type LinkRow struct {
	PresetID int64
	FacetID  int64
}

// Vendors returns the distinct vendor strings of all presets.
func (s *Store) Vendors(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT vendor FROM k_sound_info")
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vendors []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		if v.String != "" {
			vendors = append(vendors, v.String)
		}
	}
	return vendors, rows.Err()
}

// Banks returns all bank chains.
func (s *Store) Banks(ctx context.Context) ([]BankRow, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, entry1, entry2, entry3 FROM k_bank_chain")
	if err != nil {
		return nil, fmt.Errorf("query banks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var banks []BankRow
	for rows.Next() {
		var (
			id                     int64
			entry1, entry2, entry3 sql.NullString
		)
		if err := rows.Scan(&id, &entry1, &entry2, &entry3); err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		banks = append(banks, BankRow{ID: id, Entry1: entry1.String, Entry2: entry2.String, Entry3: entry3.String})
	}
	return banks, rows.Err()
}

// ContentPaths returns every content-path row keyed by id.
func (s *Store) ContentPaths(ctx context.Context) (map[int64]ContentPathRow, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, path, alias, upid FROM k_content_path")
	if err != nil {
		return nil, fmt.Errorf("query content paths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	paths := make(map[int64]ContentPathRow)
	for rows.Next() {
		var (
			id          int64
			path        sql.NullString
			alias, upid sql.NullString
		)
		if err := rows.Scan(&id, &path, &alias, &upid); err != nil {
			return nil, fmt.Errorf("scan content path: %w", err)
		}
		paths[id] = ContentPathRow{ID: id, Path: path.String, Alias: alias.String, UPID: upid.String}
	}
	return paths, rows.Err()
}

// ProductSeeds returns the distinct (content path id, vendor) pairs of the
// preset table.
func (s *Store) ProductSeeds(ctx context.Context) ([]ProductSeedRow, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT content_path_id, vendor FROM k_sound_info")
	if err != nil {
		return nil, fmt.Errorf("query product seeds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var seeds []ProductSeedRow
	for rows.Next() {
		var (
			id     int64
			vendor sql.NullString
		)
		if err := rows.Scan(&id, &vendor); err != nil {
			return nil, fmt.Errorf("scan product seed: %w", err)
		}
		seeds = append(seeds, ProductSeedRow{ContentPathID: id, Vendor: vendor.String})
	}
	return seeds, rows.Err()
}

// Presets returns the core fields of every preset.
func (s *Store) Presets(ctx context.Context) ([]PresetRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, vendor, comment, content_path_id, file_name, bank_chain_id FROM k_sound_info")
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var presets []PresetRow
	for rows.Next() {
		var (
			id, cpid              int64
			name, vendor, comment sql.NullString
			fileName              sql.NullString
			bankID                sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &vendor, &comment, &cpid, &fileName, &bankID); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		presets = append(presets, PresetRow{
			ID:            id,
			Name:          name.String,
			Vendor:        vendor.String,
			Comment:       comment.String,
			ContentPathID: cpid,
			FileName:      fileName.String,
			BankID:        bankID.Int64,
		})
	}
	return presets, rows.Err()
}

// Categories returns all category definitions.
func (s *Store) Categories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, category, subcategory, subsubcategory FROM k_category")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []CategoryRow
	for rows.Next() {
		var (
			id          int64
			name        sql.NullString
			sub, subsub sql.NullString
		)
		if err := rows.Scan(&id, &name, &sub, &subsub); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, CategoryRow{ID: id, Name: name.String, Subcategory: sub.String, Subsubcategory: subsub.String})
	}
	return categories, rows.Err()
}

// CategoryLinks returns the preset↔category link rows.
func (s *Store) CategoryLinks(ctx context.Context) ([]LinkRow, error) {
	return s.links(ctx, "SELECT sound_info_id, category_id FROM k_sound_info_category")
}

// Modes returns all mode definitions.
func (s *Store) Modes(ctx context.Context) ([]ModeRow, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM k_mode")
	if err != nil {
		return nil, fmt.Errorf("query modes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var modes []ModeRow
	for rows.Next() {
		var (
			id   int64
			name sql.NullString
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan mode: %w", err)
		}
		modes = append(modes, ModeRow{ID: id, Name: name.String})
	}
	return modes, rows.Err()
}

// ModeLinks returns the preset↔mode link rows.
func (s *Store) ModeLinks(ctx context.Context) ([]LinkRow, error) {
	return s.links(ctx, "SELECT sound_info_id, mode_id FROM k_sound_info_mode")
}

func (s *Store) links(ctx context.Context, query string) ([]LinkRow, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var links []LinkRow
	for rows.Next() {
		var l LinkRow
		if err := rows.Scan(&l.PresetID, &l.FacetID); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
