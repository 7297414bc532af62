package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Timtam/kk-browser/internal/browser"
	"github.com/Timtam/kk-browser/internal/catalog"
	"github.com/Timtam/kk-browser/internal/storage"
	"github.com/Timtam/kk-browser/pkg/types"
)

// CatalogTestSuite loads a komplete-shaped database file end to end: write
// the fixture, open it read-only, build the catalog in the background and
// query it through the browser.
type CatalogTestSuite struct {
	suite.Suite
	ctx     context.Context
	dbPath  string
	store   *storage.Store
	catalog *catalog.Catalog
	browser *browser.Browser
}

// SetupSuite runs once before all tests
func (s *CatalogTestSuite) SetupSuite() {
	s.ctx = context.Background()

	dir, err := os.MkdirTemp("", "kk-browser-test-*")
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = os.RemoveAll(dir) })

	s.dbPath = filepath.Join(dir, "komplete.db3")
	s.writeFixtureDB()

	s.store, err = storage.Open(s.dbPath)
	s.Require().NoError(err)

	s.catalog = catalog.New(true)
	s.catalog.Load(s.ctx, s.store)

	select {
	case <-s.catalog.Ready():
	case <-time.After(10 * time.Second):
		s.FailNow("catalog did not finish loading")
	}
	s.Require().NoError(s.catalog.Err())

	s.browser, err = browser.New(s.catalog)
	s.Require().NoError(err)
}

// TearDownSuite runs once after all tests
func (s *CatalogTestSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// writeFixtureDB creates the schema subset the loader reads and fills it
// with two products, one bank, three categories, one mode and a batch of
// presets.
func (s *CatalogTestSuite) writeFixtureDB() {
	db, err := sql.Open(storage.DriverName, s.dbPath)
	s.Require().NoError(err)
	defer func() { _ = db.Close() }()

	schema := []string{
		`CREATE TABLE k_content_path (id INTEGER PRIMARY KEY, path TEXT, alias TEXT, upid TEXT)`,
		`CREATE TABLE k_bank_chain (id INTEGER PRIMARY KEY, entry1 TEXT, entry2 TEXT, entry3 TEXT)`,
		`CREATE TABLE k_sound_info (id INTEGER PRIMARY KEY, name TEXT, vendor TEXT, comment TEXT,
			content_path_id INTEGER, file_name TEXT, bank_chain_id INTEGER)`,
		`CREATE TABLE k_category (id INTEGER PRIMARY KEY, category TEXT, subcategory TEXT, subsubcategory TEXT)`,
		`CREATE TABLE k_sound_info_category (sound_info_id INTEGER, category_id INTEGER)`,
		`CREATE TABLE k_mode (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE k_sound_info_mode (sound_info_id INTEGER, mode_id INTEGER)`,
	}
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		s.Require().NoError(err)
	}

	exec := func(stmt string, args ...interface{}) {
		_, err := db.Exec(stmt, args...)
		s.Require().NoError(err)
	}

	exec(`INSERT INTO k_content_path VALUES (1, '/content/massive', 'Massive Factory', 'MSV')`)
	exec(`INSERT INTO k_content_path VALUES (2, '/content/pigments', 'Pigments Library', '')`)
	exec(`INSERT INTO k_bank_chain VALUES (4, 'Factory', 'Leads', '')`)
	exec(`INSERT INTO k_category VALUES (20, 'Synth', 'Lead', '')`)
	exec(`INSERT INTO k_category VALUES (21, 'Bass', '', '')`)
	exec(`INSERT INTO k_category VALUES (22, 'Pad', '', '')`)
	exec(`INSERT INTO k_mode VALUES (30, 'Arpeggiated')`)

	// 20 leads in the bank plus 5 basses without one.
	for i := 1; i <= 20; i++ {
		exec(`INSERT INTO k_sound_info VALUES (?, ?, 'Native Instruments', '', 1, ?, 4)`,
			i, fmt.Sprintf("Lead %d", i), fmt.Sprintf("/content/massive/Lead %d.nksf", i))
		exec(`INSERT INTO k_sound_info_category VALUES (?, 20)`, i)
	}
	for i := 21; i <= 25; i++ {
		exec(`INSERT INTO k_sound_info VALUES (?, ?, 'Arturia', 'warm analog bass', 2, ?, NULL)`,
			i, fmt.Sprintf("Bass %d", i-20), fmt.Sprintf("/content/pigments/Bass %d.nksf", i-20))
		exec(`INSERT INTO k_sound_info_category VALUES (?, 21)`, i)
	}
	exec(`INSERT INTO k_sound_info_mode VALUES (1, 30)`)
}

// TestCatalogLoaded verifies the background build published a complete
// snapshot.
func (s *CatalogTestSuite) TestCatalogLoaded() {
	s.False(s.catalog.Loading())
	s.True(s.catalog.DatabaseFound())

	s.Len(s.catalog.Presets(), 25)
	s.Len(s.catalog.Products(), 2)
	s.Equal([]string{"Arturia", "Native Instruments"}, s.catalog.Vendors())
	s.Len(s.catalog.Categories(), 3)
	s.Len(s.catalog.Modes(), 1)
	s.Len(s.catalog.Banks(), 1)
}

// TestNaturalPresetOrder verifies multi-digit names sort numerically.
func (s *CatalogTestSuite) TestNaturalPresetOrder() {
	res := s.browser.SearchPresets(browser.SearchRequest{Query: "lead 1", Limit: 50})
	names := make([]string, 0, len(res.Results))
	for _, p := range res.Results {
		names = append(names, p.Name)
	}
	s.Equal([]string{
		"Lead 1", "Lead 10", "Lead 11", "Lead 12", "Lead 13", "Lead 14",
		"Lead 15", "Lead 16", "Lead 17", "Lead 18", "Lead 19",
	}, names)
}

// TestProductResolution verifies UPID and content-path metadata made it
// onto the products.
func (s *CatalogTestSuite) TestProductResolution() {
	p, ok := s.catalog.ProductByKey(types.ByUPID("MSV"))
	s.Require().True(ok)
	s.Equal("Massive Factory", p.Name)
	s.Equal("/content/massive", p.ContentDir)

	same, ok := s.catalog.ProductByKey(types.ByID(1))
	s.Require().True(ok)
	s.Same(p, same)
}

// TestFacetedSearch exercises the cross-dimension bridge on the loaded
// data.
func (s *CatalogTestSuite) TestFacetedSearch() {
	cats := s.browser.Categories(browser.Filter{Vendors: []string{"Arturia"}})
	s.Require().Len(cats, 1)
	s.Equal("Bass", cats[0].DisplayName())

	banks := s.browser.Banks(browser.Filter{Modes: []types.ID{30}})
	s.Len(banks, 1)

	res := s.browser.SearchPresets(browser.SearchRequest{
		Filter: browser.Filter{Banks: []types.ID{4}},
		Limit:  50,
	})
	s.Equal(25-5, res.Total)
}

// TestSearchPagination walks a page boundary over the full preset set.
func (s *CatalogTestSuite) TestSearchPagination() {
	res := s.browser.SearchPresets(browser.SearchRequest{Offset: 20, Limit: 10})
	s.Equal(25, res.Total)
	s.Len(res.Results, 5)
	s.Equal(21, res.Start)
	s.Equal(25, res.End)

	res = s.browser.SearchPresets(browser.SearchRequest{Offset: 100, Limit: 10})
	s.Empty(res.Results)
	s.Equal(101, res.Start)
	s.Equal(100, res.End)
}

// TestCommentSearch matches against the comment column.
func (s *CatalogTestSuite) TestCommentSearch() {
	res := s.browser.SearchPresets(browser.SearchRequest{Query: "warm analog", Limit: 50})
	s.Equal(5, res.Total)
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}
