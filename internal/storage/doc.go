// Package storage provides read-only access to the Komplete Kontrol
// browser database (komplete.db3). The schema is owned by the host
// application and assumed fixed; this package never writes to it.
//
// One row-reader method exists per source table. Readers return flat row
// structs; all relational assembly happens in the catalog package.
//
// Two SQLite drivers are supported via build tags (see build_purego.go and
// build_cgo.go): modernc.org/sqlite by default, mattn/go-sqlite3 when built
// with cgo and the sqlite_cgo tag.
package storage
