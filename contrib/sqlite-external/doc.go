// Package sqliteexternal registers the optional CGO SQLite driver.
//
// To read the verse store through github.com/mattn/go-sqlite3 instead of the
// default pure Go driver, build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/dra
//
// core/sqlite imports this package under that tag; nothing else should
// import it directly.
package sqliteexternal
