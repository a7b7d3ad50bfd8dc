// Package store reads the Douay-Rheims verse store: a SQLite database with a
// books relation and a verse relation whose rowid order is canonical
// book, chapter, verse order.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/FocuswithJustin/dra/core/errors"
	"github.com/FocuswithJustin/dra/core/ref"
	"github.com/FocuswithJustin/dra/core/sqlite"
	"github.com/FocuswithJustin/dra/internal/logging"
)

// Relation names in the shipped store.
const (
	BooksTable  = "books"
	VersesTable = "engDRA_vpl"
)

const listBooksSQL = `SELECT code, long FROM ` + BooksTable

// versesSQL selects every row between the first position at or after the
// start bound and the last position at or before the end bound. Either
// subquery yielding NULL selects nothing.
const versesSQL = `SELECT book, chapter, startVerse, verseText FROM ` + VersesTable + `
WHERE rowid BETWEEN
	(SELECT MIN(rowid) FROM ` + VersesTable + ` WHERE book = ?1 AND chapter >= ?2 AND startVerse >= ?3)
	AND
	(SELECT MAX(rowid) FROM ` + VersesTable + ` WHERE book = ?1 AND chapter <= ?4 AND startVerse <= ?5)
ORDER BY rowid`

// Book is one row of the books relation.
type Book struct {
	Code     string `json:"code"`
	LongName string `json:"long_name"`
}

// Verse is one row of the verse relation.
type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Store is a read-only handle on the verse store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the store at path read-only and verifies it can be reached.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, errors.NewStore("open", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewStore("open", path, err)
	}
	logging.DebugContext(ctx, "store_open", "path", path, "driver", sqlite.GetInfo())
	return &Store{db: db, path: path}, nil
}

// NewFromDB wraps an already open database handle.
func NewFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return errors.NewStore("close", s.path, err)
	}
	return nil
}

// ListBooks returns every row of the books relation in the store's native
// order.
func (s *Store) ListBooks(ctx context.Context) ([]Book, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, listBooksSQL)
	if err != nil {
		return nil, errors.NewStore("query", s.path, err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.Code, &b.LongName); err != nil {
			return nil, errors.NewStore("scan", s.path, err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStore("query", s.path, err)
	}

	logging.StoreQuery(ctx, "books", len(books), time.Since(start))
	return books, nil
}

// VersesInRange returns the verses of r.Book between the start and end
// bounds of r, inclusive, in positional order. A range that matches nothing
// yields an empty slice. The range is not validated here.
func (s *Store) VersesInRange(ctx context.Context, r ref.Range) ([]Verse, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, versesSQL,
		r.Book, r.StartChapter, r.StartVerse, r.EndChapter, r.EndVerse)
	if err != nil {
		return nil, errors.NewStore("query", s.path, err)
	}
	defer rows.Close()

	verses := []Verse{}
	for rows.Next() {
		var v Verse
		if err := rows.Scan(&v.Book, &v.Chapter, &v.Verse, &v.Text); err != nil {
			return nil, errors.NewStore("scan", s.path, err)
		}
		verses = append(verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStore("query", s.path, err)
	}

	logging.StoreQuery(ctx, "verses", len(verses), time.Since(start), "range", r.String())
	return verses, nil
}
