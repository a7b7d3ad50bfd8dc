// Package storetest builds small verse stores for tests.
package storetest

import (
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/dra/core/sqlite"
)

// Book is a fixture row for the books relation.
type Book struct {
	Code string
	Long string
}

// Verse is a fixture row for the verse relation.
type Verse struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
}

// Books is a small books relation in canonical order.
var Books = []Book{
	{"Gn", "Genesis"},
	{"Ex", "Exodus"},
	{"Ru", "Ruth"},
}

// Verses is a verse relation covering the end of Genesis 1, the start of
// Genesis 2, Exodus 1 and all of a short Ruth chapter, in canonical order.
var Verses = []Verse{
	{"Gn", 1, 1, "In the beginning God created heaven, and earth."},
	{"Gn", 1, 2, "And the earth was void and empty, and darkness was upon the face of the deep; and the spirit of God moved over the waters."},
	{"Gn", 1, 3, "And God said: Be light made. And light was made."},
	{"Gn", 1, 4, "And God saw the light that it was good; and he divided the light from the darkness."},
	{"Gn", 1, 5, "And he called the light Day, and the darkness Night; and there was evening and morning one day."},
	{"Gn", 1, 31, "And God saw all the things that he had made, and they were very good. And the evening and morning were the sixth day."},
	{"Gn", 2, 1, "So the heavens and the earth were finished, and all the furniture of them."},
	{"Gn", 2, 2, "And on the seventh day God ended his work which he had made: and he rested on the seventh day from all his work which he had done."},
	{"Gn", 2, 3, "And he blessed the seventh day, and sanctified it: because in it he had rested from all his work which God created and made."},
	{"Ex", 1, 1, "These are the names of the children of Israel, that went into Egypt with Jacob: they went in, every man with his household:"},
	{"Ex", 1, 2, "Ruben, Simeon, Levi, Juda,"},
	{"Ru", 4, 21, "Salmon begot Booz, Booz begot Obed,"},
	{"Ru", 4, 22, "Obed begot Isai, and Isai begot David."},
}

// NewStore writes a store containing books and verses (in that row order)
// to a temp directory and returns its path.
func NewStore(t testing.TB, books []Book, verses []Verse) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dra.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("failed to open fixture store: %v", err)
	}
	defer db.Close()

	stmts := []string{
		`CREATE TABLE books (code TEXT NOT NULL, long TEXT NOT NULL)`,
		`CREATE TABLE engDRA_vpl (book TEXT NOT NULL, chapter INTEGER NOT NULL, startVerse INTEGER NOT NULL, verseText TEXT NOT NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to create fixture schema: %v", err)
		}
	}

	for _, b := range books {
		if _, err := db.Exec(`INSERT INTO books (code, long) VALUES (?, ?)`, b.Code, b.Long); err != nil {
			t.Fatalf("failed to insert book %s: %v", b.Code, err)
		}
	}
	for _, v := range verses {
		if _, err := db.Exec(`INSERT INTO engDRA_vpl (book, chapter, startVerse, verseText) VALUES (?, ?, ?, ?)`,
			v.Book, v.Chapter, v.Verse, v.Text); err != nil {
			t.Fatalf("failed to insert verse %s %d:%d: %v", v.Book, v.Chapter, v.Verse, err)
		}
	}

	return path
}

// NewDefaultStore writes a store containing Books and Verses.
func NewDefaultStore(t testing.TB) string {
	t.Helper()
	return NewStore(t, Books, Verses)
}
