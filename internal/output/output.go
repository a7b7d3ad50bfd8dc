// Package output formats verses and books for the terminal.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/FocuswithJustin/dra/internal/store"
)

// PositionWidth is the column width of the chapter:verse field.
const PositionWidth = 7

// Position returns "chapter:verse" left-aligned and padded or truncated to
// PositionWidth.
func Position(chapter, verse int) string {
	pos := strconv.Itoa(chapter) + ":" + strconv.Itoa(verse)
	return fmt.Sprintf("%-*.*s", PositionWidth, PositionWidth, pos)
}

// WriteVerses writes one "<chapter>:<verse>\t<text>" line per verse.
func WriteVerses(w io.Writer, verses []store.Verse) error {
	for _, v := range verses {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", Position(v.Chapter, v.Verse), v.Text); err != nil {
			return err
		}
	}
	return nil
}

// WriteBooks writes one "<code>\t<long_name>" line per book.
func WriteBooks(w io.Writer, books []store.Book) error {
	for _, b := range books {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", b.Code, b.LongName); err != nil {
			return err
		}
	}
	return nil
}
