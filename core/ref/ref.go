// Package ref parses scripture reference strings such as "Gn 1:1-5".
package ref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/dra/core/errors"
)

// WholeChapterEnd is the end verse used when a query names a chapter but no
// verse. No chapter in the store has more verses than this.
const WholeChapterEnd = 200

// Range is an inclusive verse range within one book.
type Range struct {
	Book         string `json:"book"`
	StartChapter int    `json:"start_chapter"`
	EndChapter   int    `json:"end_chapter"`
	StartVerse   int    `json:"start_verse"`
	EndVerse     int    `json:"end_verse"`
}

// String returns the canonical BOOK C:V-C:V form of the range.
func (r Range) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(r.StartChapter))
	sb.WriteString(":")
	sb.WriteString(strconv.Itoa(r.StartVerse))
	sb.WriteString("-")
	sb.WriteString(strconv.Itoa(r.EndChapter))
	sb.WriteString(":")
	sb.WriteString(strconv.Itoa(r.EndVerse))
	return sb.String()
}

// IsSingleVerse reports whether the range selects exactly one position.
func (r Range) IsSingleVerse() bool {
	return r.StartChapter == r.EndChapter && r.StartVerse == r.EndVerse
}

// queryGrammar is BOOK [ " " CHAPTER [ ":" VERSE [ "-" [ CHAPTER ":" ] VERSE ] ] ].
// Chapter and verse are captured as words so that non-numeric tokens surface
// as NotANumber rather than a grammar failure.
//
//nolint:govet // participle grammar tags are not standard struct tags
type queryGrammar struct {
	Book    string       `@Word`
	Chapter *chapterPart `( Space @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterPart struct {
	Chapter string     `@Word`
	Verse   *versePart `( ":" @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type versePart struct {
	Verse string   `@Word`
	End   *endPart `( "-" @@ )?`
}

// endPart holds "V" or "C:V". When Second is present, First is the end
// chapter and Second the end verse.
//
//nolint:govet // participle grammar tags are not standard struct tags
type endPart struct {
	First  string  `@Word`
	Second *string `( ":" @Word )?`
}

// queryLexer tokenizes reference strings. Words are Unicode letters, digits
// and underscores. Only a single space may separate the book from the
// chapter; any other character is a lexer error.
var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[\p{L}\p{N}_]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Space", Pattern: ` `},
})

var queryParser = participle.MustBuild[queryGrammar](
	participle.Lexer(queryLexer),
)

// Parse converts a reference string into a Range.
// Supported formats:
//   - "Gn 1" (whole chapter, verses 1-200)
//   - "Gn 1:1" (single verse)
//   - "Gn 1:1-5" (verse range within a chapter)
//   - "Gn 1:30-2:3" (range across chapters)
//
// A book on its own is rejected: a chapter is required.
func Parse(query string) (Range, error) {
	parsed, err := queryParser.ParseString("", query)
	if err != nil {
		pe := errors.NewParse(errors.InvalidFormat, query, "", "does not match BOOK CHAPTER[:VERSE[-[CHAPTER:]VERSE]]")
		pe.Err = err
		return Range{}, pe
	}

	if parsed.Chapter == nil {
		return Range{}, errors.NewParse(errors.InvalidFormat, query, "", "query does not contain chapter")
	}

	r := Range{Book: parsed.Book}

	if r.StartChapter, err = number(query, "chapter", parsed.Chapter.Chapter); err != nil {
		return Range{}, err
	}
	r.EndChapter = r.StartChapter

	vp := parsed.Chapter.Verse
	if vp == nil {
		r.StartVerse = 1
		r.EndVerse = WholeChapterEnd
		return r, nil
	}

	if r.StartVerse, err = number(query, "verse", vp.Verse); err != nil {
		return Range{}, err
	}
	r.EndVerse = r.StartVerse

	if vp.End == nil {
		return r, nil
	}

	if vp.End.Second == nil {
		if r.EndVerse, err = number(query, "end verse", vp.End.First); err != nil {
			return Range{}, err
		}
		return r, nil
	}

	if r.EndChapter, err = number(query, "end chapter", vp.End.First); err != nil {
		return Range{}, err
	}
	if r.EndVerse, err = number(query, "end verse", *vp.End.Second); err != nil {
		return Range{}, err
	}
	return r, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed references.
func MustParse(query string) Range {
	r, err := Parse(query)
	if err != nil {
		panic(fmt.Sprintf("ref: %v", err))
	}
	return r
}

// number converts a chapter or verse token, which must be a 32-bit
// non-negative decimal.
func number(query, what, token string) (int, error) {
	for _, c := range token {
		if c < '0' || c > '9' {
			return 0, errors.NewParse(errors.NotANumber, query, token, what+" is not a number")
		}
	}
	n, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		pe := errors.NewParse(errors.NotANumber, query, token, what+" is out of range")
		pe.Err = err
		return 0, pe
	}
	return int(n), nil
}
