package ref

import (
	"errors"
	"strconv"
	"testing"

	draerrors "github.com/FocuswithJustin/dra/core/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Range
	}{
		{
			name:  "whole chapter",
			input: "Gn 1",
			want:  Range{Book: "Gn", StartChapter: 1, EndChapter: 1, StartVerse: 1, EndVerse: WholeChapterEnd},
		},
		{
			name:  "single verse",
			input: "Gn 1:1",
			want:  Range{Book: "Gn", StartChapter: 1, EndChapter: 1, StartVerse: 1, EndVerse: 1},
		},
		{
			name:  "verse range",
			input: "Gn 1:1-5",
			want:  Range{Book: "Gn", StartChapter: 1, EndChapter: 1, StartVerse: 1, EndVerse: 5},
		},
		{
			name:  "cross-chapter range",
			input: "Gn 1:30-2:3",
			want:  Range{Book: "Gn", StartChapter: 1, EndChapter: 2, StartVerse: 30, EndVerse: 3},
		},
		{
			name:  "numbered book code",
			input: "1Kgs 3:16",
			want:  Range{Book: "1Kgs", StartChapter: 3, EndChapter: 3, StartVerse: 16, EndVerse: 16},
		},
		{
			name:  "leading zeros",
			input: "Ps 023:01",
			want:  Range{Book: "Ps", StartChapter: 23, EndChapter: 23, StartVerse: 1, EndVerse: 1},
		},
		{
			name:  "accented book code",
			input: "Gén 1:1",
			want:  Range{Book: "Gén", StartChapter: 1, EndChapter: 1, StartVerse: 1, EndVerse: 1},
		},
		{
			name:  "non-latin book code",
			input: "Быт 2:3",
			want:  Range{Book: "Быт", StartChapter: 2, EndChapter: 2, StartVerse: 3, EndVerse: 3},
		},
		{
			name:  "reversed range parses",
			input: "Ex 3:5-2:1",
			want:  Range{Book: "Ex", StartChapter: 3, EndChapter: 2, StartVerse: 5, EndVerse: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind draerrors.ParseKind
	}{
		{"empty", "", draerrors.InvalidFormat},
		{"book only", "Gn", draerrors.InvalidFormat},
		{"trailing space", "Gn ", draerrors.InvalidFormat},
		{"double space", "Gn  1", draerrors.InvalidFormat},
		{"space around colon", "Gn 1 : 1", draerrors.InvalidFormat},
		{"dot separator", "Gn 1.1", draerrors.InvalidFormat},
		{"dangling dash", "Gn 1:1-", draerrors.InvalidFormat},
		{"dangling colon", "Gn 1:", draerrors.InvalidFormat},
		{"chapter range without verse", "Gn 1-2", draerrors.InvalidFormat},
		{"too many parts", "Gn 1:1-2:3:4", draerrors.InvalidFormat},
		{"trailing garbage", "Gn 1:1 x", draerrors.InvalidFormat},
		{"alpha chapter", "Gn x", draerrors.NotANumber},
		{"alpha verse", "Gn 1:a", draerrors.NotANumber},
		{"alpha end verse", "Gn 1:1-b", draerrors.NotANumber},
		{"alpha end chapter", "Gn 1:1-c:2", draerrors.NotANumber},
		{"underscore in verse", "Gn 1:1_2", draerrors.NotANumber},
		{"overflow", "Gn 99999999999:1", draerrors.NotANumber},
		{"arabic-indic chapter", "Gn ١:1", draerrors.NotANumber},
		{"fullwidth verse", "Gn 1:２", draerrors.NotANumber},
		{"arabic-indic end chapter", "Gn 1:1-٢:3", draerrors.NotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			var pe *draerrors.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error %T is not *ParseError", tt.input, err)
			}
			if pe.Kind != tt.wantKind {
				t.Errorf("Parse(%q) kind = %v, want %v", tt.input, pe.Kind, tt.wantKind)
			}
			if !errors.Is(err, draerrors.ErrInvalidInput) {
				t.Errorf("Parse(%q) error should unwrap to ErrInvalidInput", tt.input)
			}
			if pe.Query != tt.input {
				t.Errorf("Query = %q, want %q", pe.Query, tt.input)
			}
		})
	}
}

func TestParse_ChapterDefaults(t *testing.T) {
	for _, ch := range []int{1, 7, 50, 150} {
		r := MustParse("Ps " + strconv.Itoa(ch))
		if r.StartChapter != ch || r.EndChapter != ch {
			t.Errorf("chapter %d: got %d-%d", ch, r.StartChapter, r.EndChapter)
		}
		if r.StartVerse != 1 || r.EndVerse != WholeChapterEnd {
			t.Errorf("chapter %d: verses %d-%d, want 1-%d", ch, r.StartVerse, r.EndVerse, WholeChapterEnd)
		}
	}
}

func TestRange_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Gn 1", "Gn 1:1-1:200"},
		{"Gn 1:1", "Gn 1:1-1:1"},
		{"Gn 1:1-3", "Gn 1:1-1:3"},
		{"Gn 1:30-2:3", "Gn 1:30-2:3"},
	}

	for _, tt := range tests {
		if got := MustParse(tt.input).String(); got != tt.want {
			t.Errorf("MustParse(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
		// The canonical form is itself a valid query.
		if again := MustParse(MustParse(tt.input).String()); again != MustParse(tt.input) {
			t.Errorf("canonical form of %q does not round-trip: %+v", tt.input, again)
		}
	}
}

func TestRange_IsSingleVerse(t *testing.T) {
	if !MustParse("Gn 1:1").IsSingleVerse() {
		t.Error("Gn 1:1 should be a single verse")
	}
	if MustParse("Gn 1:1-2").IsSingleVerse() {
		t.Error("Gn 1:1-2 should not be a single verse")
	}
	if MustParse("Gn 1").IsSingleVerse() {
		t.Error("Gn 1 should not be a single verse")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("Gn")
}
