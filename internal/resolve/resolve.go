// Package resolve turns a parsed reference range into the verses it selects.
package resolve

import (
	"context"

	"github.com/FocuswithJustin/dra/core/errors"
	"github.com/FocuswithJustin/dra/core/ref"
	"github.com/FocuswithJustin/dra/internal/logging"
	"github.com/FocuswithJustin/dra/internal/store"
)

// VerseSource is the query the resolver needs from the store.
type VerseSource interface {
	VersesInRange(ctx context.Context, r ref.Range) ([]store.Verse, error)
}

// Resolver validates ranges and fetches their verses.
type Resolver struct {
	source VerseSource
}

// New returns a Resolver reading from source.
func New(source VerseSource) *Resolver {
	return &Resolver{source: source}
}

// Validate reports a RangeError when the end of r precedes its start.
func Validate(r ref.Range) error {
	if r.EndChapter < r.StartChapter {
		return errors.NewRange("chapter", r.StartChapter, r.EndChapter)
	}
	if r.EndChapter == r.StartChapter && r.EndVerse < r.StartVerse {
		return errors.NewRange("verse", r.StartVerse, r.EndVerse)
	}
	return nil
}

// Resolve validates r and returns its verses in positional order. A range
// that matches nothing is not an error: the result is empty.
func (res *Resolver) Resolve(ctx context.Context, r ref.Range) ([]store.Verse, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}

	verses, err := res.source.VersesInRange(ctx, r)
	if err != nil {
		return nil, err
	}

	if len(verses) == 0 {
		logging.DebugContext(ctx, "range_empty", "range", r.String())
	}
	return verses, nil
}
