// Package suggest holds pending edit suggestions anchored to byte offsets in a document, and classifies batches of them for conflict-free application.
//
// A Suggestion proposes replacing the document bytes in [Range.From, Range.To) with Replacement. Suggestions are created by an upstream proposer against a
// specific document snapshot and are immutable once registered. The Registry owns the pending set exclusively: a suggestion is pending from Register until it is
// removed (accepted or rejected by the caller); a suggestion skipped during a batch stays pending for a future retry.
//
// The registry never looks at document content. Whether a suggestion's anchored Original still matches the live document (staleness) is the caller's check; see
// the session package.
package suggest

import (
	"errors"
	"fmt"
)

// Sentinel errors for suggestion ingestion and lookup.
var (
	ErrMalformedRange    = errors.New("malformed range")
	ErrDuplicateID       = errors.New("duplicate suggestion id")
	ErrUnknownSuggestion = errors.New("unknown suggestion id")
)

var errInvalidSuggestion = errors.New("invalid suggestion")

// IsInvalidSuggestion reports whether err (as returned from Register) indicates that the suggestion itself was refused at ingestion: a malformed or out-of-bounds
// range, an empty ID, or an ID already registered.
func IsInvalidSuggestion(err error) bool {
	return errors.Is(err, errInvalidSuggestion)
}

func invalidSuggestionError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(errInvalidSuggestion, err)
}

// Range is a half-open byte range [From, To) in one fixed document snapshot. A range is meaningless once the document has been mutated unless explicitly
// re-validated against the new content.
type Range struct {
	From int
	To   int
}

// Len returns To - From.
func (r Range) Len() int {
	return r.To - r.From
}

// IsEmpty reports whether the range covers no bytes (an insertion point).
func (r Range) IsEmpty() bool {
	return r.From == r.To
}

// Overlaps reports whether [r.From, r.To) and [o.From, o.To) overlap: r.From < o.To && o.From < r.To. Adjacent ranges don't overlap. An empty range strictly
// inside a non-empty one overlaps it (an insertion point inside replaced text is a conflict), but two empty ranges never overlap each other, and an empty range
// at a non-empty range's boundary is fine.
func (r Range) Overlaps(o Range) bool {
	return r.From < o.To && o.From < r.To
}

// Contains reports whether offset falls within the range. An empty range contains exactly its From offset, so insertion-point suggestions are still addressable.
func (r Range) Contains(offset int) bool {
	if r.IsEmpty() {
		return offset == r.From
	}
	return offset >= r.From && offset < r.To
}

// Suggestion is a proposed text replacement anchored to a document offset range, pending human approval.
//
// Original is the document text the proposer saw at Range; it is the staleness witness: if the live document no longer reads Original at Range, the suggestion
// must not be applied. Label is a short human-readable description ("Fix tone", "Tighten intro") used for history entries and grouping.
//
// Lifecycle: created -> pending -> (accepted | rejected), both terminal. A batch skip (overlap or staleness) leaves the suggestion pending.
type Suggestion struct {
	ID          string
	Range       Range
	Original    string
	Replacement string
	Label       string
}

// validate checks s against a document of docLen bytes. It returns an ingestion error (see IsInvalidSuggestion), not an internal panic: malformed suggestions are
// a caller contract violation surfaced to the upstream proposer.
func (s Suggestion) validate(docLen int) error {
	if s.ID == "" {
		return invalidSuggestionError(errors.New("suggestion ID must be non-empty"))
	}
	if s.Range.From < 0 || s.Range.From > s.Range.To || s.Range.To > docLen {
		return invalidSuggestionError(fmt.Errorf("suggestion %q: range [%d,%d) out of bounds for document of length %d: %w",
			s.ID, s.Range.From, s.Range.To, docLen, ErrMalformedRange))
	}
	if len(s.Original) != s.Range.Len() {
		return invalidSuggestionError(fmt.Errorf("suggestion %q: original text length %d does not cover range [%d,%d): %w",
			s.ID, len(s.Original), s.Range.From, s.Range.To, ErrMalformedRange))
	}
	return nil
}
