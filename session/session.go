// Package session binds a live document to its pending suggestions and its undo/redo history, and is the only writer of document content.
//
// A Session owns a document string, a suggest.Registry, and a history.Log. Suggestions are applied only after their anchored Original text is re-validated
// against the live document; a suggestion whose anchor drifted (because of a manual edit, an undo, or an earlier batch) is reported as skipped and stays pending
// rather than being mis-applied or silently dropped.
//
// Every committed mutation pushes exactly one history entry, so a multi-suggestion batch is atomic from the undo/redo perspective.
//
// A Session is single-threaded by contract: the caller serializes operations (concurrent ApplyMany calls against one session are undefined behavior).
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/codalotl/redraft/diff"
	"github.com/codalotl/redraft/history"
	"github.com/codalotl/redraft/suggest"
)

// ErrStaleDiff is returned by ApplyMerged when the diff's OldText is not the live document.
var ErrStaleDiff = errors.New("diff old text does not match live document")

// Session is the application/undo engine for one editing session.
type Session struct {
	content string
	reg     *suggest.Registry
	hist    *history.Log
}

// NewSession returns a session over content, with an empty pending set and a history seeded with an "initial" entry.
func NewSession(content string) *Session {
	return &Session{
		content: content,
		reg:     suggest.NewRegistry(),
		hist:    history.NewLog(history.Entry{Content: content, Label: "initial", At: time.Now()}),
	}
}

// Text returns the live document content.
func (s *Session) Text() string {
	return s.content
}

// Registry returns the pending-suggestion registry. Callers may read it freely; mutation happens through the session.
func (s *Session) Registry() *suggest.Registry {
	return s.reg
}

// History returns the undo/redo log. The entry at its cursor always equals the live document.
func (s *Session) History() *history.Log {
	return s.hist
}

// Register adds a suggestion produced against some past snapshot of the document. The range is bounds-checked against the live document at ingestion; content
// matching is deferred to apply time.
func (s *Session) Register(sg suggest.Suggestion) error {
	return s.reg.Register(sg, len(s.content))
}

// Propose registers a suggestion whose Original is captured from the live document at r. It is the convenience path for proposers that hold the current snapshot.
func (s *Session) Propose(id string, r suggest.Range, replacement, label string) error {
	if r.From < 0 || r.From > r.To || r.To > len(s.content) {
		return fmt.Errorf("suggestion %q: range [%d,%d) out of bounds for document of length %d: %w",
			id, r.From, r.To, len(s.content), suggest.ErrMalformedRange)
	}
	return s.reg.Register(suggest.Suggestion{
		ID:          id,
		Range:       r,
		Original:    s.content[r.From:r.To],
		Replacement: replacement,
		Label:       label,
	}, len(s.content))
}

// Edit applies a manual edit: the bytes in r are replaced by text, and one history entry labeled label is pushed. Pending suggestions are left in place; any that
// the edit invalidated will fail their staleness check when applied later.
func (s *Session) Edit(r suggest.Range, text, label string) error {
	if r.From < 0 || r.From > r.To || r.To > len(s.content) {
		return fmt.Errorf("edit range [%d,%d) out of bounds for document of length %d: %w",
			r.From, r.To, len(s.content), suggest.ErrMalformedRange)
	}
	s.commit(splice(s.content, r, text), label)
	return nil
}

// Undo moves one step back in history and restores that document content. Reports false (and changes nothing) when already at the oldest entry.
func (s *Session) Undo() bool {
	e, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.content = e.Content
	return true
}

// Redo moves one step forward in history and restores that document content. Reports false (and changes nothing) when already at the newest entry.
func (s *Session) Redo() bool {
	e, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.content = e.Content
	return true
}

// DiffAgainst diffs the live document against a proposed full-text replacement. Feed the result (after the caller chooses which hunks to keep) to ApplyMerged.
func (s *Session) DiffAgainst(replacement string) diff.Diff {
	return diff.DiffText(s.content, replacement)
}

// ApplyMerged commits d.Merge(included) as the new document with one history entry. It fails with ErrStaleDiff if d was computed against anything other than the
// live document (e.g. the document changed between DiffAgainst and the caller's hunk selection).
func (s *Session) ApplyMerged(d diff.Diff, included diff.IDSet, label string) error {
	if d.OldText != s.content {
		return ErrStaleDiff
	}
	merged := d.Merge(included)
	if merged == s.content {
		// Nothing included that changes anything. Not an error, but not a history entry either.
		return nil
	}
	s.commit(merged, label)
	return nil
}

// commit sets the live content and pushes the matching history entry. All mutation funnels through here, keeping the history[index]==content invariant in one
// place.
func (s *Session) commit(content, label string) {
	s.content = content
	s.hist.Push(history.Entry{Content: content, Label: label, At: time.Now()})
}

// splice replaces doc's bytes in r with text.
func splice(doc string, r suggest.Range, text string) string {
	return doc[:r.From] + text + doc[r.To:]
}
