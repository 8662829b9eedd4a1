// Package history keeps an append-only log of document snapshots with an undo/redo cursor.
//
// Each committed mutation (a manual edit, a suggestion batch, a merged diff) pushes one Entry holding the complete resulting document. Undo and redo only move
// the cursor; past entries are never mutated, so any point in the session is replayable. Pushing after an undo truncates the abandoned redo tail first.
//
// The invariant maintained by the owner of the log: Entries()[Index()].Content always equals the live document exactly.
package history

import (
	"time"
)

// Entry is one committed document snapshot in the undo/redo log.
type Entry struct {
	Content string    // Complete document text after the mutation.
	Label   string    // Short description of what produced this state ("initial", a suggestion label, "manual edit", ...).
	At      time.Time // When the mutation was committed.
}

// Log is an append-only list of entries plus a cursor into it. The entry at the cursor is the live document state.
//
// Log is not safe for concurrent use; the caller serializes access.
type Log struct {
	entries    []Entry
	index      int
	maxEntries int // 0 means unlimited
}

// Option configures a Log.
type Option func(*Log)

// WithMaxEntries bounds the log to the most recent n entries; pushing beyond the bound discards the oldest entry. n <= 0 means unlimited.
func WithMaxEntries(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.maxEntries = n
		}
	}
}

// NewLog returns a log seeded with initial as its only, current entry.
func NewLog(initial Entry, opts ...Option) *Log {
	l := &Log{entries: []Entry{initial}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Push appends e and makes it current. Any redo tail beyond the cursor is discarded first: once a new state is committed, the undone future is unreachable.
func (l *Log) Push(e Entry) {
	l.entries = append(l.entries[:l.index+1], e)
	l.index = len(l.entries) - 1

	if l.maxEntries > 0 && len(l.entries) > l.maxEntries {
		excess := len(l.entries) - l.maxEntries
		l.entries = l.entries[excess:]
		l.index -= excess
	}
}

// Undo moves the cursor back one entry and returns the now-current entry. At the oldest entry it reports false and changes nothing.
func (l *Log) Undo() (Entry, bool) {
	if !l.CanUndo() {
		return Entry{}, false
	}
	l.index--
	return l.entries[l.index], true
}

// Redo moves the cursor forward one entry and returns the now-current entry. At the newest entry it reports false and changes nothing.
func (l *Log) Redo() (Entry, bool) {
	if !l.CanRedo() {
		return Entry{}, false
	}
	l.index++
	return l.entries[l.index], true
}

// CanUndo reports whether the cursor can move back.
func (l *Log) CanUndo() bool {
	return l.index > 0
}

// CanRedo reports whether the cursor can move forward.
func (l *Log) CanRedo() bool {
	return l.index < len(l.entries)-1
}

// Current returns the entry at the cursor.
func (l *Log) Current() Entry {
	return l.entries[l.index]
}

// Index returns the cursor position.
func (l *Log) Index() int {
	return l.index
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
