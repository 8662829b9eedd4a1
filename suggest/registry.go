package suggest

import (
	"fmt"
	"sort"
)

// Registry is the exclusive owner of the pending-suggestion set.
//
// Registry is not safe for concurrent use; the caller serializes access (the whole engine is single-threaded by contract).
type Registry struct {
	byID map[string]*entry
	seq  int // next registration sequence number; breaks ordering ties
}

// entry pairs a suggestion with its registration order.
type entry struct {
	s   Suggestion
	seq int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*entry)}
}

// Register adds s to the pending set. docLen is the current document length in bytes; a range out of [0, docLen] bounds, From > To, an Original that doesn't
// cover the range, an empty ID, or a duplicate ID are all refused with an ingestion error (see IsInvalidSuggestion). The document content itself is never
// consulted.
func (rg *Registry) Register(s Suggestion, docLen int) error {
	if err := s.validate(docLen); err != nil {
		return err
	}
	if _, ok := rg.byID[s.ID]; ok {
		return invalidSuggestionError(fmt.Errorf("suggestion %q: %w", s.ID, ErrDuplicateID))
	}
	rg.byID[s.ID] = &entry{s: s, seq: rg.seq}
	rg.seq++
	return nil
}

// Get returns the pending suggestion with the given ID.
func (rg *Registry) Get(id string) (Suggestion, bool) {
	e, ok := rg.byID[id]
	if !ok {
		return Suggestion{}, false
	}
	return e.s, true
}

// Remove deletes the suggestion with the given ID from the pending set, reporting whether it was present.
func (rg *Registry) Remove(id string) bool {
	if _, ok := rg.byID[id]; !ok {
		return false
	}
	delete(rg.byID, id)
	return true
}

// Len returns the number of pending suggestions.
func (rg *Registry) Len() int {
	return len(rg.byID)
}

// Pending returns the pending suggestions ordered by ascending Range.From, ties broken by registration order. This ordering is what makes batch overlap
// resolution well-defined.
func (rg *Registry) Pending() []Suggestion {
	entries := rg.sortedEntries()
	out := make([]Suggestion, len(entries))
	for i, e := range entries {
		out[i] = e.s
	}
	return out
}

// At returns the pending suggestions whose range contains offset, in Pending order.
func (rg *Registry) At(offset int) []Suggestion {
	var out []Suggestion
	for _, e := range rg.sortedEntries() {
		if e.s.Range.Contains(offset) {
			out = append(out, e.s)
		}
	}
	return out
}

// Batch is the outcome of classifying a set of candidate suggestions for joint application. ApplyIDs don't overlap each other; every candidate that would have
// overlapped an earlier-starting winner is in SkipIDs. Skipped suggestions stay pending.
type Batch struct {
	ApplyIDs []string
	SkipIDs  []string
}

// ClassifyForBatch partitions candidateIDs into suggestions that can be applied together and suggestions that must be skipped because their range overlaps an
// already-accepted candidate in this batch.
//
// The scan is a greedy left-to-right pass over the candidates sorted by Range.From (ties by registration order): each candidate either claims its range or is
// skipped because the range is already partly claimed. The result is deterministic, with the earliest-starting range winning. IDs that don't name a pending
// suggestion, and repeated occurrences of the same ID, are ignored.
func (rg *Registry) ClassifyForBatch(candidateIDs []string) Batch {
	seen := make(map[string]bool, len(candidateIDs))
	var candidates []*entry
	for _, id := range candidateIDs {
		e, ok := rg.byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		candidates = append(candidates, e)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].s.Range.From != candidates[j].s.Range.From {
			return candidates[i].s.Range.From < candidates[j].s.Range.From
		}
		return candidates[i].seq < candidates[j].seq
	})

	var batch Batch
	var consumed []Range
	for _, e := range candidates {
		conflict := false
		for _, c := range consumed {
			if e.s.Range.Overlaps(c) {
				conflict = true
				break
			}
		}
		if conflict {
			batch.SkipIDs = append(batch.SkipIDs, e.s.ID)
			continue
		}
		consumed = append(consumed, e.s.Range)
		batch.ApplyIDs = append(batch.ApplyIDs, e.s.ID)
	}
	return batch
}

func (rg *Registry) sortedEntries() []*entry {
	entries := make([]*entry, 0, len(rg.byID))
	for _, e := range rg.byID {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].s.Range.From != entries[j].s.Range.From {
			return entries[i].s.Range.From < entries[j].s.Range.From
		}
		return entries[i].seq < entries[j].seq
	})
	return entries
}
