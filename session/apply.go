package session

import (
	"fmt"
	"sort"

	"github.com/codalotl/redraft/suggest"
)

// ApplyResult reports the outcome of applying one or more suggestions. Skipped suggestions (stale anchor or overlap with an applied suggestion in the same batch)
// remain pending; they are reported here so the caller can surface them ("3 applied, 2 skipped") instead of losing them.
type ApplyResult struct {
	Applied    int
	Skipped    int
	AppliedIDs []string // In ascending Range.From order (the classification order, not the splice order).
	SkippedIDs []string
}

// ApplyOne applies the pending suggestion with the given ID.
//
// The suggestion's anchored Original is first re-validated against the live document; if the document drifted, the result is zero applied with the ID in
// SkippedIDs and the suggestion stays pending (the caller should surface this as a conflict, not a silent drop). On success the Replacement is spliced over the
// range, the suggestion leaves the pending set, and one history entry labeled with the suggestion's label is pushed.
//
// An ID that names no pending suggestion is a caller contract violation and returns suggest.ErrUnknownSuggestion.
func (s *Session) ApplyOne(id string) (ApplyResult, error) {
	sg, ok := s.reg.Get(id)
	if !ok {
		return ApplyResult{}, fmt.Errorf("apply %q: %w", id, suggest.ErrUnknownSuggestion)
	}
	if !s.fresh(sg) {
		return ApplyResult{Skipped: 1, SkippedIDs: []string{id}}, nil
	}
	s.reg.Remove(id)
	s.commit(splice(s.content, sg.Range, sg.Replacement), sg.Label)
	return ApplyResult{Applied: 1, AppliedIDs: []string{id}}, nil
}

// ApplyMany applies a batch of pending suggestions atomically with respect to undo/redo: the whole batch is one history entry.
//
// Stale candidates are skipped up front. The fresh remainder is classified by the registry's greedy overlap scan (earliest-starting range wins), and the winners
// are spliced in a single pass from the highest Range.From to the lowest, so an earlier-in-document splice can never shift the offsets of a not-yet-applied
// candidate. An empty ids, or a batch where everything was skipped, changes nothing and pushes no history entry.
//
// Any ID that names no pending suggestion fails the whole call with suggest.ErrUnknownSuggestion before anything is applied. A repeated ID is counted once.
func (s *Session) ApplyMany(ids []string) (ApplyResult, error) {
	var res ApplyResult

	// Resolve everything up front; unknown IDs are a contract violation, not a skip. A repeated ID counts once.
	candidates := make([]suggest.Suggestion, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		sg, ok := s.reg.Get(id)
		if !ok {
			return ApplyResult{}, fmt.Errorf("apply %q: %w", id, suggest.ErrUnknownSuggestion)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		candidates = append(candidates, sg)
	}

	// Stale candidates never make it into classification: a drifted anchor is a conflict even with no overlapping sibling.
	freshIDs := make([]string, 0, len(candidates))
	for _, sg := range candidates {
		if s.fresh(sg) {
			freshIDs = append(freshIDs, sg.ID)
		} else {
			res.SkippedIDs = append(res.SkippedIDs, sg.ID)
		}
	}

	batch := s.reg.ClassifyForBatch(freshIDs)
	res.SkippedIDs = append(res.SkippedIDs, batch.SkipIDs...)
	res.AppliedIDs = batch.ApplyIDs
	res.Applied = len(res.AppliedIDs)
	res.Skipped = len(res.SkippedIDs)

	if res.Applied == 0 {
		return res, nil
	}

	// Splice highest-From first: the winners don't overlap, so every later-in-document splice leaves earlier candidates' offsets intact. Winners can still share
	// a From (an insertion point sitting at another winner's start), so ties splice the larger To first; otherwise the insertion lands before the consuming range
	// is replaced and the later splice would eat the inserted text.
	winners := make([]suggest.Suggestion, 0, len(batch.ApplyIDs))
	for _, id := range batch.ApplyIDs {
		sg, _ := s.reg.Get(id)
		winners = append(winners, sg)
	}
	sort.SliceStable(winners, func(i, j int) bool {
		if winners[i].Range.From != winners[j].Range.From {
			return winners[i].Range.From > winners[j].Range.From
		}
		return winners[i].Range.To > winners[j].Range.To
	})

	content := s.content
	for _, sg := range winners {
		content = splice(content, sg.Range, sg.Replacement)
	}
	for _, sg := range winners {
		s.reg.Remove(sg.ID)
	}
	s.commit(content, batchLabel(winners))
	return res, nil
}

// AcceptAll applies every pending suggestion as one batch.
func (s *Session) AcceptAll() (ApplyResult, error) {
	pending := s.reg.Pending()
	ids := make([]string, len(pending))
	for i, sg := range pending {
		ids[i] = sg.ID
	}
	return s.ApplyMany(ids)
}

// RejectOne removes the suggestion from the pending set without touching the document or the history. An unknown ID returns suggest.ErrUnknownSuggestion.
func (s *Session) RejectOne(id string) error {
	if !s.reg.Remove(id) {
		return fmt.Errorf("reject %q: %w", id, suggest.ErrUnknownSuggestion)
	}
	return nil
}

// RejectMany removes a batch of suggestions from the pending set, returning how many were removed. Any unknown ID fails the whole call before anything is
// removed.
func (s *Session) RejectMany(ids []string) (int, error) {
	for _, id := range ids {
		if _, ok := s.reg.Get(id); !ok {
			return 0, fmt.Errorf("reject %q: %w", id, suggest.ErrUnknownSuggestion)
		}
	}
	removed := 0
	for _, id := range ids {
		if s.reg.Remove(id) {
			removed++
		}
	}
	return removed, nil
}

// RejectAll clears the pending set, returning how many suggestions were removed. Document and history are untouched.
func (s *Session) RejectAll() int {
	removed := 0
	for _, sg := range s.reg.Pending() {
		if s.reg.Remove(sg.ID) {
			removed++
		}
	}
	return removed
}

// fresh reports whether sg's anchored Original still matches the live document at its range. A range that no longer fits the document is stale by definition
// (the document shrank underneath it).
func (s *Session) fresh(sg suggest.Suggestion) bool {
	r := sg.Range
	if r.From < 0 || r.To > len(s.content) {
		return false
	}
	return s.content[r.From:r.To] == sg.Original
}

// batchLabel names the history entry for a batch: the suggestion's own label for a batch of one, a count otherwise.
func batchLabel(winners []suggest.Suggestion) string {
	if len(winners) == 1 {
		return winners[0].Label
	}
	return fmt.Sprintf("apply %d suggestions", len(winners))
}
