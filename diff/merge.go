package diff

import (
	"sort"
	"strings"
)

// IDSet is a set of changed-hunk IDs, used to tell Merge which hunks to include.
type IDSet map[int]struct{}

// NewIDSet returns an IDSet containing ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// AllHunkIDs returns an IDSet containing every changed hunk ID of d.
func AllHunkIDs(d Diff) IDSet {
	return NewIDSet(d.HunkIDs()...)
}

// Has reports whether id is in the set.
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Add adds id to the set.
func (s IDSet) Add(id int) {
	s[id] = struct{}{}
}

// Remove removes id from the set; no-op if absent.
func (s IDSet) Remove(id int) {
	delete(s, id)
}

// Len returns the number of IDs in the set.
func (s IDSet) Len() int {
	return len(s)
}

// Values returns the IDs in ascending order.
func (s IDSet) Values() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Merge reconstructs a single text from d, choosing per changed hunk: NewText when the hunk's ID is in included, OldText otherwise. OpEqual hunks are emitted
// verbatim, and hunk order is preserved exactly.
//
// Guarantees:
//   - Merge(AllHunkIDs(d)) == d.NewText
//   - Merge(NewIDSet()) == d.OldText (a nil IDSet behaves the same)
//   - Toggling one ID changes only that hunk's contribution, never neighboring hunks.
//
// IDs in included that don't name a changed hunk of d are silently ignored; they never corrupt the output.
func (d Diff) Merge(included IDSet) string {
	var b strings.Builder
	for _, h := range d.Hunks {
		if h.Op == OpEqual || included.Has(h.ID) {
			b.WriteString(h.NewText)
			continue
		}
		b.WriteString(h.OldText)
	}
	return b.String()
}
