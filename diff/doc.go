// Package diff computes line-granularity diffs between an "old" and a "new" string, partitions them into hunks, and selectively re-merges a chosen subset of hunks
// back into a single text.
//
// Representation: A Diff holds the complete OldText/NewText and an ordered slice of hunks that, when concatenated, reconstruct both sides. Each hunk has an Op:
//   - OpEqual: unchanged region (OldText == NewText)
//   - OpInsert: text present only in the new side (OldText == "")
//   - OpDelete: text present only in the old side (NewText == "")
//   - OpReplace: text changed on both sides
//
// Changed hunks (any Op other than OpEqual) are assigned zero-based sequential IDs in order of appearance; OpEqual hunks have ID -1. IDs are the handles used by
// Merge to include or exclude individual hunks.
//
// For non-equal hunks, Lines holds per-line changes; for non-equal lines, Spans holds intra-line segments at word granularity. Lines generally include the
// trailing '\n' if it was present in the input; Spans never contain '\n'.
//
// Invariants:
//   - concat(hunks.OldText) == Diff.OldText
//   - concat(hunks.NewText) == Diff.NewText
//   - If hunk.Op == OpEqual, hunk.Lines is nil and hunk.ID == -1; otherwise, concatenating the line texts equals the hunk text and hunk IDs count up from 0.
//   - If line.Op == OpEqual, line.Spans is nil; otherwise, concatenating the span texts equals the line text (allowing for an optional trailing '\n').
//
// Selective merging: Merge walks the hunks in order, emitting OpEqual hunks verbatim and, for each changed hunk, NewText when its ID is in the included set and
// OldText otherwise. Consequences:
//
//	d.Merge(AllHunkIDs(d)) == d.NewText
//	d.Merge(NewIDSet())    == d.OldText
//
// and toggling a single ID changes only that hunk's contribution.
//
// Granularity: The exact grouping of changes into hunks/lines/spans is a policy choice of DiffText and may evolve. Consumers should rely on the invariants above
// rather than any particular chunking strategy.
//
// Getting a diff: Use DiffText to compute a Diff:
//
//	d := diff.DiffText(oldText, newText)
//	accepted := d.Merge(diff.NewIDSet(0, 2))
//
// Newlines: This package treats '\n' as the line separator. The last line may not end with '\n'; that fact is preserved in Lines. Spans never include '\n'.
package diff
