package diff

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

// Diff is a diff from old text to new text.
//
// As an illustration: imagine a document is revised and two separate paragraphs change in the middle. This will produce:
//   - Hunks[0] is OpEqual (the prefix of the document), ID -1.
//   - Hunks[1] contains the first change: a contiguous group of changed lines. OpReplace, ID 0.
//   - Hunks[2] is OpEqual (the lines between the changes), ID -1.
//   - Hunks[3] contains the second change. Imagine lines were strictly inserted. OpInsert, ID 1.
//   - Hunks[last] is OpEqual (the suffix), ID -1.
//
// Two changed hunks are never adjacent: by construction there is always an OpEqual hunk between them.
//
// Invariants:
//   - concat(Hunks.OldText) == OldText
//   - concat(Hunks.NewText) == NewText
//   - Changed hunks carry IDs 0, 1, 2, ... in order of appearance; OpEqual hunks carry ID -1.
type Diff struct {
	OldText string // Entire original text.
	NewText string // Entire revised text.
	Hunks   []Hunk // Ordered hunks that cover the whole diff and reconstruct OldText/NewText.
}

// Hunk represents a contiguous group of lines. The \n character is part of the hunk and line (ex: if a hunk in the middle of some text is removed, OldText for that
// hunk would be \n terminated).
//
// Operations:
//   - OpEqual: OldText == NewText
//   - OpInsert: OldText=="" && NewText!=""
//   - OpDelete: OldText!="" && NewText==""
//   - OpReplace: OldText != "" and NewText != ""
//
// Invariants:
//   - If OpEqual, ID is -1 and Lines is nil. Otherwise ID >= 0, and:
//   - concat(Lines.OldText) == OldText
//   - concat(Lines.NewText) == NewText
type Hunk struct {
	ID      int    // Zero-based sequential ID among changed hunks; -1 for OpEqual hunks.
	Op      Op     // Operation for this hunk (OpEqual, OpInsert, OpDelete, or OpReplace).
	OldText string // Concatenation of old lines in this hunk; empty for inserts.
	NewText string // Concatenation of new lines in this hunk; empty for deletes.
	Lines   []Line // Per-line diffs when Op != OpEqual; nil when OpEqual.
}

// Line is a diff on a single line. Each line usually ends with (and includes) \n, unless the input text to DiffText had no \n.
//
// Operations follow the pattern of Hunk.
//
// Invariants:
//   - If OpEqual, Spans is nil. Otherwise,
//   - concat(Spans.OldText) + \n? == OldText (\n? is an optional newline, since spans cannot contain \n, but lines usually do)
//   - concat(Spans.NewText) + \n? == NewText
type Line struct {
	Op      Op     // Operation for this line (OpEqual, OpInsert, OpDelete, or OpReplace).
	OldText string // Entire old line (including trailing newline if present); empty for inserts.
	NewText string // Entire new line (including trailing newline if present); empty for deletes.
	Spans   []Span // Intra-line segments when Op != OpEqual; nil when OpEqual. Spans never contain newlines.
}

// Span is a diff within a line. It MUST NOT contain any \n.
//
// Operations follow the pattern of Hunk.
//
// Spans are produced at Unicode word granularity (UAX #29 boundaries), so a one-letter change highlights the whole word rather than the letter. This is a policy
// of DiffText and may be tuned.
type Span struct {
	Op      Op     // Operation performed by this span (OpEqual, OpInsert, OpDelete, or OpReplace).
	OldText string // Substring from the old line; empty for inserts.
	NewText string // Substring from the new line; empty for deletes.
}

// defaultEOL is the EOL ('\n').
//
// This constant exists because the design may change to allow configurable EOLs (maybe Windows needs "\r\n"), and this provides a nice hook to find callsites.
const defaultEOL = "\n"

// HunkIDs returns the IDs of all changed hunks in ascending order.
func (d Diff) HunkIDs() []int {
	var ids []int
	for _, h := range d.Hunks {
		if h.Op != OpEqual {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

// Stats returns the total number of added and removed lines across all changed hunks.
func (d Diff) Stats() (added, removed int) {
	for _, h := range d.Hunks {
		if h.Op == OpEqual {
			continue
		}
		for _, ln := range h.Lines {
			switch ln.Op {
			case OpInsert:
				added++
			case OpDelete:
				removed++
			case OpReplace:
				added++
				removed++
			}
		}
	}
	return added, removed
}
