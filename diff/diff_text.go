package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffText diffs oldText to newText, returning a Diff.
//
// The diff is deterministic and pure. Both inputs are split on '\n' (keeping the terminator with each line; a trailing fragment with no terminator is its own
// line), then compared line-wise with a Myers-style algorithm so shared lines are maximized and the number of changed hunks is minimized. Maximal runs of changed
// lines become one hunk each; pure insertions and pure deletions are valid hunks, not errors.
//
// Empty-vs-empty input yields a Diff with no hunks. Identical inputs yield a single OpEqual hunk covering the whole text.
func DiffText(oldText, newText string) Diff {

	// Diff based on lines. Each distinct line is mapped to a rune so the Myers diff runs over line tokens rather than characters:
	dmp := diffmatchpatch.New()
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	lineDiffs := dmp.DiffMainRunes(rOld, rNew, false)
	lineDiffs = dmp.DiffCleanupMerge(lineDiffs)

	// Decode rune-string back to slice of original lines using the lineArray mapping.
	decode := func(s string) []string {
		if s == "" {
			return nil
		}
		out := make([]string, 0, len(s))
		for _, r := range s {
			idx := int(r)
			if idx >= 0 && idx < len(lineArray) {
				out = append(out, lineArray[idx])
			}
		}
		return out
	}

	var hunks []Hunk
	var dels []string
	var ins []string
	nextID := 0

	flush := func() {
		if len(dels) == 0 && len(ins) == 0 {
			return
		}
		oldBlock := strings.Join(dels, "")
		newBlock := strings.Join(ins, "")
		var op Op
		switch {
		case len(dels) > 0 && len(ins) > 0:
			op = OpReplace
		case len(dels) > 0:
			op = OpDelete
		default:
			op = OpInsert
		}
		lines := buildLines(dels, ins)
		hunks = append(hunks, Hunk{ID: nextID, Op: op, OldText: oldBlock, NewText: newBlock, Lines: lines})
		nextID++
		dels = nil
		ins = nil
	}

	for _, d := range lineDiffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			eqLines := decode(d.Text)
			if len(eqLines) == 0 {
				continue
			}
			text := strings.Join(eqLines, "")
			hunks = append(hunks, Hunk{ID: -1, Op: OpEqual, OldText: text, NewText: text, Lines: nil})
		case diffmatchpatch.DiffDelete:
			dels = append(dels, decode(d.Text)...)
		case diffmatchpatch.DiffInsert:
			ins = append(ins, decode(d.Text)...)
		}
	}
	flush()

	diff := Diff{OldText: oldText, NewText: newText, Hunks: hunks}

	if err := diff.validate(); err != nil {
		panic(fmt.Errorf("DiffText: validate failed with %v", err))
	}

	return diff
}

// buildLines constructs Line entries and intra-line word spans for one changed hunk.
func buildLines(deleteLines, insertLines []string) []Line {
	// Pair up replacements for min(len(delete), len(insert)); leftovers are pure deletes/inserts.
	n := len(deleteLines)
	if len(insertLines) < n {
		n = len(insertLines)
	}
	var lines []Line

	for i := 0; i < n; i++ {
		oldLine := deleteLines[i]
		newLine := insertLines[i]
		if oldLine == newLine {
			lines = append(lines, Line{Op: OpEqual, OldText: oldLine, NewText: newLine, Spans: nil})
			continue
		}
		oldCore, _ := trimEOL(oldLine, defaultEOL)
		newCore, _ := trimEOL(newLine, defaultEOL)
		lines = append(lines, Line{Op: OpReplace, OldText: oldLine, NewText: newLine, Spans: wordSpans(oldCore, newCore)})
	}
	for i := n; i < len(deleteLines); i++ {
		oldLine := deleteLines[i]
		oldCore, _ := trimEOL(oldLine, defaultEOL)
		var spans []Span
		if len(oldCore) > 0 {
			spans = []Span{{Op: OpDelete, OldText: oldCore, NewText: ""}}
		}
		lines = append(lines, Line{Op: OpDelete, OldText: oldLine, NewText: "", Spans: spans})
	}
	for i := n; i < len(insertLines); i++ {
		newLine := insertLines[i]
		newCore, _ := trimEOL(newLine, defaultEOL)
		var spans []Span
		if len(newCore) > 0 {
			spans = []Span{{Op: OpInsert, OldText: "", NewText: newCore}}
		}
		lines = append(lines, Line{Op: OpInsert, OldText: "", NewText: newLine, Spans: spans})
	}
	return lines
}

// splitPreserveEOL splits text by eol and preserves the eol on each line, except possibly the last.
func splitPreserveEOL(text, eol string) []string {
	if text == "" {
		return nil
	}
	if eol == "" {
		eol = defaultEOL
	}
	var lines []string
	for {
		idx := strings.Index(text, eol)
		if idx == -1 {
			if text != "" {
				lines = append(lines, text)
			}
			break
		}
		lines = append(lines, text[:idx+len(eol)])
		text = text[idx+len(eol):]
		if text == "" {
			break
		}
	}
	return lines
}

// trimEOL removes a trailing eol from a line if present.
func trimEOL(line, eol string) (string, bool) {
	if eol != "" && strings.HasSuffix(line, eol) {
		return line[:len(line)-len(eol)], true
	}
	return line, false
}
