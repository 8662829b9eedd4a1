package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/codalotl/redraft/internal/uni"
)

// wordSpans diffs two line cores (no trailing EOL) at Unicode word granularity and returns the resulting spans. Adjacent changed words are collapsed into a single
// span, so a run of edits reads as one replacement rather than a scatter of tiny ones.
func wordSpans(oldCore, newCore string) []Span {
	oldWords := uni.Words(oldCore)
	newWords := uni.Words(newCore)

	// Map each distinct word token to a rune so the Myers diff runs over word tokens:
	vocab := make(map[string]rune)
	var tokens []string
	encode := func(ws []string) []rune {
		rs := make([]rune, 0, len(ws))
		for _, w := range ws {
			r, ok := vocab[w]
			if !ok {
				r = indexToRune(len(tokens))
				vocab[w] = r
				tokens = append(tokens, w)
			}
			rs = append(rs, r)
		}
		return rs
	}
	rOld := encode(oldWords)
	rNew := encode(newWords)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	decode := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			idx := runeToIndex(r)
			if idx >= 0 && idx < len(tokens) {
				b.WriteString(tokens[idx])
			}
		}
		return b.String()
	}

	// Build spans: equal runs pass through; each run of changed words between equals collapses into a single span.
	var spans []Span
	var delBuf, insBuf strings.Builder
	flush := func() {
		if delBuf.Len() == 0 && insBuf.Len() == 0 {
			return
		}
		var op Op
		switch {
		case delBuf.Len() > 0 && insBuf.Len() > 0:
			op = OpReplace
		case delBuf.Len() > 0:
			op = OpDelete
		default:
			op = OpInsert
		}
		spans = append(spans, Span{Op: op, OldText: delBuf.String(), NewText: insBuf.String()})
		delBuf.Reset()
		insBuf.Reset()
	}

	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			text := decode(d.Text)
			if text == "" {
				continue
			}
			if len(spans) > 0 && spans[len(spans)-1].Op == OpEqual {
				spans[len(spans)-1].OldText += text
				spans[len(spans)-1].NewText += text
				continue
			}
			spans = append(spans, Span{Op: OpEqual, OldText: text, NewText: text})
		case diffmatchpatch.DiffDelete:
			delBuf.WriteString(decode(d.Text))
		case diffmatchpatch.DiffInsert:
			insBuf.WriteString(decode(d.Text))
		}
	}
	flush()

	return spans
}

// indexToRune maps a vocabulary index to a valid rune, skipping the surrogate block.
func indexToRune(i int) rune {
	if i >= 0xD800 {
		i += 0x800
	}
	return rune(i)
}

// runeToIndex is the inverse of indexToRune.
func runeToIndex(r rune) int {
	i := int(r)
	if i >= 0xE000 {
		i -= 0x800
	}
	return i
}
