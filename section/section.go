// Package section resolves document offsets to section labels so suggestions can be grouped and bulk-accepted/rejected "by section".
//
// A section label is the text of the nearest heading at or before an offset. Markdown headings (both ATX "# Title" and setext underline styles) are located with
// goldmark; if the parse finds no headings at all, a literal scan for "#"-prefixed lines is used as a fallback for content goldmark reads differently (e.g. text
// that is mostly not markdown). When no heading precedes the offset, the label is the empty string; callers typically render that group as "(document)".
//
// Labels are stable for a fixed document snapshot: the same (doc, offset) always yields the same label.
package section

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/codalotl/redraft/suggest"
)

// Labeler maps an offset in a document to a stable section label.
type Labeler interface {
	Label(doc string, offset int) string
}

// Heading is one entry of a document outline.
type Heading struct {
	Level  int    // 1-6.
	Text   string // Heading text, trimmed, without markers.
	Offset int    // Byte offset of the start of the heading's line in the document.
}

// HeadingLabeler labels offsets by their nearest preceding markdown heading. The zero value is ready to use. It is stateless; the document is re-parsed per call,
// which is fine at document scale (callers labeling many offsets at once should use Outline directly).
type HeadingLabeler struct{}

// Label returns the text of the nearest heading at or before offset, or "" when no heading precedes it.
func (HeadingLabeler) Label(doc string, offset int) string {
	label := ""
	for _, h := range Outline(doc) {
		if h.Offset > offset {
			break
		}
		label = h.Text
	}
	return label
}

// Outline returns the document's headings in order of appearance.
func Outline(doc string) []Heading {
	hs := markdownOutline(doc)
	if len(hs) == 0 {
		hs = literalOutline(doc)
	}
	return hs
}

// markdownOutline collects headings from the goldmark AST, with byte offsets recovered from the AST's line segments.
func markdownOutline(doc string) []Heading {
	src := []byte(doc)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))
	if root == nil {
		return nil
	}

	var out []Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(src))
		}

		seg := lines.At(0)
		// The segment starts at the heading text; back up to the start of its line so "# " markers count as part of the heading's position.
		lineStart := strings.LastIndexByte(doc[:seg.Start], '\n') + 1

		out = append(out, Heading{
			Level:  h.Level,
			Text:   trimHeadingText(b.String()),
			Offset: lineStart,
		})
		return ast.WalkContinue, nil
	})
	return out
}

// literalOutline scans for ATX-style "#" lines without a markdown parser.
func literalOutline(doc string) []Heading {
	var out []Heading
	offset := 0
	for _, line := range strings.SplitAfter(doc, "\n") {
		core := strings.TrimSuffix(line, "\n")
		trimmed := strings.TrimLeft(core, " ")
		if len(core)-len(trimmed) <= 3 { // markdown allows up to 3 leading spaces
			level := 0
			for level < len(trimmed) && trimmed[level] == '#' {
				level++
			}
			if level >= 1 && level <= 6 && (len(trimmed) == level || trimmed[level] == ' ' || trimmed[level] == '\t') {
				out = append(out, Heading{
					Level:  level,
					Text:   trimHeadingText(trimmed[level:]),
					Offset: offset,
				})
			}
		}
		offset += len(line)
	}
	return out
}

// trimHeadingText trims surrounding whitespace and an optional ATX closing sequence ("## Title ##").
func trimHeadingText(s string) string {
	s = strings.TrimSpace(s)
	trailing := strings.TrimRight(s, "#")
	if trailing != s && (trailing == "" || strings.HasSuffix(trailing, " ")) {
		s = strings.TrimRight(trailing, " ")
	}
	return s
}

// LabelSuggestions groups suggestions by the label of their Range.From offset, for bulk accept/reject-by-section flows. Order within each group follows the input
// order.
func LabelSuggestions(l Labeler, doc string, ss []suggest.Suggestion) map[string][]suggest.Suggestion {
	out := make(map[string][]suggest.Suggestion)
	for _, sg := range ss {
		label := l.Label(doc, sg.Range.From)
		out[label] = append(out[label], sg)
	}
	return out
}
