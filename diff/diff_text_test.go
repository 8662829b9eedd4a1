package diff

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffText_Hunks(t *testing.T) {
	type hunkExpectation struct {
		id  int
		op  Op
		old string
		new string
	}

	tests := []struct {
		name string
		old  string
		new  string
		want []hunkExpectation
	}{
		{
			name: "empty vs empty",
			old:  "",
			new:  "",
			want: []hunkExpectation{},
		},
		{
			name: "add whole document",
			old:  "",
			new:  "a\nb\n",
			want: []hunkExpectation{{id: 0, op: OpInsert, old: "", new: "a\nb\n"}},
		},
		{
			name: "delete whole document",
			old:  "a\nb\n",
			new:  "",
			want: []hunkExpectation{{id: 0, op: OpDelete, old: "a\nb\n", new: ""}},
		},
		{
			name: "no newlines - equal",
			old:  "hello",
			new:  "hello",
			want: []hunkExpectation{{id: -1, op: OpEqual, old: "hello", new: "hello"}},
		},
		{
			name: "no newlines - replace words",
			old:  "hello world",
			new:  "hello there",
			want: []hunkExpectation{{id: 0, op: OpReplace, old: "hello world", new: "hello there"}},
		},
		{
			name: "equal whole text",
			old:  "a\nb\n",
			new:  "a\nb\n",
			want: []hunkExpectation{{id: -1, op: OpEqual, old: "a\nb\n", new: "a\nb\n"}},
		},
		{
			name: "insert at end",
			old:  "a\nb\n",
			new:  "a\nb\nc\n",
			want: []hunkExpectation{
				{id: -1, op: OpEqual, old: "a\nb\n", new: "a\nb\n"},
				{id: 0, op: OpInsert, old: "", new: "c\n"},
			},
		},
		{
			name: "delete at end",
			old:  "a\nb\nc\n",
			new:  "a\nb\n",
			want: []hunkExpectation{
				{id: -1, op: OpEqual, old: "a\nb\n", new: "a\nb\n"},
				{id: 0, op: OpDelete, old: "c\n", new: ""},
			},
		},
		{
			name: "replace middle line",
			old:  "a\nb\nc\n",
			new:  "a\nX\nc\n",
			want: []hunkExpectation{
				{id: -1, op: OpEqual, old: "a\n", new: "a\n"},
				{id: 0, op: OpReplace, old: "b\n", new: "X\n"},
				{id: -1, op: OpEqual, old: "c\n", new: "c\n"},
			},
		},
		{
			name: "no trailing newline replace",
			old:  "a\nb",
			new:  "a\nbc",
			want: []hunkExpectation{
				{id: -1, op: OpEqual, old: "a\n", new: "a\n"},
				{id: 0, op: OpReplace, old: "b", new: "bc"},
			},
		},
		{
			name: "windows - rn just kinda works",
			old:  "a\r\nb\r\n",
			new:  "a\r\nX\r\n",
			want: []hunkExpectation{
				{id: -1, op: OpEqual, old: "a\r\n", new: "a\r\n"},
				{id: 0, op: OpReplace, old: "b\r\n", new: "X\r\n"},
			},
		},
		{
			name: "multiple edits get sequential ids",
			old:  "a\nb\nc\nd\ne\n",
			new:  "a\nz\nc\ny\ne\n",
			want: []hunkExpectation{
				{id: -1, op: OpEqual, old: "a\n", new: "a\n"},
				{id: 0, op: OpReplace, old: "b\n", new: "z\n"},
				{id: -1, op: OpEqual, old: "c\n", new: "c\n"},
				{id: 1, op: OpReplace, old: "d\n", new: "y\n"},
				{id: -1, op: OpEqual, old: "e\n", new: "e\n"},
			},
		},
		{
			name: "insert and delete",
			old:  "a\nb\nc\nd\ne\n",
			new:  "a\nb\nz\nc\ne\n",
			want: []hunkExpectation{
				{id: -1, op: OpEqual, old: "a\nb\n", new: "a\nb\n"},
				{id: 0, op: OpInsert, old: "", new: "z\n"},
				{id: -1, op: OpEqual, old: "c\n", new: "c\n"},
				{id: 1, op: OpDelete, old: "d\n", new: ""},
				{id: -1, op: OpEqual, old: "e\n", new: "e\n"},
			},
		},
		{
			name: "multiple inserted lines are coalesced into a single hunk",
			old:  "a\nb\nc\nd\ne\n",
			new:  "a\nb\nz\ny\nx\nd\ne\n",
			want: []hunkExpectation{
				{id: -1, op: OpEqual, old: "a\nb\n", new: "a\nb\n"},
				{id: 0, op: OpReplace, old: "c\n", new: "z\ny\nx\n"},
				{id: -1, op: OpEqual, old: "d\ne\n", new: "d\ne\n"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := DiffText(tc.old, tc.new)

			// Check the invariants explicitly rather than relying on DiffText's construction-time check alone.
			if err := d.validate(); err != nil {
				require.Fail(t, fmt.Sprintf("%s: validate produced err=%v", tc.name, err))
			}

			got := make([]hunkExpectation, 0, len(d.Hunks))
			for _, h := range d.Hunks {
				got = append(got, hunkExpectation{id: h.ID, op: h.Op, old: h.OldText, new: h.NewText})
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDiffText_IdenticalInputsAreOneEqualHunk(t *testing.T) {
	doc := "Intro paragraph.\n\n## Methods\n\nWe did things.\n"
	d := DiffText(doc, doc)

	require.Len(t, d.Hunks, 1)
	require.Equal(t, OpEqual, d.Hunks[0].Op)
	require.Equal(t, doc, d.Hunks[0].OldText)
	require.Empty(t, d.HunkIDs())
}

func TestDiffText_WordSpans(t *testing.T) {
	// A single-word replacement should highlight the whole word, with the surrounding text as equal spans.
	d := DiffText("the quick brown fox\n", "the quick red fox\n")

	require.Len(t, d.Hunks, 1)
	h := d.Hunks[0]
	require.Equal(t, OpReplace, h.Op)
	require.Len(t, h.Lines, 1)

	spans := h.Lines[0].Spans
	require.Equal(t, []Span{
		{Op: OpEqual, OldText: "the quick ", NewText: "the quick "},
		{Op: OpReplace, OldText: "brown", NewText: "red"},
		{Op: OpEqual, OldText: " fox", NewText: " fox"},
	}, spans)
}

func TestDiffText_SpansCollapseAdjacentChanges(t *testing.T) {
	// Two adjacent changed words collapse into one replace span rather than two.
	d := DiffText("alpha beta gamma\n", "alpha delta epsilon gamma\n")

	require.Len(t, d.Hunks, 1)
	spans := d.Hunks[0].Lines[0].Spans

	for i := 1; i < len(spans); i++ {
		if spans[i-1].Op != OpEqual {
			require.Equal(t, OpEqual, spans[i].Op, "changed spans must be separated by equal spans")
		}
	}
	// Reconstruction both ways:
	var oldB, newB string
	for _, sp := range spans {
		oldB += sp.OldText
		newB += sp.NewText
	}
	require.Equal(t, "alpha beta gamma", oldB)
	require.Equal(t, "alpha delta epsilon gamma", newB)
}

func TestDiff_Stats(t *testing.T) {
	d := DiffText("a\nb\nc\n", "a\nX\nc\nd\n")
	added, removed := d.Stats()
	require.Equal(t, 2, added) // X replaces b, d appended
	require.Equal(t, 1, removed)
}
