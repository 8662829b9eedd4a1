package diff

import (
	"fmt"
	"strings"
)

// RenderUnifiedDiff returns a unified diff of d. If color, the diff will include ANSI color markers.
//
// contextSize controls how many unchanged lines are shown before and after each group of changes. Two change groups separated by at most 2*contextSize unchanged
// lines are merged into a single @@ hunk with the intervening lines shown as context.
//
// Lines are rendered without their trailing newline, and the returned string uses "\n" as the line separator. The output is presentation only; it is not consumed
// anywhere in this module.
func (d Diff) RenderUnifiedDiff(color bool, fromFilename string, toFilename string, contextSize int) string {
	// Colors (ANSI). Applied only if color==true.
	const (
		reset    = "\x1b[0m"
		red      = "\x1b[31m"
		green    = "\x1b[32m"
		magenta  = "\x1b[35m"
		cyanBold = "\x1b[1;36m"
	)

	colorize := func(s, code string) string {
		if !color {
			return s
		}
		return code + s + reset
	}

	countLines := func(text string) int {
		if text == "" {
			return 0
		}
		return len(splitPreserveEOL(text, defaultEOL))
	}

	type outLine struct {
		tag  byte   // ' ', '+', '-'
		text string // line content without EOL
	}

	var out []string
	out = append(out, colorize("--- "+fromFilename, cyanBold))
	out = append(out, colorize("+++ "+toFilename, cyanBold))

	// Current 1-based line numbers in old and new texts at the start of the next hunk.
	oldPos := 1
	newPos := 1

	appendContext := func(lines *[]outLine, eqLines []string) {
		for _, ln := range eqLines {
			core, _ := trimEOL(ln, defaultEOL)
			*lines = append(*lines, outLine{tag: ' ', text: core})
		}
	}

	i := 0
	for i < len(d.Hunks) {
		h := d.Hunks[i]
		if h.Op == OpEqual {
			n := countLines(h.OldText)
			oldPos += n
			newPos += n
			i++
			continue
		}

		var lines []outLine

		// Pre-context from the previous equal hunk's tail.
		preK := 0
		if i-1 >= 0 && d.Hunks[i-1].Op == OpEqual && contextSize > 0 {
			prevEqLines := splitPreserveEOL(d.Hunks[i-1].OldText, defaultEOL)
			preK = contextSize
			if preK > len(prevEqLines) {
				preK = len(prevEqLines)
			}
			appendContext(&lines, prevEqLines[len(prevEqLines)-preK:])
		}

		oldStart := oldPos - preK
		newStart := newPos - preK

		appendChange := func(hk Hunk) {
			for _, ln := range hk.Lines {
				switch ln.Op {
				case OpEqual:
					core, _ := trimEOL(ln.OldText, defaultEOL)
					lines = append(lines, outLine{tag: ' ', text: core})
				case OpDelete:
					core, _ := trimEOL(ln.OldText, defaultEOL)
					lines = append(lines, outLine{tag: '-', text: core})
				case OpInsert:
					core, _ := trimEOL(ln.NewText, defaultEOL)
					lines = append(lines, outLine{tag: '+', text: core})
				case OpReplace:
					oldCore, _ := trimEOL(ln.OldText, defaultEOL)
					newCore, _ := trimEOL(ln.NewText, defaultEOL)
					lines = append(lines, outLine{tag: '-', text: oldCore})
					lines = append(lines, outLine{tag: '+', text: newCore})
				}
			}
			oldPos += countLines(hk.OldText)
			newPos += countLines(hk.NewText)
		}

		appendChange(h)

		// Merge in subsequent change hunks when the equal gap between them is small enough (<= 2*contextSize).
		j := i + 1
		for j < len(d.Hunks) {
			if d.Hunks[j].Op != OpEqual {
				appendChange(d.Hunks[j])
				j++
				continue
			}
			eqLines := splitPreserveEOL(d.Hunks[j].OldText, defaultEOL)
			if j+1 < len(d.Hunks) && d.Hunks[j+1].Op != OpEqual && len(eqLines) <= 2*contextSize {
				appendContext(&lines, eqLines)
				oldPos += len(eqLines)
				newPos += len(eqLines)
				j++
				appendChange(d.Hunks[j])
				j++
				continue
			}
			// Otherwise include head context and end this group.
			k := contextSize
			if k > len(eqLines) {
				k = len(eqLines)
			}
			appendContext(&lines, eqLines[:k])
			break
		}
		i = j

		// Header counts: old side counts ' ' and '-' lines, new side ' ' and '+'.
		oldCount := 0
		newCount := 0
		for _, ln := range lines {
			switch ln.tag {
			case ' ':
				oldCount++
				newCount++
			case '-':
				oldCount++
			case '+':
				newCount++
			}
		}

		out = append(out, colorize(fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, oldCount, newStart, newCount), magenta))
		for _, ln := range lines {
			switch ln.tag {
			case ' ':
				out = append(out, " "+ln.text)
			case '-':
				out = append(out, colorize("-"+ln.text, red))
			case '+':
				out = append(out, colorize("+"+ln.text, green))
			}
		}
	}

	return strings.Join(out, defaultEOL)
}
