// Package diff renders line-oriented unified diffs, used to show how a
// customized stylesheet departs from the default one.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Op classifies a diff line.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

// Line is one line of a line-mode diff.
type Line struct {
	Op   Op
	Text string
}

// Lines computes a line-mode diff of a and b.
func Lines(a, b string) []Line {
	dmp := diffmatchpatch.New()
	charsA, charsB, index := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), index)

	var out []Line
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = Delete
		case diffmatchpatch.DiffInsert:
			op = Insert
		}
		for _, text := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, Line{Op: op, Text: text})
		}
	}
	return out
}

// Unified renders the changes between a and b as unified diff hunks with
// context unchanged lines around each change. It returns "" when a and b are
// identical.
func Unified(a, b, labelA, labelB string, context int) string {
	if a == b {
		return ""
	}
	if context < 0 {
		context = 0
	}

	lines := Lines(a, b)

	// Line numbers in a and b just before lines[i].
	beforeA := make([]int, len(lines)+1)
	beforeB := make([]int, len(lines)+1)
	keep := make([]bool, len(lines))
	for i, line := range lines {
		beforeA[i+1], beforeB[i+1] = beforeA[i], beforeB[i]
		if line.Op != Insert {
			beforeA[i+1]++
		}
		if line.Op != Delete {
			beforeB[i+1]++
		}
		if line.Op == Equal {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", labelA, labelB)

	written := 2
	for start := 0; start < len(lines); {
		if !keep[start] {
			start++
			continue
		}
		end := start
		for end < len(lines) && keep[end] {
			end++
		}

		lenA := beforeA[end] - beforeA[start]
		lenB := beforeB[end] - beforeB[start]
		fmt.Fprintf(&buf, "@@ -%s +%s @@\n", hunkRange(beforeA[start], lenA), hunkRange(beforeB[start], lenB))
		written++

		for _, line := range lines[start:end] {
			if written >= maxDiffLines {
				buf.WriteString(truncateMessage + "\n")
				return buf.String()
			}
			buf.WriteString(prefix(line.Op))
			buf.WriteString(line.Text)
			buf.WriteString("\n")
			written++
		}
		start = end
	}

	return buf.String()
}

func hunkRange(before, length int) string {
	if length == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	if length == 1 {
		return fmt.Sprintf("%d", before+1)
	}
	return fmt.Sprintf("%d,%d", before+1, length)
}

func prefix(op Op) string {
	switch op {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}
