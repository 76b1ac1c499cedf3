package diff

import (
	"strings"
	"testing"
)

func TestUnified_IdenticalContent(t *testing.T) {
	content := "line1\nline2\nline3\n"

	if result := Unified(content, content, "a", "b", 3); result != "" {
		t.Errorf("Expected empty diff for identical content, got: %s", result)
	}
}

func TestUnified_SingleLineChange(t *testing.T) {
	result := Unified("line1\nline2\nline3\n", "line1\nmodified\nline3\n", "default", "current", 1)

	want := "--- default\n+++ current\n@@ -1,3 +1,3 @@\n line1\n-line2\n+modified\n line3\n"
	if result != want {
		t.Errorf("unexpected diff:\n%s\nwant:\n%s", result, want)
	}
}

func TestUnified_ContextLimitsHunks(t *testing.T) {
	var a, b []string
	for i := 0; i < 20; i++ {
		a = append(a, "same")
		b = append(b, "same")
	}
	a[2], b[2] = "old-top", "new-top"
	a[17], b[17] = "old-bottom", "new-bottom"

	result := Unified(strings.Join(a, "\n")+"\n", strings.Join(b, "\n")+"\n", "a", "b", 1)

	if got := strings.Count(result, "@@ -"); got != 2 {
		t.Fatalf("expected 2 hunks, got %d:\n%s", got, result)
	}
	if !strings.Contains(result, "@@ -2,3 +2,3 @@") {
		t.Errorf("first hunk header missing:\n%s", result)
	}
	if !strings.Contains(result, "@@ -17,3 +17,3 @@") {
		t.Errorf("second hunk header missing:\n%s", result)
	}
	if strings.Count(result, " same\n") != 4 {
		t.Errorf("expected one context line on each side of each change:\n%s", result)
	}
}

func TestUnified_Truncation(t *testing.T) {
	var expectedLines, actualLines []string
	for i := 0; i < 11000; i++ {
		expectedLines = append(expectedLines, "expected line")
		if i%2 == 0 {
			actualLines = append(actualLines, "actual line")
		} else {
			actualLines = append(actualLines, "expected line")
		}
	}

	result := Unified(strings.Join(expectedLines, "\n"), strings.Join(actualLines, "\n"), "expected", "actual", 3)

	if !strings.Contains(result, "truncated") {
		t.Error("Large diff should be truncated with truncation message")
	}
	if lineCount := strings.Count(result, "\n"); lineCount > maxDiffLines+1 {
		t.Errorf("Truncated diff should not exceed %d lines, got %d", maxDiffLines, lineCount)
	}
}

func TestUnified_EmptyContent(t *testing.T) {
	result := Unified("", "new content\n", "expected", "actual", 3)

	if !strings.Contains(result, "@@ -0,0 +1 @@") {
		t.Errorf("Diff should start the hunk at line 0 of the empty side:\n%s", result)
	}
	if !strings.Contains(result, "+new content") {
		t.Error("Diff should show added content")
	}
}

func TestLines(t *testing.T) {
	lines := Lines("a\nb\n", "a\nc\n")

	want := []Line{{Equal, "a"}, {Delete, "b"}, {Insert, "c"}}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %+v, want %+v", i, lines[i], want[i])
		}
	}
}
