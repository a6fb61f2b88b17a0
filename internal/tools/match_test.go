package tools

import (
	"testing"
)

func TestMatcher_LiteralCaseSensitive(t *testing.T) {
	m, err := NewMatcher("test", false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	occs := m.Find("Test test TEST tEsT")
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	if occs[0].Start != 5 || occs[0].End != 9 {
		t.Errorf("occurrence at [%d,%d), want [5,9)", occs[0].Start, occs[0].End)
	}
	if occs[0].Line != 1 {
		t.Errorf("line = %d, want 1", occs[0].Line)
	}
}

func TestMatcher_LiteralCaseInsensitive(t *testing.T) {
	m, err := NewMatcher("test", false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	occs := m.Find("Test test TEST tEsT")
	if len(occs) != 4 {
		t.Errorf("expected 4 occurrences, got %d", len(occs))
	}
	// literal mode: no group semantics even though a regexp does the folding
	if groups := m.Groups("Test test TEST tEsT", occs[0]); groups != nil {
		t.Errorf("expected no groups in literal mode, got %v", groups)
	}
}

func TestMatcher_LiteralNonOverlapping(t *testing.T) {
	m, err := NewMatcher("aa", false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// search resumes past each match, so "aaaa" holds two, not three
	occs := m.Find("aaaa")
	if len(occs) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(occs))
	}
	if occs[0].Start != 0 || occs[1].Start != 2 {
		t.Errorf("occurrences at %d,%d, want 0,2", occs[0].Start, occs[1].Start)
	}
}

func TestMatcher_LineNumbers(t *testing.T) {
	m, err := NewMatcher("x", false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	occs := m.Find("x1\nno\nx3\nno\nx5\n")
	if len(occs) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(occs))
	}
	wantLines := []int{1, 3, 5}
	for i, occ := range occs {
		if occ.Line != wantLines[i] {
			t.Errorf("occurrence %d on line %d, want %d", i, occ.Line, wantLines[i])
		}
	}
}

func TestMatcher_RegexMultilineAnchors(t *testing.T) {
	m, err := NewMatcher("^Line", true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// anchors match at line boundaries, not only buffer start
	occs := m.Find("Line 1\nLine 2\nLine 3")
	if len(occs) != 3 {
		t.Errorf("expected 3 occurrences, got %d", len(occs))
	}
}

func TestMatcher_RegexCaseInsensitive(t *testing.T) {
	m, err := NewMatcher("hello", true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	occs := m.Find("Hello HELLO hello")
	if len(occs) != 3 {
		t.Errorf("expected 3 occurrences, got %d", len(occs))
	}
}

func TestMatcher_RegexGroups(t *testing.T) {
	m, err := NewMatcher(`(\w+) (\w+)`, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content := "John Doe"
	occs := m.Find(content)
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}

	groups := m.Groups(content, occs[0])
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups (whole match + 2), got %d", len(groups))
	}
	if groups[0] != "John Doe" || groups[1] != "John" || groups[2] != "Doe" {
		t.Errorf("groups = %v, want [John Doe John Doe]", groups)
	}
}

func TestMatcher_InvalidRegex(t *testing.T) {
	_, err := NewMatcher("[unclosed", true, true)
	if err == nil {
		t.Fatal("expected error for invalid regex")
	}
	if !IsKind(err, ErrPattern) {
		t.Errorf("expected pattern error, got %v", err)
	}
}

func TestMatcher_EmptyPattern(t *testing.T) {
	m, err := NewMatcher("", false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if occs := m.Find("anything"); occs != nil {
		t.Errorf("expected no occurrences for empty pattern, got %d", len(occs))
	}
}
