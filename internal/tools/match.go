package tools

import (
	"regexp"
	"strings"
)

// Occurrence is one located match of the search pattern
type Occurrence struct {
	Start int // byte offset of the match start
	End   int // byte offset just past the match
	Line  int // 1-based line number of Start
	// submatch holds regexp submatch index pairs relative to the full
	// content when the matcher runs in regex mode, nil otherwise
	submatch []int
}

// Matcher finds the ordered, non-overlapping occurrences of a pattern in text
type Matcher struct {
	pattern string
	re      *regexp.Regexp // nil for case-sensitive literal matching
	literal bool
}

// NewMatcher builds a matcher for the given mode and case sensitivity.
// In regex mode, multiline semantics are always enabled so ^ and $ match at
// line boundaries rather than only at buffer start/end.
func NewMatcher(pattern string, useRegex, caseSensitive bool) (*Matcher, error) {
	m := &Matcher{pattern: pattern, literal: !useRegex}

	if !useRegex {
		if caseSensitive {
			return m, nil
		}
		// case folding via the regexp engine; QuoteMeta keeps the
		// pattern literal
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(pattern))
		if err != nil {
			return nil, PatternErrorf("invalid pattern: %v", err)
		}
		m.re = re
		return m, nil
	}

	flags := "(?m)"
	if !caseSensitive {
		flags = "(?mi)"
	}
	re, err := regexp.Compile(flags + pattern)
	if err != nil {
		return nil, PatternErrorf("invalid regex pattern: %v", err)
	}
	m.re = re
	return m, nil
}

// Find returns all non-overlapping occurrences in ascending offset order.
// The full list is always returned; any replacement cap is applied later so
// found and applied counts can differ.
func (m *Matcher) Find(content string) []Occurrence {
	if m.pattern == "" {
		return nil
	}

	var occs []Occurrence
	if m.re == nil {
		// exact literal scan, resuming immediately past each match
		pos := 0
		for {
			idx := strings.Index(content[pos:], m.pattern)
			if idx == -1 {
				break
			}
			start := pos + idx
			occs = append(occs, Occurrence{Start: start, End: start + len(m.pattern)})
			pos = start + len(m.pattern)
		}
	} else {
		for _, loc := range m.re.FindAllStringSubmatchIndex(content, -1) {
			occ := Occurrence{Start: loc[0], End: loc[1]}
			if !m.literal {
				occ.submatch = loc
			}
			occs = append(occs, occ)
		}
	}

	fillLineNumbers(content, occs)
	return occs
}

// Groups returns the captured groups for a regex occurrence, index 0 being
// the whole match. Literal occurrences have no groups.
func (m *Matcher) Groups(content string, occ Occurrence) []string {
	if occ.submatch == nil {
		return nil
	}
	groups := make([]string, 0, len(occ.submatch)/2)
	for i := 0; i < len(occ.submatch); i += 2 {
		if occ.submatch[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, content[occ.submatch[i]:occ.submatch[i+1]])
	}
	return groups
}

// fillLineNumbers assigns 1-based line numbers in a single pass.
// Occurrences must be sorted by ascending start offset.
func fillLineNumbers(content string, occs []Occurrence) {
	line := 1
	pos := 0
	for i := range occs {
		for pos < occs[i].Start {
			if content[pos] == '\n' {
				line++
			}
			pos++
		}
		occs[i].Line = line
	}
}
