package tools

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// PreviewGroup is a contiguous cluster of changed lines, the unit shown in a
// preview. Before holds the original line text, After the same lines with
// the replacement applied within this group only.
type PreviewGroup struct {
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Before    string `json:"before"`
	After     string `json:"after"`
}

// BuildPreviewGroups clusters occurrences by line adjacency: two changes land
// in the same group when they fall on the same or directly adjacent lines.
// Groups come back ordered by ascending line number; truncation to the
// requested group count is the caller's job so the total stays reportable.
func (m *Matcher) BuildPreviewGroups(content string, occs []Occurrence, replacement string) []PreviewGroup {
	if len(occs) == 0 {
		return nil
	}

	lineStarts := lineStartOffsets(content)
	totalLines := len(lineStarts)

	type span struct {
		startLine, endLine int
		occs               []Occurrence
	}

	var spans []span
	for _, occ := range occs {
		startLine := occ.Line
		if startLine > totalLines {
			// zero-width match positioned after a trailing newline
			startLine = totalLines
		}
		endLine := startLine + strings.Count(content[occ.Start:occ.End], "\n")
		if endLine > totalLines {
			endLine = totalLines
		}
		if len(spans) > 0 && startLine <= spans[len(spans)-1].endLine+1 {
			last := &spans[len(spans)-1]
			if endLine > last.endLine {
				last.endLine = endLine
			}
			last.occs = append(last.occs, occ)
			continue
		}
		spans = append(spans, span{startLine: startLine, endLine: endLine, occs: []Occurrence{occ}})
	}

	groups := make([]PreviewGroup, 0, len(spans))
	for _, sp := range spans {
		segStart := lineStarts[sp.startLine-1]
		segEnd := len(content)
		if sp.endLine < totalLines {
			segEnd = lineStarts[sp.endLine] - 1 // exclude the trailing newline
		} else if strings.HasSuffix(content, "\n") {
			segEnd = len(content) - 1
		}
		before := content[segStart:segEnd]

		var b strings.Builder
		last := segStart
		for _, occ := range sp.occs {
			// the match may swallow or sit past the segment's final newline
			start, end := occ.Start, occ.End
			if start > segEnd {
				start = segEnd
			}
			if end > segEnd {
				end = segEnd
			}
			b.WriteString(content[last:start])
			b.WriteString(m.expand(content, occ, replacement))
			last = end
		}
		b.WriteString(content[last:segEnd])

		groups = append(groups, PreviewGroup{
			StartLine: sp.startLine,
			EndLine:   sp.endLine,
			Before:    before,
			After:     b.String(),
		})
	}
	return groups
}

// lineStartOffsets returns the byte offset where each line begins.
// A trailing newline does not start a new line.
func lineStartOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// UnifiedDiff renders a unified diff between old and new content
func UnifiedDiff(oldContent, newContent, filename string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: filename,
		ToFile:   filename,
		Context:  3,
	}

	return difflib.GetUnifiedDiffString(diff)
}
