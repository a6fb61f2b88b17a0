package tools

import (
	"strings"
)

// ApplyReplacements replaces up to maxReplacements occurrences in ascending
// offset order. A negative cap means unlimited; a cap of 0 replaces nothing.
// Occurrences beyond the cap are left verbatim in the output.
// Returns the new content and the applied count; when the applied count is 0
// the returned content is the input, byte for byte.
func (m *Matcher) ApplyReplacements(content string, occs []Occurrence, replacement string, maxReplacements int) (string, int) {
	limit := len(occs)
	if maxReplacements >= 0 && maxReplacements < limit {
		limit = maxReplacements
	}
	if limit == 0 {
		return content, 0
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, occ := range occs[:limit] {
		b.WriteString(content[last:occ.Start])
		b.WriteString(m.expand(content, occ, replacement))
		last = occ.End
	}
	b.WriteString(content[last:])
	return b.String(), limit
}

// expand resolves $N references against the occurrence's captured groups in
// regex mode. Literal replacements are inserted verbatim with no group
// semantics, so deletion is just replacement with an empty string.
func (m *Matcher) expand(content string, occ Occurrence, replacement string) string {
	if occ.submatch == nil {
		return replacement
	}
	return string(m.re.ExpandString(nil, replacement, content, occ.submatch))
}
