package syntax

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

type edit struct {
	span Span
	text string
}

// applyEdits splices edits into src, whose first byte is at offset base of
// the file. Edits outside src are ignored.
func applyEdits(src []byte, base int, edits []edit) ([]byte, error) {
	window := Span{Start: base, End: base + len(src)}
	var inside []edit
	for _, e := range edits {
		if e.span.Start >= window.Start && e.span.End <= window.End {
			inside = append(inside, e)
		}
	}
	slices.SortFunc(inside, func(a, b edit) int {
		return a.span.Start - b.span.Start
	})

	var buf bytes.Buffer
	pos := base
	for i, e := range inside {
		if i > 0 && inside[i-1].span.End > e.span.Start {
			return nil, fmt.Errorf("%w: %d-%d and %d-%d", ErrOverlappingEdits,
				inside[i-1].span.Start, inside[i-1].span.End, e.span.Start, e.span.End)
		}
		buf.Write(src[pos-base : e.span.Start-base])
		buf.WriteString(e.text)
		pos = e.span.End
	}
	buf.Write(src[pos-base:])
	return buf.Bytes(), nil
}

// dedent removes the indentation shared by prefix and every non-blank line
// of text but the first. Relative indentation survives, so text blocks keep
// their value once the printer re-indents every line uniformly.
func dedent(text, prefix string) string {
	if prefix == "" || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	common := prefix
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		common = commonPrefix(common, line)
	}
	for i := 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], common) {
			lines[i] = lines[i][len(common):]
			continue
		}
		// Only blank lines lack the common prefix.
		lines[i] = ""
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
