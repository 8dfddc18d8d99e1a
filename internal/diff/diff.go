// Package diff counts added and removed lines in unified-diff text.
package diff

import "strings"

// Stats holds the line counts for one unified diff.
type Stats struct {
	Added   int
	Removed int
}

// Count scans unified-diff text line by line. Lines starting with "+"
// count as added and lines starting with "-" as removed; the "+++" and
// "---" file-header lines are excluded. Everything else (context lines,
// hunk headers, "\ No newline at end of file" markers) is ignored.
//
// The text is split on newlines rather than read through a scanner:
// diff lines can be arbitrarily long (minified or generated sources)
// and must not be truncated by a token limit.
func Count(text string) Stats {
	var stats Stats

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// file-header lines, not content
		case strings.HasPrefix(line, "+"):
			stats.Added++
		case strings.HasPrefix(line, "-"):
			stats.Removed++
		}
	}

	return stats
}
