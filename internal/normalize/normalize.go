// Package normalize cleans up page bodies exported from the draft editor.
package normalize

import (
	"regexp"
	"strings"
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	escapedBang    = regexp.MustCompile(`\\+!`)
	boldHeading    = regexp.MustCompile(`^#{1,6}[ \t]+\*\*`)
)

// Content collapses blank-line runs, repairs escaped image markers and trims
// the body. Content(Content(s)) == Content(s) for every s.
func Content(s string) string {
	s = escapedBang.ReplaceAllString(s, "!")
	s = spaceHeadings(s)
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// spaceHeadings puts a blank line in front of a bold heading that directly
// follows text.
func spaceHeadings(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && boldHeading.MatchString(line) && strings.TrimSpace(lines[i-1]) != "" {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
