package parser

import (
	"regexp"
	"strings"
)

// Kind is the role a draft line plays in the section/page hierarchy.
type Kind int

const (
	KindContent Kind = iota
	KindSection      // "# TITLE"
	KindPage         // "## TITLE"
)

func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindPage:
		return "page"
	default:
		return "content"
	}
}

// Heading is the classification of one line.
type Heading struct {
	Kind  Kind
	Title string // Trimmed heading text with an outer **bold** wrapper removed
	Bold  bool   // Whether the wrapper was present
}

var headingLine = regexp.MustCompile(`^(#{1,2})[ \t]+(.+)$`)

// Classify decides whether line opens a section, opens a page, or is
// ordinary content. Only the marker depth and an outer bold wrapper are
// interpreted; anything else is content.
func Classify(line string) Heading {
	line = strings.TrimRight(line, "\r")
	m := headingLine.FindStringSubmatch(line)
	if m == nil {
		return Heading{Kind: KindContent}
	}

	title := strings.TrimSpace(m[2])
	bold := false
	if len(title) > 4 && strings.HasPrefix(title, "**") && strings.HasSuffix(title, "**") {
		title = strings.TrimSpace(title[2 : len(title)-2])
		bold = true
	}
	if title == "" {
		return Heading{Kind: KindContent}
	}

	kind := KindSection
	if len(m[1]) == 2 {
		kind = KindPage
	}
	return Heading{Kind: kind, Title: title, Bold: bold}
}
