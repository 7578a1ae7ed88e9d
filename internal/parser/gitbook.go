package parser

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/dgallion1/docmigrate/internal/doctree"
	"github.com/dgallion1/docmigrate/internal/slug"
)

// DefaultMergePattern matches quarterly sub-headings ("Q1 2026" .. "Q4 2026")
// that belong inside the preceding page.
const DefaultMergePattern = `(?i)^q[1-4]\b`

// State is the position of an Accumulator in the heading hierarchy.
type State int

const (
	NoSection State = iota
	InSection       // section open, no page buffer
	InPage          // section open with a page buffering lines
)

// openPage is a page still receiving lines.
type openPage struct {
	title string
	slug  string
	lines []string
}

// Accumulator is the single-pass state machine that turns draft lines into
// sections and pages. Feed every line in order, then call Close.
type Accumulator struct {
	resolver *slug.Resolver
	merge    *regexp.Regexp

	tree    *doctree.Tree
	section *doctree.Section
	page    *openPage
}

// NewAccumulator returns an Accumulator using resolver for slugs. A nil
// merge pattern disables sub-heading merging.
func NewAccumulator(resolver *slug.Resolver, merge *regexp.Regexp) *Accumulator {
	return &Accumulator{
		resolver: resolver,
		merge:    merge,
		tree:     &doctree.Tree{},
	}
}

// State reports where the accumulator is in the hierarchy.
func (a *Accumulator) State() State {
	switch {
	case a.section == nil:
		return NoSection
	case a.page == nil:
		return InSection
	default:
		return InPage
	}
}

// Feed consumes one line of the draft.
func (a *Accumulator) Feed(line string) {
	h := Classify(line)
	switch h.Kind {
	case KindSection:
		a.closeSection()
		a.section = &doctree.Section{
			Title: h.Title,
			Slug:  a.resolver.Section(h.Title),
		}
		a.section.DisplayTitle = a.resolver.SectionTitle(a.section.Slug, h.Title)
		// Intro lines before the first "##" land in the index page.
		a.page = &openPage{title: h.Title, slug: doctree.IndexSlug}

	case KindPage:
		if a.section == nil {
			a.tree.Discarded++
			return
		}
		if a.mergeable(h.Title) {
			marker := "### " + h.Title
			if h.Bold {
				marker = "### **" + h.Title + "**"
			}
			a.page.lines = append(a.page.lines, "", marker, "")
			return
		}
		a.closePage()
		a.page = &openPage{title: h.Title, slug: a.resolver.Page(h.Title)}

	default:
		a.appendContent(line)
	}
}

// Close flushes the open page and section and returns the finished tree.
// The Accumulator must not be fed after Close.
func (a *Accumulator) Close() *doctree.Tree {
	a.closeSection()
	return a.tree
}

func (a *Accumulator) mergeable(title string) bool {
	return a.merge != nil && a.page != nil && a.merge.MatchString(title)
}

func (a *Accumulator) appendContent(line string) {
	if a.section == nil {
		a.tree.Discarded++
		return
	}
	if a.page == nil {
		a.page = &openPage{title: a.section.Title, slug: doctree.IndexSlug}
	}
	a.page.lines = append(a.page.lines, strings.TrimRight(line, "\r"))
}

func (a *Accumulator) closePage() {
	p := a.page
	a.page = nil
	if p == nil || a.section == nil {
		return
	}

	content := strings.Join(trimBlankLines(p.lines), "\n")
	title := p.title
	if p.slug == doctree.IndexSlug {
		if content == "" {
			return
		}
		title = doctree.OverviewTitle
	}
	a.section.Pages = append(a.section.Pages, &doctree.Page{
		Title:   title,
		Slug:    p.slug,
		Content: content,
	})
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

func (a *Accumulator) closeSection() {
	a.closePage()
	if a.section == nil {
		return
	}
	a.tree.Sections = append(a.tree.Sections, a.section)
	a.section = nil
}

// GitbookParser splits a single-file draft into sections and pages.
type GitbookParser struct {
	Resolver *slug.Resolver
	Merge    *regexp.Regexp
}

var _ Parser = (*GitbookParser)(nil)

// NewGitbookParser returns a parser with the given resolver and the default
// merge pattern.
func NewGitbookParser(resolver *slug.Resolver) *GitbookParser {
	return &GitbookParser{
		Resolver: resolver,
		Merge:    regexp.MustCompile(DefaultMergePattern),
	}
}

func (p *GitbookParser) Parse(r io.Reader) (*doctree.Tree, error) {
	resolver := p.Resolver
	if resolver == nil {
		resolver = slug.New(slug.Overrides{})
	}
	acc := NewAccumulator(resolver, p.Merge)

	// Lines have no length limit; the caller bounds the whole input.
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			acc.Feed(strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return acc.Close(), nil
}
