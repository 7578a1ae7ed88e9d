// Package describe picks the front matter description for a page.
package describe

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docmigrate/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// MaxRunes bounds a derived description.
const MaxRunes = 160

// Describer resolves descriptions from a lookup table and, optionally, from
// the page body.
type Describer struct {
	table  map[string]string
	derive bool
	md     goldmark.Markdown
}

// New returns a Describer. Table keys are "<section>" (index page only) or
// "<section>/<page>".
func New(table map[string]string, derive bool) *Describer {
	t := make(map[string]string, len(table))
	for k, v := range table {
		t[k] = v
	}
	return &Describer{table: t, derive: derive, md: goldmark.New()}
}

// Describe returns the description for page p in section s. It may be empty.
func (d *Describer) Describe(s *doctree.Section, p *doctree.Page) string {
	if v, ok := d.table[s.Slug+"/"+p.Slug]; ok {
		return v
	}
	if p.Slug == doctree.IndexSlug {
		if v, ok := d.table[s.Slug]; ok {
			return v
		}
	}
	if !d.derive {
		return ""
	}
	return Truncate(d.FirstParagraph(p.Content), MaxRunes)
}

// Apply sets the description of every page in the tree.
func (d *Describer) Apply(tree *doctree.Tree) {
	for _, s := range tree.Sections {
		for _, p := range s.Pages {
			p.Description = d.Describe(s, p)
		}
	}
}

// FirstParagraph returns the plain text of the first top-level paragraph that
// has any text. Image-only paragraphs are skipped.
func (d *Describer) FirstParagraph(body string) string {
	src := []byte(body)
	doc := d.md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() != ast.KindParagraph {
			continue
		}
		var buf bytes.Buffer
		if err := d.md.Renderer().Render(&buf, src, n); err != nil {
			continue
		}
		if t := htmlText(buf.Bytes()); t != "" {
			return t
		}
	}
	return ""
}

// htmlText flattens rendered HTML into whitespace-collapsed text.
func htmlText(fragment []byte) string {
	z := html.NewTokenizer(bytes.NewReader(fragment))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

// Truncate cuts s to at most max runes on a word boundary, appending an
// ellipsis when anything was removed. A non-positive max yields "".
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:max-1])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:") + "…"
}
