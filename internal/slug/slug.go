// Package slug derives navigation identifiers and display titles from
// heading text.
package slug

import (
	"strings"
	"unicode"
)

// FallbackPage is used when a page title has no usable characters.
const FallbackPage = "page"

// Overrides holds the lookup tables consulted before the derived rules.
type Overrides struct {
	// SectionSlugs maps an exact section heading to its slug.
	SectionSlugs map[string]string `json:"section_slugs"`
	// SectionTitles maps a section slug to its display title.
	SectionTitles map[string]string `json:"section_titles"`
	// Descriptions maps "<section>" or "<section>/<page>" to a front matter description.
	Descriptions map[string]string `json:"descriptions"`
}

// DefaultOverrides returns the tables for the launchpad documentation draft.
func DefaultOverrides() Overrides {
	return Overrides{
		SectionSlugs: map[string]string{
			"TOKEN SALE FORMATS": "token-sales",
			"ACCESS & STAKING":   "access-staking",
			"TOKEN & ECONOMY":    "token-economy",
		},
		SectionTitles: map[string]string{
			"introduction":           "Introduction",
			"getting-started":        "Getting Started",
			"token-sales":            "Token Sale Formats",
			"access-staking":         "Access & Staking",
			"community-intelligence": "Community Intelligence",
			"participant-protection": "Participant Protection",
			"for-projects":           "For Projects",
			"token-economy":          "Token & Economy",
			"resources":              "Resources",
		},
		Descriptions: map[string]string{
			"introduction":           "Welcome to AttentionPad - The next-generation multi-chain launchpad.",
			"getting-started":        "Learn how to create your account, complete KYC, and participate in sales.",
			"token-sales":            "Explore different token sale formats available on AttentionPad.",
			"access-staking":         "Learn about staking $ATTN and accessing token sales.",
			"community-intelligence": "Understand how community intelligence powers project evaluation.",
			"participant-protection": "Learn about the protection mechanisms in place for participants.",
			"for-projects":           "Everything projects need to know about launching on AttentionPad.",
			"token-economy":          "Learn about $ATTN token utility, distribution, and economics.",
			"resources":              "Useful links, audits, legal documents, and resources.",
		},
	}
}

// Resolver maps heading text to slugs and titles. It is safe for
// concurrent use once constructed.
type Resolver struct {
	sectionSlugs  map[string]string
	sectionTitles map[string]string
}

// New builds a Resolver from the given tables. The maps are copied.
func New(o Overrides) *Resolver {
	return &Resolver{
		sectionSlugs:  cloneMap(o.SectionSlugs),
		sectionTitles: cloneMap(o.SectionTitles),
	}
}

// Section returns the slug for a tier-1 heading title.
func (r *Resolver) Section(title string) string {
	title = strings.TrimSpace(title)
	if s, ok := r.sectionSlugs[title]; ok {
		return s
	}
	return hyphenate(strings.ToLower(title))
}

// SectionTitle returns the display title for a section slug, or raw when
// no override exists.
func (r *Resolver) SectionTitle(slug, raw string) string {
	if t, ok := r.sectionTitles[slug]; ok {
		return t
	}
	return strings.TrimSpace(raw)
}

// Page returns the slug for a tier-2 heading title. The result is never empty.
func (r *Resolver) Page(title string) string {
	return Page(title)
}

// Page derives a page slug without any override lookup.
func Page(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))
	kept := strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || unicode.IsSpace(c) || c == '-' {
			return c
		}
		return -1
	}, lower)
	s := hyphenate(kept)
	if s == "" {
		return FallbackPage
	}
	return s
}

// hyphenate replaces each run of Unicode whitespace with a single hyphen.
func hyphenate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, c := range s {
		if unicode.IsSpace(c) {
			if !space {
				b.WriteByte('-')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(c)
	}
	return b.String()
}

func cloneMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
