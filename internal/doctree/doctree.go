package doctree

// IndexSlug marks the implicit page that holds a section's intro content.
const IndexSlug = "index"

// OverviewTitle is the display title given to a non-empty index page.
const OverviewTitle = "Overview"

// Tree is the root of a migrated draft.
type Tree struct {
	Sections  []*Section // Top-level sections in encounter order
	Discarded int        // Lines dropped because no section was open
}

// Section is a tier-1 heading and the pages under it.
type Section struct {
	Title        string  `json:"title"`         // Raw heading text, emphasis stripped
	DisplayTitle string  `json:"display_title"` // Title after override lookup
	Slug         string  `json:"slug"`
	Pages        []*Page `json:"pages"`
}

// Page is a leaf content unit.
type Page struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Manifest is the navigation order of a directory's children.
type Manifest struct {
	Title string   `json:"title,omitempty"`
	Pages []string `json:"pages"`
}

// RootManifest lists section slugs in encounter order.
func (t *Tree) RootManifest() Manifest {
	m := Manifest{Pages: make([]string, 0, len(t.Sections))}
	for _, s := range t.Sections {
		m.Pages = append(m.Pages, s.Slug)
	}
	return m
}

// Manifest lists the section's page slugs in encounter order. Duplicate
// slugs are kept.
func (s *Section) Manifest() Manifest {
	m := Manifest{Pages: make([]string, 0, len(s.Pages))}
	for _, p := range s.Pages {
		m.Pages = append(m.Pages, p.Slug)
	}
	return m
}

// PageCount returns the number of pages across all sections.
func (t *Tree) PageCount() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Pages)
	}
	return n
}
