// Package emit renders a section/page tree into content files and
// navigation manifests and writes them to disk.
package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/docmigrate/internal/doctree"
	"github.com/natefinch/atomic"
)

const (
	// ManifestName is the navigation manifest file in every directory.
	ManifestName = "meta.json"
	// PageExt is the extension of emitted content files.
	PageExt = ".mdx"
)

// File is one rendered output file. Path is slash-separated and relative to
// the output root.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Options controls rendering.
type Options struct {
	// ManifestTitles adds the section display title to section manifests.
	ManifestTitles bool
}

// Plan renders every file for tree in write order: per section its pages
// then its manifest, and the root manifest last.
func Plan(tree *doctree.Tree, opts Options) ([]File, error) {
	files := make([]File, 0, tree.PageCount()+len(tree.Sections)+1)

	for _, s := range tree.Sections {
		if !isDirName(s.Slug) {
			return nil, fmt.Errorf("section %q: slug %q is not a single directory name", s.Title, s.Slug)
		}
		for _, p := range s.Pages {
			files = append(files, File{
				Path:    path.Join(s.Slug, p.Slug+PageExt),
				Content: RenderPage(p),
			})
		}

		m := s.Manifest()
		if opts.ManifestTitles {
			m.Title = s.DisplayTitle
		}
		data, err := renderManifest(m)
		if err != nil {
			return nil, fmt.Errorf("render manifest for %s: %w", s.Slug, err)
		}
		files = append(files, File{Path: path.Join(s.Slug, ManifestName), Content: data})
	}

	data, err := renderManifest(tree.RootManifest())
	if err != nil {
		return nil, fmt.Errorf("render root manifest: %w", err)
	}
	files = append(files, File{Path: ManifestName, Content: data})

	return files, nil
}

// RenderPage returns the .mdx content for p: front matter, a blank line,
// then the body.
func RenderPage(p *doctree.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: " + yamlTitle(p.Title) + "\n")
	b.WriteString("description: " + strconv.Quote(p.Description) + "\n")
	b.WriteString("---\n\n")
	if p.Content != "" {
		b.WriteString(p.Content)
		b.WriteString("\n")
	}
	return b.String()
}

func renderManifest(m doctree.Manifest) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// isDirName reports whether slug names exactly one directory below the
// output root.
func isDirName(slug string) bool {
	return filepath.IsLocal(slug) && slug != "." && !strings.ContainsAny(slug, `/\`)
}

// yamlScalar matches plain scalars that YAML 1.1 or 1.2 resolves to a bool,
// null, number or timestamp instead of a string.
var yamlScalar = regexp.MustCompile(`^(?:` +
	`y|Y|yes|Yes|YES|n|N|no|No|NO|true|True|TRUE|false|False|FALSE|on|On|ON|off|Off|OFF|` +
	`~|null|Null|NULL|` +
	`[-+]?(?:\.[0-9_]+|[0-9][0-9_]*(?:\.[0-9_]*)?)(?:[eE][-+]?[0-9]+)?|` +
	`[-+]?0x[0-9a-fA-F_]+|[-+]?0o?[0-7_]+|[-+]?0b[01_]+|` +
	`[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+(?:\.[0-9_]*)?|` +
	`[-+]?\.(?:inf|Inf|INF)|\.(?:nan|NaN|NAN)|` +
	`[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}(?:[Tt ].*)?` +
	`)$`)

// yamlTitle leaves plain titles bare and double-quotes ones YAML would
// misread.
func yamlTitle(title string) string {
	if title == "" || strings.Contains(title, ": ") || strings.Contains(title, " #") ||
		strings.HasSuffix(title, ":") || strings.ContainsAny(title[:1], "&*!|>'\"%@`#-?[]{},") ||
		yamlScalar.MatchString(title) {
		return strconv.Quote(title)
	}
	return title
}

// Writer writes planned files under Root.
type Writer struct {
	Root string
	Log  *slog.Logger
}

// NewWriter returns a Writer rooted at root.
func NewWriter(root string, log *slog.Logger) *Writer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Writer{Root: root, Log: log}
}

// Write creates directories as needed and replaces every file. It stops at
// the first error; files already written stay in place.
func (w *Writer) Write(files []File) error {
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return fmt.Errorf("create output root: %w", err)
	}
	for _, f := range files {
		rel := filepath.FromSlash(f.Path)
		if !filepath.IsLocal(rel) || strings.Count(f.Path, "/") > 1 {
			return fmt.Errorf("write %s: path escapes output layout", f.Path)
		}
		dst := filepath.Join(w.Root, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", f.Path, err)
		}
		if err := atomic.WriteFile(dst, bytes.NewReader([]byte(f.Content))); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
		w.Log.Info("wrote file", "path", f.Path, "bytes", len(f.Content))
	}
	return nil
}

// Emit plans and writes tree under root.
func Emit(tree *doctree.Tree, root string, opts Options, log *slog.Logger) ([]File, error) {
	files, err := Plan(tree, opts)
	if err != nil {
		return nil, err
	}
	if err := NewWriter(root, log).Write(files); err != nil {
		return nil, err
	}
	return files, nil
}
