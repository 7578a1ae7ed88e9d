// Package site reads an emitted documentation tree back from disk and checks
// that every manifest entry resolves to a page or directory.
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/dgallion1/docmigrate/internal/doctree"
	"github.com/dgallion1/docmigrate/internal/emit"
)

// ErrNoOutput is returned when the output root has no manifest.
var ErrNoOutput = errors.New("no emitted output")

// ContractError describes a manifest entry with nothing behind it.
type ContractError struct {
	Manifest string
	Slug     string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s lists %q but no %s%s or directory exists", e.Manifest, e.Slug, e.Slug, emit.PageExt)
}

type pageMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Load reads the tree rooted at root. Sections come from the root manifest and
// pages from each section manifest, in listed order.
func Load(root string) (*doctree.Tree, error) {
	rootManifest := filepath.Join(root, emit.ManifestName)
	m, err := readManifest(rootManifest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNoOutput, root)
		}
		return nil, err
	}

	tree := &doctree.Tree{}
	for _, s := range m.Pages {
		dir := filepath.Join(root, s)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			// A root entry may also be a top-level page.
			if _, perr := os.Stat(dir + emit.PageExt); perr == nil {
				continue
			}
			return nil, &ContractError{Manifest: rootManifest, Slug: s}
		}
		section, err := loadSection(dir, s)
		if err != nil {
			return nil, err
		}
		tree.Sections = append(tree.Sections, section)
	}
	return tree, nil
}

func loadSection(dir, slug string) (*doctree.Section, error) {
	manifestPath := filepath.Join(dir, emit.ManifestName)
	m, err := readManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	section := &doctree.Section{Slug: slug, Title: m.Title, DisplayTitle: m.Title}
	for _, p := range m.Pages {
		pagePath := filepath.Join(dir, p+emit.PageExt)
		page, err := readPage(pagePath, p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				if info, serr := os.Stat(filepath.Join(dir, p)); serr == nil && info.IsDir() {
					continue
				}
				return nil, &ContractError{Manifest: manifestPath, Slug: p}
			}
			return nil, err
		}
		section.Pages = append(section.Pages, page)
	}
	return section, nil
}

func readManifest(path string) (doctree.Manifest, error) {
	var m doctree.Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

func readPage(path, slug string) (*doctree.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta pageMatter
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return nil, fmt.Errorf("parse front matter in %s: %w", path, err)
	}
	return &doctree.Page{
		Title:       meta.Title,
		Slug:        slug,
		Description: meta.Description,
		Content:     strings.TrimSpace(string(body)),
	}, nil
}
