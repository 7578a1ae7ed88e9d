package pipeline

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/dgallion1/docmigrate/internal/config"
	"github.com/dgallion1/docmigrate/internal/describe"
	"github.com/dgallion1/docmigrate/internal/doctree"
	"github.com/dgallion1/docmigrate/internal/emit"
	"github.com/dgallion1/docmigrate/internal/normalize"
	"github.com/dgallion1/docmigrate/internal/parser"
	"github.com/dgallion1/docmigrate/internal/site"
	"github.com/dgallion1/docmigrate/internal/slug"
)

// Migrator runs the draft-to-docs migration: parse, normalize, describe,
// emit and optionally verify.
type Migrator struct {
	resolver  *slug.Resolver
	merge     *regexp.Regexp
	describer *describe.Describer
	emitOpts  emit.Options
	log       *slog.Logger
	cfg       config.Config
}

// Result summarizes one run.
type Result struct {
	InputHash string
	Sections  int
	Pages     int
	Discarded int
	Files     []emit.File
}

// NewMigrator builds a Migrator from cfg, loading override tables.
func NewMigrator(cfg config.Config, log *slog.Logger) (*Migrator, error) {
	overrides, err := cfg.Overrides()
	if err != nil {
		return nil, err
	}
	merge, err := cfg.Merge()
	if err != nil {
		return nil, err
	}
	return &Migrator{
		resolver:  slug.New(overrides),
		merge:     merge,
		describer: describe.New(overrides.Descriptions, cfg.DeriveDescriptions),
		emitOpts:  emit.Options{ManifestTitles: cfg.ManifestTitles},
		log:       log,
		cfg:       cfg,
	}, nil
}

// Build parses a draft and finishes every page: normalized content and a
// description. filename picks the parser.
func (m *Migrator) Build(r io.Reader, filename string) (*doctree.Tree, error) {
	p, err := parser.ForFile(filename, m.resolver)
	if err != nil {
		return nil, err
	}
	p.Merge = m.merge

	tree, err := p.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	sections := make(map[string]bool, len(tree.Sections))
	for _, s := range tree.Sections {
		if sections[s.Slug] {
			m.log.Warn("duplicate section slug, later section overwrites earlier", "title", s.Title, "section", s.Slug)
		}
		sections[s.Slug] = true

		seen := make(map[string]bool, len(s.Pages))
		for _, pg := range s.Pages {
			pg.Content = normalize.Content(pg.Content)
			if seen[pg.Slug] {
				m.log.Warn("duplicate page slug, later page overwrites earlier", "section", s.Slug, "page", pg.Slug)
			}
			seen[pg.Slug] = true
		}
	}
	m.describer.Apply(tree)

	if tree.Discarded > 0 {
		m.log.Debug("discarded lines before first section", "lines", tree.Discarded)
	}
	return tree, nil
}

// Plan builds the tree and renders the files it would write.
func (m *Migrator) Plan(r io.Reader, filename string) (*doctree.Tree, []emit.File, error) {
	tree, err := m.Build(r, filename)
	if err != nil {
		return nil, nil, err
	}
	files, err := emit.Plan(tree, m.emitOpts)
	if err != nil {
		return nil, nil, err
	}
	return tree, files, nil
}

// Run migrates the configured input into the configured output directory.
func (m *Migrator) Run() (*Result, error) {
	m.log.Info("reading draft", "path", m.cfg.InputPath)
	data, err := os.ReadFile(m.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	res := &Result{InputHash: ContentHashHex(data)}

	m.log.Info("parsing sections")
	tree, err := m.Build(bytes.NewReader(data), m.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	res.Sections = len(tree.Sections)
	res.Pages = tree.PageCount()
	res.Discarded = tree.Discarded

	m.log.Info("found sections", "count", res.Sections, "pages", res.Pages)
	for _, s := range tree.Sections {
		m.log.Info("section", "title", s.DisplayTitle, "slug", s.Slug, "pages", len(s.Pages))
	}

	m.log.Info("writing docs", "output", m.cfg.OutputDir)
	files, err := emit.Emit(tree, m.cfg.OutputDir, m.emitOpts, m.log)
	if err != nil {
		return nil, err
	}
	res.Files = files

	if m.cfg.Verify {
		if _, err := site.Load(m.cfg.OutputDir); err != nil {
			return nil, fmt.Errorf("verify output: %w", err)
		}
		m.log.Info("verified output", "output", m.cfg.OutputDir)
	}
	return res, nil
}

// ContentHashHex returns the hex-encoded SHA-256 of data.
func ContentHashHex(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
