package site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docmigrate/internal/doctree"
	"github.com/dgallion1/docmigrate/internal/emit"
)

func writeTree(t *testing.T, root string) {
	t.Helper()
	tree := &doctree.Tree{Sections: []*doctree.Section{{
		Title:        "RESOURCES",
		DisplayTitle: "Resources",
		Slug:         "resources",
		Pages: []*doctree.Page{
			{Title: "Overview", Slug: "index", Description: "Links: audits & more.", Content: "Intro."},
			{Title: "Step 1: Audit", Slug: "step-1-audit", Content: "![report](a.png)\n\nDone."},
		},
	}}}
	if _, err := emit.Emit(tree, root, emit.Options{ManifestTitles: true}, nil); err != nil {
		t.Fatalf("emit: %v", err)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)

	tree, err := Load(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(tree.Sections))
	}
	sec := tree.Sections[0]
	if sec.Slug != "resources" || sec.DisplayTitle != "Resources" {
		t.Errorf("unexpected section %s/%s", sec.Slug, sec.DisplayTitle)
	}
	if len(sec.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(sec.Pages))
	}

	idx := sec.Pages[0]
	if idx.Title != "Overview" || idx.Description != "Links: audits & more." || idx.Content != "Intro." {
		t.Errorf("unexpected index page %+v", idx)
	}
	step := sec.Pages[1]
	if step.Title != "Step 1: Audit" {
		t.Errorf("expected quoted title to survive, got %q", step.Title)
	}
	if step.Content != "![report](a.png)\n\nDone." {
		t.Errorf("unexpected body %q", step.Content)
	}
}

func TestLoad_NoOutput(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrNoOutput) {
		t.Errorf("expected ErrNoOutput, got %v", err)
	}
}

func TestLoad_MissingPage(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root)
	if err := os.Remove(filepath.Join(root, "resources", "step-1-audit.mdx")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	_, err := Load(root)
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ContractError, got %v", err)
	}
	if ce.Slug != "step-1-audit" {
		t.Errorf("expected slug %q, got %q", "step-1-audit", ce.Slug)
	}
}

func TestLoad_MissingSectionDirectory(t *testing.T) {
	root := t.TempDir()
	manifest := `{"pages": ["ghost"]}`
	if err := os.WriteFile(filepath.Join(root, "meta.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := Load(root)
	var ce *ContractError
	if !errors.As(err, &ce) || ce.Slug != "ghost" {
		t.Fatalf("expected ContractError for ghost, got %v", err)
	}
	if !strings.Contains(err.Error(), "ghost.mdx") {
		t.Errorf("expected message to name the missing file, got %q", err.Error())
	}
}

func TestLoad_BadManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "meta.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Load(root); err == nil || errors.Is(err, ErrNoOutput) {
		t.Errorf("expected decode error, got %v", err)
	}
}
