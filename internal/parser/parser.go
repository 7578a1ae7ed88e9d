package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docmigrate/internal/doctree"
	"github.com/dgallion1/docmigrate/internal/slug"
)

// Parser converts a raw draft into a section/page Tree.
type Parser interface {
	Parse(r io.Reader) (*doctree.Tree, error)
}

// SupportedExtensions lists draft file extensions this tool can handle.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// ForFile returns the parser for a draft filename.
func ForFile(filename string, resolver *slug.Resolver) (*GitbookParser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !SupportedExtensions[ext] {
		return nil, fmt.Errorf("unsupported draft extension: %q", ext)
	}
	return NewGitbookParser(resolver), nil
}

