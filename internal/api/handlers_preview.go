package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/docmigrate/internal/doctree"
	"github.com/dgallion1/docmigrate/internal/site"
)

// handlePreview runs the migration on the request body without writing
// anything to disk.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("draft exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	tree, files, err := s.migrator.Plan(bytes.NewReader(data), "preview.md")
	if err != nil {
		jsonError(w, "preview failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	sections := tree.Sections
	if sections == nil {
		sections = []*doctree.Section{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"sections":  sections,
		"files":     files,
		"discarded": tree.Discarded,
	})
}

// handleTree reads the emitted output back and reports contract breaks.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	tree, err := site.Load(s.cfg.OutputDir)
	if err != nil {
		var ce *site.ContractError
		switch {
		case errors.Is(err, site.ErrNoOutput):
			jsonError(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &ce):
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			s.log.Error("load output tree", "error", err)
			jsonError(w, "failed to load output", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"root":     tree.RootManifest(),
		"sections": tree.Sections,
		"pages":    tree.PageCount(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
