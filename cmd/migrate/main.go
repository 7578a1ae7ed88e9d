package main

import (
	"log/slog"
	"os"

	"github.com/dgallion1/docmigrate/internal/config"
	"github.com/dgallion1/docmigrate/internal/pipeline"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	m, err := pipeline.NewMigrator(cfg, log)
	if err != nil {
		log.Error("failed to set up migration", "error", err)
		os.Exit(1)
	}

	res, err := m.Run()
	if err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	log.Info("done",
		"sections", res.Sections,
		"pages", res.Pages,
		"files", len(res.Files),
		"discarded_lines", res.Discarded,
		"input_sha256", res.InputHash,
	)
}
