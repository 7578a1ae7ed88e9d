package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/docmigrate/internal/parser"
	"github.com/dgallion1/docmigrate/internal/slug"
	"github.com/joho/godotenv"
)

type Config struct {
	// Migration input/output
	InputPath     string
	OutputDir     string
	OverridesFile string

	// Parsing
	MergePattern string

	// Emission
	DeriveDescriptions bool
	ManifestTitles     bool
	Verify             bool

	LogLevel slog.Level

	// Preview server
	Port           string
	APIKey         string
	MaxUploadBytes int64
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		InputPath:     envOr("MIGRATE_INPUT", "references/20251209 - Gitbook draft.md"),
		OutputDir:     envOr("MIGRATE_OUTPUT_DIR", "content/docs"),
		OverridesFile: os.Getenv("MIGRATE_OVERRIDES_FILE"),

		MergePattern: envOr("MIGRATE_MERGE_PATTERN", parser.DefaultMergePattern),

		DeriveDescriptions: envBool("MIGRATE_DERIVE_DESCRIPTIONS", false),
		ManifestTitles:     envBool("MIGRATE_MANIFEST_TITLES", false),
		Verify:             envBool("MIGRATE_VERIFY", true),

		LogLevel: envLevel("MIGRATE_LOG_LEVEL", slog.LevelInfo),

		Port:           envOr("PORT", "8091"),
		APIKey:         os.Getenv("MIGRATE_API_KEY"),
		MaxUploadBytes: envInt64("MIGRATE_MAX_UPLOAD_BYTES", 10485760), // 10MB
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("MIGRATE_INPUT must not be empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("MIGRATE_OUTPUT_DIR must not be empty")
	}
	if _, err := c.Merge(); err != nil {
		return err
	}
	return nil
}

// Merge compiles MergePattern. An empty pattern disables merging.
func (c Config) Merge() (*regexp.Regexp, error) {
	if c.MergePattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.MergePattern)
	if err != nil {
		return nil, fmt.Errorf("MIGRATE_MERGE_PATTERN: %w", err)
	}
	return re, nil
}

// Overrides returns the slug/title/description tables, read from
// OverridesFile when set.
func (c Config) Overrides() (slug.Overrides, error) {
	if c.OverridesFile == "" {
		return slug.DefaultOverrides(), nil
	}
	data, err := os.ReadFile(c.OverridesFile)
	if err != nil {
		return slug.Overrides{}, fmt.Errorf("read overrides: %w", err)
	}
	var o slug.Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return slug.Overrides{}, fmt.Errorf("decode overrides %s: %w", c.OverridesFile, err)
	}
	return o, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
