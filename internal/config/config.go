package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/docsite/internal/outline"
)

type Config struct {
	Port string

	// Section sources
	ContentDir    string
	RemoteBaseURL string

	// Section loading
	SectionPatterns  []string
	SectionCacheTTL  time.Duration
	MaxSectionBytes  int64
	WarmOnStart      bool
	WarmConcurrency  int
	FrameLoadTimeout time.Duration

	// Outline levels
	HeadingTop string
	HeadingSub string

	// Sessions
	SessionTTL time.Duration

	// Performance stats
	PerfWindow time.Duration

	// HTTP
	CORSAllowAll bool

	// PDF
	PDFFallbackPdftotext bool
}

var defaultPatterns = []string{
	"**/*.html", "**/*.htm", "**/*.md", "**/*.markdown",
	"**/*.txt", "**/*.csv", "**/*.docx", "**/*.pdf",
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ContentDir:    envOr("CONTENT_DIR", "./content"),
		RemoteBaseURL: os.Getenv("REMOTE_BASE_URL"),

		SectionPatterns:  envList("SECTION_PATTERNS", defaultPatterns),
		SectionCacheTTL:  envDuration("SECTION_CACHE_TTL", 5*time.Minute),
		MaxSectionBytes:  envInt64("MAX_SECTION_BYTES", 10485760), // 10MB
		WarmOnStart:      envBool("WARM_ON_START", false),
		WarmConcurrency:  envInt("WARM_CONCURRENCY", 4),
		FrameLoadTimeout: envDuration("FRAME_LOAD_TIMEOUT", 10*time.Second),

		HeadingTop: strings.ToLower(envOr("HEADING_TOP", "h2")),
		HeadingSub: strings.ToLower(envOr("HEADING_SUB", "h3")),

		SessionTTL: envDuration("SESSION_TTL", 24*time.Hour),

		PerfWindow: envDuration("PERF_WINDOW", 1*time.Hour),

		CORSAllowAll: envBool("CORS_ALLOW_ALL", false),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.SectionCacheTTL < 0 {
		cfg.SectionCacheTTL = 0
	}
	if cfg.MaxSectionBytes <= 0 {
		cfg.MaxSectionBytes = 10485760
	}
	if cfg.WarmConcurrency <= 0 {
		cfg.WarmConcurrency = 4
	}
	if cfg.FrameLoadTimeout <= 0 {
		cfg.FrameLoadTimeout = 10 * time.Second
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.PerfWindow <= 0 {
		cfg.PerfWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentDir == "" && c.RemoteBaseURL == "" {
		return fmt.Errorf("CONTENT_DIR or REMOTE_BASE_URL is required")
	}
	if c.ContentDir != "" {
		info, err := os.Stat(c.ContentDir)
		if err != nil {
			return fmt.Errorf("CONTENT_DIR: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("CONTENT_DIR %q is not a directory", c.ContentDir)
		}
	}
	if c.RemoteBaseURL != "" && !strings.HasPrefix(c.RemoteBaseURL, "http://") && !strings.HasPrefix(c.RemoteBaseURL, "https://") {
		return fmt.Errorf("REMOTE_BASE_URL must be an http(s) URL")
	}
	top, sub := outline.ParseLevel(c.HeadingTop), outline.ParseLevel(c.HeadingSub)
	if top == 0 {
		return fmt.Errorf("HEADING_TOP %q is not a heading tag", c.HeadingTop)
	}
	if sub == 0 {
		return fmt.Errorf("HEADING_SUB %q is not a heading tag", c.HeadingSub)
	}
	if top == sub {
		return fmt.Errorf("HEADING_TOP and HEADING_SUB must differ")
	}
	if len(c.SectionPatterns) == 0 {
		return fmt.Errorf("SECTION_PATTERNS must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList reads a comma-separated list, dropping empty items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
