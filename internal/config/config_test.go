package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.ContentDir != "./content" {
		t.Errorf("expected ./content, got %q", cfg.ContentDir)
	}
	if cfg.SectionCacheTTL != 5*time.Minute {
		t.Errorf("expected 5m cache ttl, got %v", cfg.SectionCacheTTL)
	}
	if cfg.FrameLoadTimeout != 10*time.Second {
		t.Errorf("expected 10s frame timeout, got %v", cfg.FrameLoadTimeout)
	}
	if cfg.HeadingTop != "h2" || cfg.HeadingSub != "h3" {
		t.Errorf("expected h2/h3, got %s/%s", cfg.HeadingTop, cfg.HeadingSub)
	}
	if len(cfg.SectionPatterns) != 8 {
		t.Errorf("expected 8 default patterns, got %d", len(cfg.SectionPatterns))
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SECTION_PATTERNS", " docs/*.md , ,*.html")
	t.Setenv("SECTION_CACHE_TTL", "30s")
	t.Setenv("WARM_CONCURRENCY", "-1")
	t.Setenv("HEADING_TOP", "H1")
	t.Setenv("CORS_ALLOW_ALL", "true")
	t.Setenv("MAX_SECTION_BYTES", "not-a-number")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if got := strings.Join(cfg.SectionPatterns, "|"); got != "docs/*.md|*.html" {
		t.Errorf("unexpected patterns %q", got)
	}
	if cfg.SectionCacheTTL != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.SectionCacheTTL)
	}
	if cfg.WarmConcurrency != 4 {
		t.Errorf("expected invalid concurrency to reset to 4, got %d", cfg.WarmConcurrency)
	}
	if cfg.HeadingTop != "h1" {
		t.Errorf("expected lowercased h1, got %q", cfg.HeadingTop)
	}
	if !cfg.CORSAllowAll {
		t.Error("expected CORS_ALLOW_ALL true")
	}
	if cfg.MaxSectionBytes != 10485760 {
		t.Errorf("expected default max bytes, got %d", cfg.MaxSectionBytes)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := Config{
		ContentDir:      dir,
		HeadingTop:      "h2",
		HeadingSub:      "h3",
		SectionPatterns: []string{"**/*.html"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no sources", func(c *Config) { c.ContentDir = "" }},
		{"missing dir", func(c *Config) { c.ContentDir = dir + "/nope" }},
		{"bad remote", func(c *Config) { c.RemoteBaseURL = "ftp://example.com" }},
		{"bad top", func(c *Config) { c.HeadingTop = "div" }},
		{"bad sub", func(c *Config) { c.HeadingSub = "" }},
		{"same levels", func(c *Config) { c.HeadingSub = "h2" }},
		{"no patterns", func(c *Config) { c.SectionPatterns = nil }},
	}
	for _, tt := range tests {
		c := valid
		tt.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	remoteOnly := valid
	remoteOnly.ContentDir = ""
	remoteOnly.RemoteBaseURL = "https://docs.example.com/"
	if err := remoteOnly.Validate(); err != nil {
		t.Errorf("expected remote-only config to be valid, got %v", err)
	}
}
