package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigAppliesOverridesAfterFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("prompt = \"file$\"\ntyping_delay_ms = 20\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TERMFOLIO_PROMPT", "env$")

	cfg, err := loadConfig(path, []string{"typing_delay_ms=3", "features.card=false"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Prompt != "env$" {
		t.Fatalf("prompt = %q, want env$", cfg.Prompt)
	}
	if cfg.TypingDelayMS != 3 {
		t.Fatalf("typing delay = %d, want 3", cfg.TypingDelayMS)
	}
	if cfg.FeatureSet().Enabled("card") {
		t.Fatalf("card should be disabled by override")
	}

	sess := newSession(cfg, nil)
	if sess.Prompt() != "env$" {
		t.Fatalf("session prompt = %q", sess.Prompt())
	}
}

func TestLoadConfigRejectsUnknownFeature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, err := loadConfig(path, []string{"features.teleport=true"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadPortfolioFromContentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.toml")
	if err := os.WriteFile(path, []byte("certifications = [\"CKA\"]\n"), 0o600); err != nil {
		t.Fatalf("write content: %v", err)
	}
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), []string{"content_file=" + path})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	p, err := loadPortfolio(cfg)
	if err != nil {
		t.Fatalf("loadPortfolio: %v", err)
	}
	if len(p.Certifications) != 1 || p.Certifications[0] != "CKA" {
		t.Fatalf("certifications = %v", p.Certifications)
	}
	if len(p.Projects) == 0 {
		t.Fatalf("untouched sections should keep defaults")
	}
}
