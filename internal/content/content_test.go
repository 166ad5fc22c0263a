package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsComplete(t *testing.T) {
	p := Default()
	if len(p.About) != 3 {
		t.Fatalf("About paragraphs = %d, want 3", len(p.About))
	}
	if len(p.Projects) != 5 {
		t.Fatalf("Projects = %d, want 5", len(p.Projects))
	}
	if len(p.Skills) != 4 {
		t.Fatalf("Skills categories = %d, want 4", len(p.Skills))
	}
	if len(p.Contact) != 3 || len(p.Certifications) != 3 {
		t.Fatalf("contact/certifications incomplete: %d/%d", len(p.Contact), len(p.Certifications))
	}
	if p.Badge.Name == "" {
		t.Fatalf("badge name missing")
	}
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Projects[0].Title = "changed"
	if Default().Projects[0].Title == "changed" {
		t.Fatalf("Default must not share state between calls")
	}
}

func TestLoadOverlaysSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.toml")
	if err := os.WriteFile(path, []byte(`
certifications = ["Certified Gopher"]

[badge]
name = "Ada"

[[projects]]
title = "termfolio"
description = "A terminal portfolio."
tech = "Go, Bubble Tea"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Projects) != 1 || p.Projects[0].Title != "termfolio" {
		t.Fatalf("projects not replaced: %+v", p.Projects)
	}
	if len(p.Certifications) != 1 || p.Certifications[0] != "Certified Gopher" {
		t.Fatalf("certifications not replaced: %+v", p.Certifications)
	}
	if len(p.About) != 3 {
		t.Fatalf("about should keep defaults, got %d", len(p.About))
	}
	if p.Badge.Name != "Ada" || p.Badge.Role != Default().Badge.Role {
		t.Fatalf("badge merge wrong: %+v", p.Badge)
	}
}

func TestLoadEmptyPathAndErrors(t *testing.T) {
	p, err := Load("")
	if err != nil || p == nil {
		t.Fatalf("Load(\"\") = %v, %v", p, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
