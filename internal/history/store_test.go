package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStoreAppendAndLoadTexts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "history.jsonl")
	s := New(path, "sess-1")
	s.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	if got, err := s.LoadTexts(); err != nil || len(got) != 0 {
		t.Fatalf("LoadTexts on missing file: got=%v err=%v", got, err)
	}
	if err := s.Append("   "); err != nil {
		t.Fatalf("Append whitespace: %v", err)
	}
	for _, text := range []string{"help", " about "} {
		if err := s.Append(text); err != nil {
			t.Fatalf("Append %q: %v", text, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	var e Entry
	if err := json.Unmarshal([]byte(lines[1]), &e); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if e.Text != "about" || e.Session != "sess-1" || !e.TS.Equal(s.now()) {
		t.Fatalf("entry = %+v", e)
	}

	got, err := s.LoadTexts()
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if len(got) != 2 || got[0] != "help" || got[1] != "about" {
		t.Fatalf("LoadTexts = %#v", got)
	}
}

func TestLoadSkipsGarbageAndLimits(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join([]string{
		`{"text":"one","ts":"2025-01-01T00:00:00Z"}`,
		`{not json}`,
		`{"text":"   ","ts":"2025-01-01T00:00:00Z"}`,
		`{"text":"two","ts":"2025-01-01T00:00:00Z"}`,
		`{"text":"three","ts":"2025-01-01T00:00:00Z"}`,
		"",
	}, "\n")), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := &Store{Path: path, Limit: 2}
	got, err := s.LoadTexts()
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if len(got) != 2 || got[0] != "two" || got[1] != "three" {
		t.Fatalf("LoadTexts = %#v", got)
	}
}

func TestStoreAppendErrors(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Append("hi"); !errors.Is(err, ErrNilStore) {
		t.Fatalf("expected ErrNilStore, got %v", err)
	}
	if _, err := s.LoadTexts(); !errors.Is(err, ErrNilStore) {
		t.Fatalf("expected ErrNilStore, got %v", err)
	}

	s = &Store{}
	if err := s.Append("hi"); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestBrowserPrevNext(t *testing.T) {
	b := NewBrowser([]string{"help", "about"})

	if got, ok := b.Prev("draft"); !ok || got != "about" {
		t.Fatalf("Prev = %q, %v", got, ok)
	}
	if !b.Browsing() {
		t.Fatalf("expected browsing")
	}
	if got, _ := b.Prev("ignored"); got != "help" {
		t.Fatalf("Prev = %q", got)
	}
	if got, _ := b.Prev("ignored"); got != "help" {
		t.Fatalf("Prev at oldest = %q", got)
	}
	if got, _ := b.Next(); got != "about" {
		t.Fatalf("Next = %q", got)
	}
	if got, ok := b.Next(); !ok || got != "draft" {
		t.Fatalf("Next past newest should restore draft, got %q", got)
	}
	if _, ok := b.Next(); ok {
		t.Fatalf("Next when not browsing should report false")
	}
}

func TestBrowserAddDedupesConsecutive(t *testing.T) {
	b := NewBrowser(nil)
	if _, ok := b.Prev(""); ok {
		t.Fatalf("Prev on empty history should report false")
	}
	b.Add("help")
	b.Add(" help ")
	b.Add("")
	b.Add("skills")
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	b.Prev("")
	b.Add("about")
	if b.Browsing() {
		t.Fatalf("Add should reset browsing")
	}
}

func TestLoadTextsCollapsesRepeats(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "history.jsonl"), "s")
	for _, text := range []string{"help", "help", "about", "help"} {
		if err := s.Append(text); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	got, err := s.LoadTexts()
	if err != nil {
		t.Fatalf("LoadTexts: %v", err)
	}
	if strings.Join(got, ",") != "help,about,help" {
		t.Fatalf("LoadTexts = %#v", got)
	}
}

func TestCompactKeepsNewest(t *testing.T) {
	t.Parallel()

	s := &Store{Path: filepath.Join(t.TempDir(), "history.jsonl"), Limit: 2}
	for _, text := range []string{"a", "b", "c", "d"} {
		if err := s.Append(text); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if n, err := s.Compact(); err != nil || n != 0 {
		t.Fatalf("Compact under threshold: n=%d err=%v", n, err)
	}
	if err := s.Append("e"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	n, err := s.Compact()
	if err != nil || n != 3 {
		t.Fatalf("Compact: n=%d err=%v", n, err)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 2 {
		t.Fatalf("lines after compact = %d", len(lines))
	}
	got, _ := s.LoadTexts()
	if strings.Join(got, ",") != "d,e" {
		t.Fatalf("LoadTexts after compact = %#v", got)
	}

	missing := &Store{Path: filepath.Join(t.TempDir(), "none.jsonl")}
	if n, err := missing.Compact(); err != nil || n != 0 {
		t.Fatalf("Compact missing file: n=%d err=%v", n, err)
	}
}
