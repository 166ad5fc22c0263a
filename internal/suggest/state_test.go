package suggest

import (
	"strings"
	"testing"
)

func TestSyncInputOpensOnSingleWord(t *testing.T) {
	s := NewState(Options{})
	s.SyncInput("")
	if s.Open() {
		t.Fatalf("empty input should not open the popup")
	}
	s.SyncInput("pro")
	if !s.Open() {
		t.Fatalf("expected popup for %q", "pro")
	}
	if got, _ := s.Selected(); got.Name != "projects" {
		t.Fatalf("selected = %q, want projects", got.Name)
	}
	s.SyncInput("pro jects")
	if s.Open() {
		t.Fatalf("input with spaces should close the popup")
	}
	s.SyncInput("zzz")
	if s.Open() {
		t.Fatalf("no matches should keep the popup closed")
	}
}

func TestExactMatchClosesPopup(t *testing.T) {
	s := NewState(Options{})
	s.SyncInput("help")
	if s.Open() {
		t.Fatalf("a fully typed command should not show suggestions")
	}
}

func TestPrefixMatchesRankFirst(t *testing.T) {
	s := NewState(Options{})
	s.SyncInput("c")
	got := s.Matches()
	if len(got) < 3 {
		t.Fatalf("matches = %v", got)
	}
	for _, name := range got[:3] {
		if !strings.HasPrefix(name, "c") {
			t.Fatalf("prefix matches should rank first: %v", got)
		}
	}
}

func TestTabCompletesAndCycles(t *testing.T) {
	s := NewState(Options{})
	s.SyncInput("c")
	first := s.Matches()

	act, ok := s.HandleKey("tab")
	if !ok || act.Kind != ActionInsert || act.NewValue != first[0] {
		t.Fatalf("first tab = %+v, %v", act, ok)
	}
	s.SyncInput(act.NewValue)
	if !s.Open() {
		t.Fatalf("popup should stay open while cycling")
	}
	act, _ = s.HandleKey("tab")
	if act.NewValue != first[1] {
		t.Fatalf("second tab = %q, want %q", act.NewValue, first[1])
	}
	s.SyncInput(act.NewValue)
	act, _ = s.HandleKey("shift+tab")
	if act.NewValue != first[0] {
		t.Fatalf("shift+tab = %q, want %q", act.NewValue, first[0])
	}

	s.SyncInput(act.NewValue + "x")
	if s.Open() {
		t.Fatalf("editing after completion should refilter")
	}
}

func TestNavigationAndEsc(t *testing.T) {
	s := NewState(Options{})
	s.SyncInput("s")
	n := len(s.Matches())
	if _, ok := s.HandleKey("up"); !ok {
		t.Fatalf("up should be consumed while open")
	}
	if got, _ := s.Selected(); got.Name != s.Matches()[n-1] {
		t.Fatalf("up should wrap to the last match")
	}
	if _, ok := s.HandleKey("enter"); ok {
		t.Fatalf("enter must pass through to submission")
	}
	if act, ok := s.HandleKey("esc"); !ok || act.Kind != ActionClose || s.Open() {
		t.Fatalf("esc = %+v, %v", act, ok)
	}
	if _, ok := s.HandleKey("down"); ok {
		t.Fatalf("closed popup must not consume keys")
	}
}

func TestView(t *testing.T) {
	s := NewState(Options{})
	if s.View(40) != "" {
		t.Fatalf("closed popup should render nothing")
	}
	s.SyncInput("cer")
	out := s.View(60)
	if !strings.Contains(out, "View my certifications.") {
		t.Fatalf("view missing description:\n%s", out)
	}
	if !strings.Contains(out, "tab to complete") {
		t.Fatalf("view missing hint:\n%s", out)
	}
}

func TestWindow(t *testing.T) {
	if s, e := window(10, 0, 3); s != 0 || e != 3 {
		t.Fatalf("window = %d,%d", s, e)
	}
	if s, e := window(10, 5, 3); s != 3 || e != 6 {
		t.Fatalf("window = %d,%d", s, e)
	}
	if s, e := window(2, 1, 3); s != 0 || e != 2 {
		t.Fatalf("window = %d,%d", s, e)
	}
}
