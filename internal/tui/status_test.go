package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"termfolio/internal/markup"
)

func TestFmtElapsed(t *testing.T) {
	cases := []struct {
		d        time.Duration
		expected string
	}{
		{d: 0, expected: "(0ms)"},
		{d: 420 * time.Millisecond, expected: "(420ms)"},
		{d: 1500 * time.Millisecond, expected: "(1.5s)"},
		{d: 61 * time.Second, expected: "(1m 01s)"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if got := fmtElapsed(tc.d); got != tc.expected {
				t.Fatalf("fmtElapsed(%v) = %q, want %q", tc.d, got, tc.expected)
			}
		})
	}
}

func TestStatusIndicatorStates(t *testing.T) {
	base := time.Unix(0, 0)
	now := base
	s := newStatusIndicator(func() time.Time { return now })

	if !strings.Contains(s.Render(200, "*"), "enter run") {
		t.Fatalf("idle status should show hints")
	}

	s.Start("projects")
	now = base.Add(250 * time.Millisecond)
	if s.Elapsed() != 250*time.Millisecond {
		t.Fatalf("elapsed = %v", s.Elapsed())
	}
	out := s.Render(80, "*")
	if !strings.Contains(out, "projects") || !strings.Contains(out, "(250ms)") {
		t.Fatalf("running status = %q", out)
	}

	s.Notice("copied")
	if s.state != statusRunning {
		t.Fatalf("notice must not replace a running status")
	}

	s.Stop()
	s.Notice("copied")
	if !strings.Contains(s.Render(80, "*"), "copied") {
		t.Fatalf("notice not rendered")
	}
	s.ClearNotice()
	if s.state != statusIdle || s.Elapsed() != 0 {
		t.Fatalf("state after clear = %v", s.state)
	}
}

func TestClampSpansTruncatesToWidth(t *testing.T) {
	spans := []markup.Span{
		{Text: "你好", Style: lipgloss.NewStyle()},
		{Text: "world", Style: lipgloss.NewStyle()},
	}
	out := clampSpans(spans, 6)
	total := 0
	for _, sp := range out {
		total += runewidth.StringWidth(sp.Text)
	}
	if total != 6 {
		t.Fatalf("clamped width = %d, want 6 (%+v)", total, out)
	}
	if clampSpans(spans, 0) != nil {
		t.Fatalf("zero width should clamp to nothing")
	}
}
