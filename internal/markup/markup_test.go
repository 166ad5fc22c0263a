package markup

import (
	"slices"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"termfolio/internal/command"
	"termfolio/internal/content"
)

func TestPlainTextEcho(t *testing.T) {
	got := PlainText(command.Echo("me@box:~$ ", "help"))
	if got != "me@box:~$ help" {
		t.Fatalf("PlainText(echo) = %q", got)
	}
}

func TestPlainTextHelpTableAligns(t *testing.T) {
	out := PlainText(command.Output(command.Parse("help"), nil))
	lines := strings.Split(out, "\n")
	if lines[0] != "Available commands:" {
		t.Fatalf("heading = %q", lines[0])
	}
	col := -1
	for _, l := range lines[1:] {
		idx := strings.Index(l, "- ")
		if col < 0 {
			col = idx
		}
		if idx != col {
			t.Fatalf("description column not aligned: %q", lines)
		}
	}
	if !strings.HasPrefix(lines[len(lines)-1], "clear") {
		t.Fatalf("last row = %q", lines[len(lines)-1])
	}
	if col != len("certifications")+columnGap {
		t.Fatalf("column = %d", col)
	}
}

func TestPlainTextProjects(t *testing.T) {
	p := content.Default()
	p.Projects = p.Projects[:2]
	out := PlainText(command.Output(command.Parse("projects"), p))
	want := []string{
		"✓ Projects:",
		"1. Coaching Companion Bot",
		"  Telegram bot using multi-agent architecture to provide personalized coaching and guidance.",
		"  Technologies: Telegram API, Multi-Agent, Python, AI",
		"",
		"2. Financial PDF Reader",
		"  React application that reads financial PDFs, converts them to Excel, and provides AI-based analytics.",
		"  Technologies: React, PDF.js, AI, Excel Export",
	}
	if got := strings.Split(out, "\n"); !slices.Equal(got, want) {
		t.Fatalf("projects =\n%q\nwant\n%q", got, want)
	}
}

func TestPlainTextUnescapes(t *testing.T) {
	got := PlainText(command.NotFound("<x>"))
	if got != "bash: <x>: command not found" {
		t.Fatalf("PlainText = %q", got)
	}
}

func TestParsePartialMarkup(t *testing.T) {
	full := command.Output(command.Parse("contact"), nil)
	cut := strings.Index(full, "LinkedIn")
	lines := Parse(full[:cut])
	if len(lines) != 3 {
		t.Fatalf("partial lines = %d: %q", len(lines), LinesToPlain(lines))
	}
	if lines[len(lines)-1].Text() != "🔗" {
		t.Fatalf("partial last line = %q", lines[len(lines)-1].Text())
	}
}

func TestLinksCarryHref(t *testing.T) {
	lines := Parse(`<p>Mail: <a href="mailto:a@b.c" class="terminal-link">a@b.c</a></p>`)
	if len(lines) != 1 {
		t.Fatalf("lines = %d", len(lines))
	}
	last := lines[0].Spans[len(lines[0].Spans)-1]
	if last.Link != "mailto:a@b.c" || last.Text != "a@b.c" {
		t.Fatalf("link span = %+v", last)
	}
	plain := LinesToStrings(lines, false)[0]
	linked := LinesToStrings(lines, true)[0]
	if !strings.Contains(linked, "\x1b]8;;mailto:a@b.c") || strings.Contains(plain, "\x1b]8;;") {
		t.Fatalf("hyperlink escape handling wrong: plain=%q linked=%q", plain, linked)
	}
}

func TestWrapRespectsWidthAndIndent(t *testing.T) {
	src := `<p class="pl-4">React application that reads financial PDFs, converts them to Excel, and provides AI-based analytics.</p>`
	lines := Wrap(Parse(src), 30)
	if len(lines) < 3 {
		t.Fatalf("expected wrapping, got %d lines", len(lines))
	}
	for _, l := range LinesToPlain(lines) {
		if runewidth.StringWidth(l) > 30 {
			t.Fatalf("line too wide: %q", l)
		}
		if !strings.HasPrefix(l, "  ") {
			t.Fatalf("indent lost: %q", l)
		}
	}
	joined := []string{}
	for _, l := range lines {
		joined = append(joined, l.Text())
	}
	if strings.Join(joined, " ") != PlainText(src)[2:] {
		t.Fatalf("wrapping lost words: %q", joined)
	}
}

func TestWrapLongWordAndWideRunes(t *testing.T) {
	lines := Wrap(Parse("<p>你好世界 abcdefghij</p>"), 4)
	got := LinesToPlain(lines)
	want := []string{"你好", "世界", "abcd", "efgh", "ij"}
	if !slices.Equal(got, want) {
		t.Fatalf("wrap = %q, want %q", got, want)
	}
}

func TestWrapKeepsStyleBoundaries(t *testing.T) {
	src := `<p>Type <span class="text-green-400">'help'</span> to see a list of available commands.</p>`
	lines := Wrap(Parse(src), 12)
	found := false
	for _, l := range lines {
		for _, sp := range l.Spans {
			if sp.Text == "'help'" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("styled span merged or split: %+v", lines)
	}
}

func TestRenderStringNoWidth(t *testing.T) {
	out := RenderString("<p>a</p><p>b</p>", Options{})
	if PlainText("<p>a</p><p>b</p>") != "a\nb" || strings.Count(out, "\n") != 1 {
		t.Fatalf("RenderString = %q", out)
	}
}
