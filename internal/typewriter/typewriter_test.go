package typewriter

import (
	"strings"
	"testing"
	"time"
)

func TestNextUnit(t *testing.T) {
	cases := []struct {
		text string
		i    int
		want int
	}{
		{"abc", 0, 1},
		{"<p>hi</p>", 0, 3},
		{"<p>hi</p>", 3, 4},
		{"<p>hi</p>", 5, 9},
		{"a < b", 2, 3},
		{"x <oops", 2, 3},
		{"✓ ok", 0, len("✓")},
		{"A &amp; B", 2, 7},
		{"&#39;x", 0, 5},
		{"& B", 0, 1},
		{"&notanentitybecauseitistoolong;", 0, 1},
		{"abc", 3, 3},
	}
	for _, tc := range cases {
		if got := NextUnit(tc.text, tc.i); got != tc.want {
			t.Fatalf("NextUnit(%q, %d) = %d, want %d", tc.text, tc.i, got, tc.want)
		}
	}
}

func TestUnitsRoundTrip(t *testing.T) {
	text := `<h3><span class="text-green-400">✓</span> Projects:</h3><ul><li>a &amp; b</li></ul>`
	units := Units(text)
	if strings.Join(units, "") != text {
		t.Fatalf("units do not reassemble the input")
	}
	if units[0] != "<h3>" || units[1] != `<span class="text-green-400">` {
		t.Fatalf("tags not kept whole: %q", units[:2])
	}
}

func TestRevealNeverEndsMidTag(t *testing.T) {
	text := `<p class="x">Type <span class="text-green-400">'help'</span> now.</p><a href="mailto:a@b">a@b</a>`
	w := New(text, 10*time.Millisecond)
	var revealed strings.Builder
	steps := 0
	for {
		unit, ok := w.Step()
		if !ok {
			break
		}
		steps++
		revealed.WriteString(unit)
		prefix := revealed.String()
		if !strings.HasPrefix(text, prefix) {
			t.Fatalf("revealed text is not a prefix: %q", prefix)
		}
		if strings.LastIndexByte(prefix, '<') > strings.LastIndexByte(prefix, '>') {
			t.Fatalf("prefix ends inside a tag: %q", prefix)
		}
		if w.Revealed() != prefix {
			t.Fatalf("Revealed() = %q, want %q", w.Revealed(), prefix)
		}
	}
	if revealed.String() != text {
		t.Fatalf("final reveal mismatch")
	}
	if steps != len(Units(text)) {
		t.Fatalf("steps = %d, units = %d", steps, len(Units(text)))
	}
	if !w.Done() {
		t.Fatalf("typewriter should be done after the extra step")
	}
}

func TestDoneIsReportedOneStepLate(t *testing.T) {
	w := New("ab", 5*time.Millisecond)
	if w.Delay() != 5*time.Millisecond {
		t.Fatalf("Delay = %v", w.Delay())
	}
	w.Step()
	w.Step()
	if w.Done() {
		t.Fatalf("done before the completion tick")
	}
	if _, ok := w.Step(); ok || !w.Done() {
		t.Fatalf("third step should complete the typewriter")
	}
	if _, ok := w.Step(); ok {
		t.Fatalf("step after done must not reveal anything")
	}
}

func TestEmptyText(t *testing.T) {
	w := New("", time.Millisecond)
	if _, ok := w.Step(); ok || !w.Done() {
		t.Fatalf("empty text should complete on the first step")
	}
}
