// Package typewriter reveals a markup string one unit at a time.
//
// A unit is a single rune, or a whole tag when the rune is '<' and a closing
// '>' follows. Character references such as "&amp;" are also kept whole so a
// partially revealed entry never shows half an escape.
package typewriter

import (
	"strings"
	"time"
	"unicode/utf8"
)

// maxEntityLen bounds the search for the ';' ending a character reference.
const maxEntityLen = 10

// NextUnit returns the end offset of the unit starting at byte offset i.
// It returns i when i is at or past the end of text.
func NextUnit(text string, i int) int {
	if i >= len(text) {
		return len(text)
	}
	switch text[i] {
	case '<':
		if j := strings.IndexByte(text[i+1:], '>'); j >= 0 {
			return i + 1 + j + 1
		}
	case '&':
		if end, ok := entityEnd(text, i); ok {
			return end
		}
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return i + size
}

func entityEnd(text string, i int) (int, bool) {
	limit := i + maxEntityLen
	if limit > len(text) {
		limit = len(text)
	}
	for j := i + 1; j < limit; j++ {
		c := text[j]
		switch {
		case c == ';':
			return j + 1, j > i+1
		case c == '#' && j == i+1:
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return 0, false
		}
	}
	return 0, false
}

// Units splits text into the sequence of units Step would reveal.
func Units(text string) []string {
	var out []string
	for i := 0; i < len(text); {
		end := NextUnit(text, i)
		out = append(out, text[i:end])
		i = end
	}
	return out
}

// Typewriter walks one string. It has no cancellation: once started it runs
// until every unit has been handed out.
type Typewriter struct {
	text  string
	pos   int
	delay time.Duration
	done  bool
}

// New prepares a typewriter for text, revealing one unit every delay.
func New(text string, delay time.Duration) *Typewriter {
	return &Typewriter{text: text, delay: delay}
}

// Step hands out the next unit. When nothing is left it marks the typewriter
// done and returns false, so completion is observed one tick after the last
// unit.
func (w *Typewriter) Step() (string, bool) {
	if w.done {
		return "", false
	}
	if w.pos >= len(w.text) {
		w.done = true
		return "", false
	}
	end := NextUnit(w.text, w.pos)
	unit := w.text[w.pos:end]
	w.pos = end
	return unit, true
}

// Done reports whether the typewriter has finished.
func (w *Typewriter) Done() bool { return w.done }

// Delay is the pause between units.
func (w *Typewriter) Delay() time.Duration { return w.delay }

// Revealed returns the prefix handed out so far.
func (w *Typewriter) Revealed() string { return w.text[:w.pos] }

// Text returns the full string.
func (w *Typewriter) Text() string { return w.text }
