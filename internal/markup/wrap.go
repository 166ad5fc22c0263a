package markup

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type piece struct {
	span  int
	text  string
	space bool
}

// wrapped 是正在填充的输出行；src 记录每个 Span 来自原始行的哪个 Span，用于合并相邻片段。
type wrapped struct {
	line Line
	src  []int
	used int
}

func (w *wrapped) add(orig []Span, idx int, text string) {
	n := len(w.line.Spans)
	if n > 0 && w.src[n-1] == idx {
		w.line.Spans[n-1].Text += text
	} else {
		sp := orig[idx]
		sp.Text = text
		w.line.Spans = append(w.line.Spans, sp)
		w.src = append(w.src, idx)
	}
	w.used += runewidth.StringWidth(text)
}

// Wrap 使用词级别换行，保留每段文本的样式。width <= 0 时不折行。
func Wrap(lines []Line, width int) []Line {
	if width <= 0 {
		return lines
	}
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, wrapLine(l, width)...)
	}
	return out
}

func wrapLine(line Line, width int) []Line {
	if line.Indent+spansWidth(line.Spans) <= width {
		return []Line{line}
	}

	out := []Line{}
	cur := &wrapped{line: Line{Indent: line.Indent}}
	avail := width - line.Indent
	if avail < 1 {
		cur.line.Indent = 0
		avail = width
	}
	pendingSpace := -1

	next := func() {
		out = append(out, cur.line)
		indent := line.Indent + line.Hang
		avail = width - indent
		if avail < 1 {
			indent = 0
			avail = width
		}
		cur = &wrapped{line: Line{Indent: indent}}
		pendingSpace = -1
	}

	for _, p := range splitPieces(line.Spans) {
		if p.space {
			if cur.used > 0 {
				pendingSpace = p.span
			}
			continue
		}
		w := runewidth.StringWidth(p.text)
		gap := 0
		if pendingSpace >= 0 {
			gap = 1
		}
		if cur.used > 0 && cur.used+gap+w > avail {
			next()
			gap = 0
		}
		if gap > 0 {
			cur.add(line.Spans, pendingSpace, " ")
		}
		pendingSpace = -1
		if cur.used+w <= avail {
			cur.add(line.Spans, p.span, p.text)
			continue
		}
		for _, chunk := range breakLongWord(p.text, avail-cur.used, avail) {
			if cur.used > 0 && cur.used+runewidth.StringWidth(chunk) > avail {
				next()
			}
			cur.add(line.Spans, p.span, chunk)
		}
	}
	if len(cur.line.Spans) > 0 {
		out = append(out, cur.line)
	}
	return out
}

func splitPieces(spans []Span) []piece {
	var out []piece
	for i, sp := range spans {
		for j, word := range strings.Split(sp.Text, " ") {
			if j > 0 {
				out = append(out, piece{span: i, space: true})
			}
			if word != "" {
				out = append(out, piece{span: i, text: word})
			}
		}
	}
	return out
}

// breakLongWord 按显示宽度切分超长单词；first 是首段可用宽度。
func breakLongWord(word string, first, width int) []string {
	if width <= 0 {
		return []string{word}
	}
	limit := first
	if limit <= 0 {
		limit = width
	}
	out := []string{}
	var b strings.Builder
	w := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if w > 0 && w+rw > limit {
			out = append(out, b.String())
			b.Reset()
			w = 0
			limit = width
		}
		b.WriteRune(r)
		w += rw
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
