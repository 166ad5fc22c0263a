package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
)

// columnGap 是表格列之间的空格数。
const columnGap = 2

type frame struct {
	tag    string
	style  lipgloss.Style
	link   string
	indent int
	margin int
}

type cell struct {
	spans []Span
}

type table struct {
	rows   [][]cell
	row    []cell
	inRow  bool
	inCell bool
}

type builder struct {
	lines []Line
	cur   Line
	stack []frame
	table *table
}

// Parse 把 markup 解析成未折行的样式行。未闭合的标签（逐字显示过程中的中间状态）按已打开处理。
func Parse(src string) []Line {
	b := &builder{}
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			b.finish()
			return b.lines
		case html.TextToken:
			b.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			class, href := "", ""
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "class":
					class = string(val)
				case "href":
					href = string(val)
				}
			}
			b.start(tag, class, href)
		case html.EndTagToken:
			name, _ := z.TagName()
			b.end(string(name))
		}
	}
}

func (b *builder) top() frame {
	if len(b.stack) == 0 {
		return frame{style: lipgloss.NewStyle()}
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) indent() int {
	n := 0
	for _, f := range b.stack {
		n += f.indent
	}
	return n
}

func (b *builder) push(tag, class, href string) {
	parent := b.top()
	own, indent, margin := classStyle(class)
	style := own.Inherit(tagStyle(tag)).Inherit(parent.style)
	link := parent.link
	if tag == "a" {
		link = href
	}
	b.stack = append(b.stack, frame{tag: tag, style: style, link: link, indent: indent, margin: margin})
}

func (b *builder) start(tag, class, href string) {
	switch tag {
	case "br":
		b.breakLine()
		return
	case "hr", "img":
		return
	case "table":
		b.flush()
		b.table = &table{}
	case "tr":
		if b.table != nil {
			b.table.endRow()
			b.table.inRow = true
		}
	case "td", "th":
		if b.table != nil {
			if !b.table.inRow {
				b.table.inRow = true
			}
			b.table.row = append(b.table.row, cell{})
			b.table.inCell = true
		}
	default:
		if isBlock(tag) {
			b.flush()
		}
	}
	b.push(tag, class, href)
}

func (b *builder) end(tag string) {
	idx := -1
	for i := len(b.stack) - 1; i >= 0; i-- {
		if b.stack[i].tag == tag {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	closed := b.stack[idx]
	b.stack = b.stack[:idx]

	switch tag {
	case "td", "th":
		if b.table != nil {
			b.table.inCell = false
		}
	case "tr":
		if b.table != nil {
			b.table.endRow()
		}
	case "table":
		b.emitTable()
	default:
		if isBlock(tag) {
			b.flush()
			if closed.margin > 0 {
				b.blankLine()
			}
		}
	}
}

func (b *builder) text(raw string) {
	s := collapseSpace(raw)
	if s == "" {
		return
	}
	f := b.top()
	if b.table != nil {
		if !b.table.inCell || len(b.table.row) == 0 {
			return
		}
		c := &b.table.row[len(b.table.row)-1]
		c.spans = appendText(c.spans, s, f)
		return
	}
	if len(b.cur.Spans) == 0 {
		b.cur.Indent = b.indent()
	}
	b.cur.Spans = appendText(b.cur.Spans, s, f)
}

func appendText(spans []Span, s string, f frame) []Span {
	if len(spans) == 0 || strings.HasSuffix(spans[len(spans)-1].Text, " ") {
		s = strings.TrimLeft(s, " ")
	}
	if s == "" {
		return spans
	}
	return append(spans, Span{Text: s, Style: f.style, Link: f.link})
}

func (b *builder) flush() {
	if len(b.cur.Spans) == 0 {
		b.cur = Line{}
		return
	}
	b.cur.Spans = trimTrailing(b.cur.Spans)
	if len(b.cur.Spans) > 0 {
		b.lines = append(b.lines, b.cur)
	}
	b.cur = Line{}
}

func (b *builder) breakLine() {
	if len(b.cur.Spans) == 0 {
		b.lines = append(b.lines, Line{})
		return
	}
	b.flush()
}

func (b *builder) blankLine() {
	if len(b.lines) == 0 || b.lines[len(b.lines)-1].IsBlank() {
		return
	}
	b.lines = append(b.lines, Line{})
}

func (t *table) endRow() {
	if t.row != nil {
		t.rows = append(t.rows, t.row)
	}
	t.row = nil
	t.inRow = false
	t.inCell = false
}

func (b *builder) emitTable() {
	t := b.table
	b.table = nil
	if t == nil {
		return
	}
	t.endRow()

	widths := []int{}
	for _, row := range t.rows {
		for i := range row {
			row[i].spans = trimTrailing(row[i].spans)
			if i == len(row)-1 {
				continue
			}
			w := spansWidth(row[i].spans)
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}

	indent := b.indent()
	for _, row := range t.rows {
		line := Line{Indent: indent}
		hang := 0
		for i, c := range row {
			line.Spans = append(line.Spans, c.spans...)
			if i == len(row)-1 {
				break
			}
			pad := widths[i] - spansWidth(c.spans) + columnGap
			line.Spans = append(line.Spans, Span{Text: strings.Repeat(" ", pad), Style: lipgloss.NewStyle()})
			hang += widths[i] + columnGap
		}
		line.Hang = hang
		if len(line.Spans) > 0 {
			b.lines = append(b.lines, line)
		}
	}
}

func (b *builder) finish() {
	if b.table != nil {
		b.emitTable()
	}
	b.flush()
	for len(b.lines) > 0 && b.lines[len(b.lines)-1].IsBlank() {
		b.lines = b.lines[:len(b.lines)-1]
	}
}

func trimTrailing(spans []Span) []Span {
	for len(spans) > 0 {
		last := &spans[len(spans)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		spans = spans[:len(spans)-1]
	}
	return spans
}

func spansWidth(spans []Span) int {
	w := 0
	for _, sp := range spans {
		w += runewidth.StringWidth(sp.Text)
	}
	return w
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}
