// Package markup 把命令输出里的简单 HTML 片段转换成终端里带样式的行。
package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Span 表示一段文本及其样式；Link 非空时为超链接。
type Span struct {
	Text  string
	Style lipgloss.Style
	Link  string
}

// Line 由多个 Span 组成。Indent 是首行缩进，Hang 是折行后续行的缩进。
type Line struct {
	Spans  []Span
	Indent int
	Hang   int
}

// Text 返回行的纯文本（不含缩进）。
func (l Line) Text() string {
	var b strings.Builder
	for _, sp := range l.Spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// IsBlank 判断行是否为空或仅包含空格。
func (l Line) IsBlank() bool {
	return strings.TrimSpace(l.Text()) == ""
}

// LinesToStrings 将样式化的行转换为字符串列表。hyperlinks 为真时链接输出 OSC 8 序列。
func LinesToStrings(lines []Line, hyperlinks bool) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", line.Indent))
		for _, sp := range line.Spans {
			text := sp.Style.Render(sp.Text)
			if hyperlinks && sp.Link != "" {
				text = termenv.Hyperlink(sp.Link, text)
			}
			b.WriteString(text)
		}
		out = append(out, b.String())
	}
	return out
}

// LinesToPlain 返回不带样式的文本行。
func LinesToPlain(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.Repeat(" ", line.Indent)+line.Text())
	}
	return out
}
