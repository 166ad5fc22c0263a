package markup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette 把输出里用到的 class 映射到终端颜色。
var (
	colorGreen    = lipgloss.Color("#4ade80")
	colorRed      = lipgloss.Color("#ef4444")
	colorGray300  = lipgloss.Color("#d1d5db")
	colorGray400  = lipgloss.Color("#9ca3af")
	colorLink     = lipgloss.Color("#60a5fa")
	headingStyle  = lipgloss.NewStyle().Bold(true)
	subheadStyle  = lipgloss.NewStyle().Bold(true)
	linkBaseStyle = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
)

// classStyle 返回 class 列表对应的样式，以及缩进和下边距（行数）。
func classStyle(class string) (lipgloss.Style, int, int) {
	style := lipgloss.NewStyle()
	indent, margin := 0, 0
	for _, c := range strings.Fields(class) {
		switch c {
		case "text-green-400":
			style = style.Foreground(colorGreen)
		case "text-red-500":
			style = style.Foreground(colorRed)
		case "text-gray-300":
			style = style.Foreground(colorGray300)
		case "text-gray-400":
			style = style.Foreground(colorGray400)
		case "font-bold":
			style = style.Bold(true)
		case "underline":
			style = style.Underline(true)
		case "terminal-link":
			style = style.Inherit(linkBaseStyle)
		case "pl-4":
			indent = 2
		case "mb-2", "mb-4":
			margin = 1
		}
	}
	return style, indent, margin
}

// tagStyle 返回标签自带的样式。
func tagStyle(tag string) lipgloss.Style {
	switch tag {
	case "h1", "h2", "h3":
		return headingStyle
	case "h4":
		return subheadStyle
	case "b", "strong":
		return lipgloss.NewStyle().Bold(true)
	case "i", "em":
		return lipgloss.NewStyle().Italic(true)
	case "a":
		return linkBaseStyle
	}
	return lipgloss.NewStyle()
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "table", "pre":
		return true
	}
	return false
}
