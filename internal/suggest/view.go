package suggest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	nameStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	descStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EBCB8B"))
	selectedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#1f2937"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true)
)

// View 渲染弹窗内容（不含外围边框）。
func (s *State) View(width int) string {
	if !s.Open() {
		return ""
	}
	contentWidth := width
	if contentWidth <= 24 {
		contentWidth = 24
	}
	nameWidth := 0
	for _, m := range s.matches {
		if w := runewidth.StringWidth(m.entry.Name); w > nameWidth {
			nameWidth = w
		}
	}
	descWidth := contentWidth - nameWidth - 2
	if descWidth < 8 {
		descWidth = 8
	}

	start, end := window(len(s.matches), s.selected, s.maxLines)
	lines := make([]string, 0, end-start+1)
	for idx := start; idx < end; idx++ {
		m := s.matches[idx]
		name := applyHighlights(m.entry.Name, m.highlights)
		pad := strings.Repeat(" ", nameWidth-runewidth.StringWidth(m.entry.Name))
		desc := runewidth.Truncate(m.entry.Description, descWidth, "…")
		line := fmt.Sprintf("%s%s  %s", name, pad, descStyle.Render(desc))
		if idx == s.selected {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, hintStyle.Render("tab to complete · esc to close"))
	return lipgloss.NewStyle().Width(contentWidth).Render(strings.Join(lines, "\n"))
}

// window 返回包含选中项的可见区间。
func window(total, selected, maxLines int) (int, int) {
	if maxLines <= 0 || total <= maxLines {
		return 0, total
	}
	start := selected - maxLines + 1
	if start < 0 {
		start = 0
	}
	return start, start + maxLines
}

func applyHighlights(name string, indexes []int) string {
	if len(indexes) == 0 {
		return nameStyle.Render(name)
	}
	marked := map[int]bool{}
	for _, idx := range indexes {
		marked[idx] = true
	}
	var b strings.Builder
	for i, r := range []rune(name) {
		ch := string(r)
		if marked[i] {
			b.WriteString(highlightStyle.Render(ch))
			continue
		}
		b.WriteString(nameStyle.Render(ch))
	}
	return b.String()
}
