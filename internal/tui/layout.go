package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"termfolio/internal/card"
	"termfolio/internal/command"
)

const (
	headerHeight = 2 // 标题行 + 分隔线
	footerHeight = 2 // 输入行 + 状态行
	minMainRows  = 3

	// cardPaneCols 是右侧卡片区宽度（含左边框）。
	cardPaneCols = card.FaceCols + 6
	// minCardTotalCols 是显示卡片区所需的最小终端宽度。
	minCardTotalCols = 84
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	headerCmdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db"))
	headerBusyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	clockStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	ruleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))
	promptStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	paneBorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151"))
	suggestBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#374151")).Padding(0, 1)
	headerSeparator  = "  "
	headerTitleSpace = 3
)

// headerZone 是标题行中一个可点击命令的列区间 [start, end)。
type headerZone struct {
	name  string
	start int
	end   int
}

// layout 记录各区域在终端中的位置，供渲染和鼠标命中测试共用。
type layout struct {
	width, height int
	mainTop       int
	mainRows      int
	transcriptW   int
	cardVisible   bool
	cardLeft      int
	cardCols      int
	zones         []headerZone
	headerText    string
}

func computeLayout(width, height int, title string, showCard bool) layout {
	l := layout{width: width, height: height, mainTop: headerHeight}
	l.mainRows = height - headerHeight - footerHeight
	if l.mainRows < minMainRows {
		l.mainRows = minMainRows
	}
	l.transcriptW = width
	if showCard && width >= minCardTotalCols {
		l.cardVisible = true
		l.transcriptW = width - cardPaneCols
		l.cardLeft = l.transcriptW + 1
		l.cardCols = cardPaneCols - 1
	}
	l.headerText, l.zones = headerLine(title, width)
	return l
}

// headerLine 返回标题行的纯文本与每个命令的列区间。放不下的命令不显示。
func headerLine(title string, width int) (string, []headerZone) {
	var b strings.Builder
	col := 0
	if title != "" {
		title = runewidth.Truncate(title, width, "…")
		b.WriteString(title)
		col = runewidth.StringWidth(title)
	}
	zones := []headerZone{}
	for i, k := range command.HeaderKinds {
		name := k.String()
		gap := headerSeparator
		if i == 0 {
			gap = strings.Repeat(" ", headerTitleSpace)
			if col == 0 {
				gap = ""
			}
		}
		need := runewidth.StringWidth(gap) + runewidth.StringWidth(name)
		if col+need > width {
			break
		}
		b.WriteString(gap)
		col += runewidth.StringWidth(gap)
		zones = append(zones, headerZone{name: name, start: col, end: col + runewidth.StringWidth(name)})
		b.WriteString(name)
		col += runewidth.StringWidth(name)
	}
	return b.String(), zones
}

// zoneAt 返回标题行 x 列上的命令名。
func (l layout) zoneAt(x int) (string, bool) {
	for _, z := range l.zones {
		if x >= z.start && x < z.end {
			return z.name, true
		}
	}
	return "", false
}

// inCardPane 判断终端坐标是否落在卡片区，并返回卡片区内的相对坐标。
func (l layout) inCardPane(x, y int) (int, int, bool) {
	if !l.cardVisible {
		return 0, 0, false
	}
	cx, cy := x-l.cardLeft, y-l.mainTop
	return cx, cy, cx >= 0 && cx < l.cardCols && cy >= 0 && cy < l.mainRows
}

// inTranscript 判断终端坐标是否落在输出区。
func (l layout) inTranscript(x, y int) bool {
	return x >= 0 && x < l.transcriptW && y >= l.mainTop && y < l.mainTop+l.mainRows
}

// renderHeader 绘制标题行：标题、可点击命令与右侧时钟。
func (l layout) renderHeader(title, clock string, busy bool) string {
	var b strings.Builder
	col := 0
	if title != "" {
		t := runewidth.Truncate(title, l.width, "…")
		b.WriteString(titleStyle.Render(t))
		col = runewidth.StringWidth(t)
	}
	cmdStyle := headerCmdStyle
	if busy {
		cmdStyle = headerBusyStyle
	}
	for _, z := range l.zones {
		b.WriteString(strings.Repeat(" ", z.start-col))
		b.WriteString(cmdStyle.Render(z.name))
		col = z.end
	}
	if clock != "" {
		cw := runewidth.StringWidth(clock)
		if col+2+cw <= l.width {
			b.WriteString(strings.Repeat(" ", l.width-col-cw))
			b.WriteString(clockStyle.Render(clock))
		}
	}
	return b.String()
}

func (l layout) renderRule() string {
	if l.width <= 0 {
		return ""
	}
	return ruleStyle.Render(strings.Repeat("─", l.width))
}
