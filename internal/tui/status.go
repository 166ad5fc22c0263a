package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"termfolio/internal/markup"
)

// statusState 枚举了状态行可显示的状态。
type statusState int

const (
	// statusIdle 显示按键提示。
	statusIdle statusState = iota
	// statusRunning 表示命令在执行，计时器持续累加。
	statusRunning
	// statusNotice 显示一次性提示（例如复制结果），下一次按键后清除。
	statusNotice
)

func (s statusState) String() string {
	switch s {
	case statusRunning:
		return "running"
	case statusNotice:
		return "notice"
	default:
		return "idle"
	}
}

var (
	statusHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	statusHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	statusNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EBCB8B"))
)

const idleHint = "enter run · tab complete · ↑/↓ history · pgup/pgdn scroll · ctrl+y copy · ctrl+c quit"

// statusIndicator 渲染底部状态行（spinner + 命令名 + 计时，或按键提示）。
type statusIndicator struct {
	state     statusState
	header    string
	startedAt time.Time
	clock     func() time.Time
}

func newStatusIndicator(clock func() time.Time) *statusIndicator {
	if clock == nil {
		clock = time.Now
	}
	return &statusIndicator{clock: clock}
}

// Start 进入运行态并开始计时。
func (s *statusIndicator) Start(header string) {
	s.state = statusRunning
	s.header = header
	s.startedAt = s.clock()
}

// Stop 回到空闲态。
func (s *statusIndicator) Stop() {
	s.state = statusIdle
	s.header = ""
}

// Notice 显示一次性提示。运行中不覆盖运行状态。
func (s *statusIndicator) Notice(text string) {
	if s.state == statusRunning {
		return
	}
	s.state = statusNotice
	s.header = text
}

// ClearNotice 清除一次性提示。
func (s *statusIndicator) ClearNotice() {
	if s.state == statusNotice {
		s.Stop()
	}
}

func (s *statusIndicator) Elapsed() time.Duration {
	if s.state != statusRunning {
		return 0
	}
	return s.clock().Sub(s.startedAt)
}

// Render 绘制状态行；spin 为当前 spinner 帧。
func (s *statusIndicator) Render(width int, spin string) string {
	var spans []markup.Span
	switch s.state {
	case statusRunning:
		spans = []markup.Span{
			{Text: spin, Style: statusHeaderStyle},
			{Text: " " + s.header, Style: statusHeaderStyle},
			{Text: " " + fmtElapsed(s.Elapsed()), Style: lipgloss.NewStyle().Faint(true)},
		}
	case statusNotice:
		spans = []markup.Span{{Text: s.header, Style: statusNoticeStyle}}
	default:
		spans = []markup.Span{{Text: idleHint, Style: statusHintStyle}}
	}
	clamped := clampSpans(spans, width)
	out := ""
	for _, sp := range clamped {
		out += sp.Style.Render(sp.Text)
	}
	return out
}

// fmtElapsed 将耗时格式化为紧凑字符串。
func fmtElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("(%dms)", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	default:
		return fmt.Sprintf("(%dm %02ds)", int(d.Minutes()), int(d.Seconds())%60)
	}
}

func clampSpans(spans []markup.Span, width int) []markup.Span {
	if width <= 0 {
		return nil
	}
	remaining := width
	out := make([]markup.Span, 0, len(spans))
	for _, sp := range spans {
		if remaining <= 0 {
			break
		}
		tw := runewidth.StringWidth(sp.Text)
		if tw <= remaining {
			out = append(out, sp)
			remaining -= tw
			continue
		}
		if text := runewidth.Truncate(sp.Text, remaining, ""); text != "" {
			sp.Text = text
			out = append(out, sp)
		}
		remaining = 0
	}
	return out
}
