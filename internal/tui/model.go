package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"termfolio/internal/card"
	"termfolio/internal/content"
	"termfolio/internal/features"
	"termfolio/internal/history"
	"termfolio/internal/logger"
	"termfolio/internal/markup"
	"termfolio/internal/suggest"
	"termfolio/internal/terminal"
)

var log = logger.Named("tui")

const (
	// cardFrameInterval 是弹簧动画的帧间隔（约 60fps）。
	cardFrameInterval = 16 * time.Millisecond
	clockInterval     = time.Second
	clockLayout       = "15:04:05"
	wheelStep         = 3
	maxSuggestWidth   = 56
)

type Options struct {
	Session        *terminal.Session
	Title          string
	Features       features.Set
	History        *history.Store
	HistoryEntries []string
	Badge          content.Badge
	AltScreen      bool
	SessionID      string
	// Clipboard 为空时使用系统剪贴板。
	Clipboard func(string) error
	Now       func() time.Time
}

// sessionTickMsg 推进会话的下一步（等待结束或下一个字符单元）。
type sessionTickMsg struct{}

type clockTickMsg time.Time

// cardFrameMsg 携带调度时的帧号；与卡片当前帧号不一致的消息被丢弃。
type cardFrameMsg struct {
	frame uint64
}

type copyResultMsg struct {
	err error
}

// renderedEntry 缓存单条输出的渲染结果。
type renderedEntry struct {
	src string
	out []string
}

type Model struct {
	session   *terminal.Session
	title     string
	features  features.Set
	store     *history.Store
	browser   *history.Browser
	suggest   *suggest.State
	badge     content.Badge
	sessionID string
	log       *logger.LogEntry
	clipboard func(string) error
	now       func() time.Time

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	status   *statusIndicator
	widget   *card.Widget
	theme    card.Theme

	width  int
	height int
	layout layout
	clock  string

	cache           []renderedEntry
	cacheGeneration uint64
	cacheWidth      int
	lastVersion     uint64
	transcriptDirty bool
}

func New(opts Options) *Model {
	sess := opts.Session
	if sess == nil {
		sess = terminal.New(terminal.Options{})
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	title := opts.Title
	if title == "" {
		title = "termfolio"
	}

	ti := textinput.New()
	ti.Prompt = sess.Prompt() + " "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "type help"
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	m := &Model{
		session:         sess,
		title:           title,
		features:        opts.Features,
		store:           opts.History,
		browser:         history.NewBrowser(opts.HistoryEntries),
		suggest:         suggest.NewState(suggest.Options{}),
		badge:           opts.Badge,
		sessionID:       opts.SessionID,
		log:             logger.ForSession(log, opts.SessionID),
		clipboard:       copyFn,
		now:             now,
		input:           ti,
		viewport:        vp,
		spin:            sp,
		status:          newStatusIndicator(now),
		widget:          card.New(),
		theme:           card.DefaultTheme(),
		transcriptDirty: true,
	}
	if m.badge == (content.Badge{}) {
		m.badge = sess.Portfolio().Badge
	}
	m.resize(80, 24)
	return m
}

// Init 启动欢迎信息的打字效果以及时钟。
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if delay, ok := m.session.Boot(); ok {
		m.transcriptDirty = true
		cmds = append(cmds, m.startRunning(delay))
	}
	if m.features.Enabled(features.Clock) {
		m.clock = m.now().Format(clockLayout)
		cmds = append(cmds, clockTick())
	}
	m.flushTranscript()
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m.finish()
	case sessionTickMsg:
		delay, more := m.session.Tick()
		m.transcriptDirty = true
		if more {
			cmds = append(cmds, sessionTick(delay))
		} else {
			m.status.Stop()
		}
		return m.finish(cmds...)
	case clockTickMsg:
		m.clock = time.Time(msg).Format(clockLayout)
		return m, clockTick()
	case cardFrameMsg:
		if msg.frame != m.widget.Frame() {
			return m, nil
		}
		if m.widget.Step() {
			return m, cardFrame(msg.frame)
		}
		return m, nil
	case spinner.TickMsg:
		if m.session.Busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	case copyResultMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("copy to clipboard failed")
			m.status.Notice("copy failed: " + msg.err.Error())
		} else {
			m.status.Notice("copied last output")
		}
		return m, nil
	case tea.MouseMsg:
		return m.finish(m.handleMouse(msg)...)
	case tea.KeyMsg:
		return m.finish(m.handleKey(msg)...)
	}
	return m, nil
}

// finish 在返回前把脏的输出区刷新到 viewport。
func (m *Model) finish(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	if m.transcriptDirty {
		m.flushTranscript()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) []tea.Cmd {
	key := msg.String()
	m.status.ClearNotice()

	if m.features.Enabled(features.Suggestions) {
		if act, ok := m.suggest.HandleKey(key); ok {
			if act.Kind == suggest.ActionInsert {
				m.input.SetValue(act.NewValue)
				m.input.CursorEnd()
				m.suggest.SyncInput(act.NewValue)
			}
			return nil
		}
	}

	switch key {
	case "ctrl+c":
		return []tea.Cmd{tea.Quit}
	case "enter":
		return m.submitInput()
	case "up":
		if m.features.Enabled(features.History) {
			if text, ok := m.browser.Prev(m.input.Value()); ok {
				m.setInput(text)
			}
		}
		return nil
	case "down":
		if m.features.Enabled(features.History) {
			if text, ok := m.browser.Next(); ok {
				m.setInput(text)
			}
		}
		return nil
	case "ctrl+y":
		return []tea.Cmd{m.copyLast()}
	case "pgup":
		m.viewport.ViewUp()
		return nil
	case "pgdown":
		m.viewport.ViewDown()
		return nil
	case "ctrl+u":
		m.viewport.HalfViewUp()
		return nil
	case "ctrl+d":
		m.viewport.HalfViewDown()
		return nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.browser.ResetBrowsing()
		if m.features.Enabled(features.Suggestions) {
			m.suggest.SyncInput(m.input.Value())
		}
	}
	return []tea.Cmd{cmd}
}

func (m *Model) setInput(text string) {
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.suggest.Close()
}

// submitInput 提交输入框内容。会话忙碌时忽略回车并保留输入。
func (m *Model) submitInput() []tea.Cmd {
	if m.session.Busy() {
		return nil
	}
	raw := m.input.Value()
	sub, err := m.session.Submit(raw, terminal.Typed)
	if err != nil {
		return nil
	}
	m.input.Reset()
	m.suggest.Close()
	m.transcriptDirty = true
	m.recordHistory(sub.Command.Token)
	if !sub.Scheduled {
		return nil
	}
	return []tea.Cmd{m.startRunning(sub.Delay)}
}

func (m *Model) recordHistory(token string) {
	if token == "" || !m.features.Enabled(features.History) {
		return
	}
	m.browser.Add(token)
	if m.store == nil {
		return
	}
	if err := m.store.Append(token); err != nil {
		m.log.WithError(err).Warn("append history failed")
	}
}

// submitHeader 处理标题栏点击。
func (m *Model) submitHeader(name string) []tea.Cmd {
	sub, err := m.session.Submit(name, terminal.Header)
	if err != nil {
		if !errors.Is(err, terminal.ErrBusy) {
			m.log.WithError(err).Warn("header submission failed")
		}
		return nil
	}
	m.transcriptDirty = true
	if !sub.Scheduled {
		return nil
	}
	return []tea.Cmd{m.startRunning(sub.Delay)}
}

// startRunning 调度第一次会话 tick 并启动 spinner。
func (m *Model) startRunning(delay time.Duration) tea.Cmd {
	m.status.Start(m.session.Current().Name())
	return tea.Batch(sessionTick(delay), m.spin.Tick)
}

func (m *Model) copyLast() tea.Cmd {
	last, ok := m.session.Transcript().Last()
	if !ok {
		return nil
	}
	text := markup.PlainText(last)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	copyFn := m.clipboard
	return func() tea.Msg {
		return copyResultMsg{err: copyFn(text)}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) []tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.layout.inTranscript(msg.X, msg.Y) {
			m.viewport.LineUp(wheelStep)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if m.layout.inTranscript(msg.X, msg.Y) {
			m.viewport.LineDown(wheelStep)
		}
		return nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
		if name, ok := m.layout.zoneAt(msg.X); ok {
			return m.submitHeader(name)
		}
	}
	return m.handleCardMouse(msg)
}

// handleCardMouse 把鼠标事件换算到卡片区的虚拟像素坐标后交给卡片。
func (m *Model) handleCardMouse(msg tea.MouseMsg) []tea.Cmd {
	// 松开必须结束拖拽，即使卡片区已因缩窄被隐藏。
	if msg.Action == tea.MouseActionRelease {
		if m.widget.PointerUp() {
			return []tea.Cmd{cardFrame(m.widget.Frame())}
		}
		return nil
	}
	if !m.layout.cardVisible {
		return nil
	}
	cx, cy, inside := m.layout.inCardPane(msg.X, msg.Y)
	p := card.CellCenter(cx, cy)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inside {
			m.widget.PointerDown(p)
		}
	case tea.MouseActionMotion:
		if inside || m.widget.State() == card.Dragging {
			m.widget.PointerMove(p)
		} else {
			m.widget.PointerLeave()
		}
	}
	return nil
}

func (m *Model) View() string {
	l := m.layout
	header := l.renderHeader(m.title, m.clock, m.session.Busy())
	rule := l.renderRule()

	main := m.viewport.View()
	if m.features.Enabled(features.Suggestions) && m.suggest.Open() {
		popup := suggestBoxStyle.Render(m.suggest.View(m.suggestWidth()))
		main = overlayBottom(main, popup, l.transcriptW)
	}
	if l.cardVisible {
		divider := paneBorderStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", l.mainRows), "\n"))
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, divider, m.widget.View(m.badge, m.theme))
	}

	status := m.status.Render(m.width, m.spin.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, rule, main, m.input.View(), status)
}

func (m *Model) suggestWidth() int {
	w := m.layout.transcriptW - 4
	if w > maxSuggestWidth {
		w = maxSuggestWidth
	}
	return w
}

// overlayBottom 用 top 覆盖 base 的最后几行。
func overlayBottom(base, top string, width int) string {
	lines := strings.Split(base, "\n")
	over := strings.Split(top, "\n")
	if len(over) > len(lines) {
		over = over[len(over)-len(lines):]
	}
	start := len(lines) - len(over)
	for i, line := range over {
		if pad := width - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[start+i] = line
	}
	return strings.Join(lines, "\n")
}

// SessionID 返回本次运行的会话标识。
func (m *Model) SessionID() string {
	return m.sessionID
}

// Executed 返回已执行完成的命令数。
func (m *Model) Executed() int {
	return m.session.Executed()
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	m.layout = computeLayout(width, height, m.title, m.features.Enabled(features.Card))
	m.viewport.Width = m.layout.transcriptW
	m.viewport.Height = m.layout.mainRows
	m.input.Width = maxInt(1, width-lipgloss.Width(m.input.Prompt)-1)
	if m.layout.cardVisible {
		m.widget.Layout(card.CellSize(m.layout.cardCols, m.layout.mainRows), card.FaceSize)
	}
	m.transcriptDirty = true
}

// flushTranscript 重新渲染输出区。只有新增或变化的条目会重新排版；
// 版本号变化时滚动到底部。
func (m *Model) flushTranscript() {
	m.transcriptDirty = false
	t := m.session.Transcript()
	width := m.layout.transcriptW
	if t.Generation() != m.cacheGeneration || width != m.cacheWidth {
		m.cache = nil
		m.cacheGeneration = t.Generation()
		m.cacheWidth = width
	}

	entries := t.Entries()
	if len(m.cache) > len(entries) {
		m.cache = m.cache[:len(entries)]
	}
	opts := markup.Options{Width: width, Hyperlinks: m.features.Enabled(features.Hyperlinks)}
	var lines []string
	for i, src := range entries {
		if i >= len(m.cache) {
			m.cache = append(m.cache, renderedEntry{src: src, out: markup.Render(src, opts)})
		} else if m.cache[i].src != src {
			m.cache[i] = renderedEntry{src: src, out: markup.Render(src, opts)}
		}
		lines = append(lines, m.cache[i].out...)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if v := t.Version(); v != m.lastVersion {
		m.lastVersion = v
		m.viewport.GotoBottom()
	}
}

func sessionTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return sessionTickMsg{} })
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func cardFrame(frame uint64) tea.Cmd {
	return tea.Tick(cardFrameInterval, func(time.Time) tea.Msg { return cardFrameMsg{frame: frame} })
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
