package history

import "strings"

// Browser 负责输入框历史浏览状态（上下箭头）。
// cursor == len(entries) 表示当前在“最新输入”（非浏览历史）位置。
type Browser struct {
	entries []string
	cursor  int
	draft   string
}

// NewBrowser 用已有历史初始化。
func NewBrowser(entries []string) *Browser {
	b := &Browser{}
	b.Set(entries)
	return b
}

func (b *Browser) Set(entries []string) {
	b.entries = append([]string(nil), entries...)
	b.cursor = len(b.entries)
	b.draft = ""
}

// Add 记录一次提交；与上一条相同的输入不重复记录。
func (b *Browser) Add(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if n := len(b.entries); n == 0 || b.entries[n-1] != text {
		b.entries = append(b.entries, text)
	}
	b.ResetBrowsing()
}

func (b *Browser) Len() int { return len(b.entries) }

func (b *Browser) Browsing() bool {
	return b.cursor < len(b.entries)
}

func (b *Browser) ResetBrowsing() {
	b.cursor = len(b.entries)
	b.draft = ""
}

// Prev 返回更早的一条；第一次调用时保存当前草稿。
func (b *Browser) Prev(current string) (string, bool) {
	if len(b.entries) == 0 {
		return "", false
	}
	if b.cursor == len(b.entries) {
		b.draft = current
	}
	if b.cursor > 0 {
		b.cursor--
	}
	return b.entries[b.cursor], true
}

// Next 返回更新的一条；越过最新一条时恢复草稿。
func (b *Browser) Next() (string, bool) {
	if b.cursor >= len(b.entries) {
		return "", false
	}
	if b.cursor < len(b.entries)-1 {
		b.cursor++
		return b.entries[b.cursor], true
	}
	b.cursor = len(b.entries)
	return b.draft, true
}
