// Package suggest 在输入时弹出命令补全列表。
package suggest

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"termfolio/internal/command"
)

// Options 控制弹窗数据来源。
type Options struct {
	Entries  []command.Entry
	MaxLines int
}

// ActionKind 描述按键触发后的处理类型。
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionClose
	ActionInsert
)

// Action 汇总按键处理结果。
type Action struct {
	Kind     ActionKind
	NewValue string
}

// State 维护补全弹窗的匹配与选择状态。
type State struct {
	entries  []command.Entry
	matches  []match
	selected int
	open     bool
	query    string
	// inserted 是上一次 Tab 写入输入框的值；输入保持不变时继续循环。
	inserted string
	maxLines int
}

type match struct {
	entry      command.Entry
	highlights []int
	score      int
}

// NewState 构造补全状态机；Entries 为空时使用命令目录。
func NewState(opts Options) *State {
	entries := opts.Entries
	if len(entries) == 0 {
		entries = command.Catalog()
	}
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = 7
	}
	return &State{entries: entries, maxLines: maxLines}
}

// Open 返回弹窗是否展示。
func (s *State) Open() bool {
	return s != nil && s.open && len(s.matches) > 0
}

// Close 关闭弹窗。
func (s *State) Close() {
	if s == nil {
		return
	}
	s.open = false
	s.matches = nil
	s.inserted = ""
}

// SyncInput 根据最新文本同步过滤列表。只有单个、非空的词才会打开弹窗。
func (s *State) SyncInput(value string) {
	if s == nil {
		return
	}
	if s.inserted != "" && value == s.inserted {
		return
	}
	s.inserted = ""
	query := strings.ToLower(strings.TrimLeftFunc(value, unicode.IsSpace))
	if query == "" || strings.IndexFunc(query, unicode.IsSpace) >= 0 {
		s.open = false
		s.matches = nil
		s.query = ""
		return
	}
	if query != s.query {
		s.selected = 0
	}
	s.query = query
	s.matches = filterMatches(s.entries, query)
	if len(s.matches) == 1 && s.matches[0].entry.Name == query {
		// 已经完整输入
		s.open = false
		return
	}
	s.open = len(s.matches) > 0
	if s.selected >= len(s.matches) {
		s.selected = 0
	}
}

// Selected 返回当前选中的命令。
func (s *State) Selected() (command.Entry, bool) {
	if !s.Open() {
		return command.Entry{}, false
	}
	return s.matches[s.selected].entry, true
}

// Matches 返回匹配到的命令名（按得分排序）。
func (s *State) Matches() []string {
	out := make([]string, 0, len(s.matches))
	for _, m := range s.matches {
		out = append(out, m.entry.Name)
	}
	return out
}

// HandleKey 处理键盘事件，返回对应动作；弹窗未打开时不消费按键。
func (s *State) HandleKey(key string) (Action, bool) {
	if !s.Open() {
		return Action{}, false
	}
	switch key {
	case "up", "ctrl+p":
		s.move(-1)
		return Action{Kind: ActionNone}, true
	case "down", "ctrl+n":
		s.move(1)
		return Action{Kind: ActionNone}, true
	case "esc":
		s.Close()
		return Action{Kind: ActionClose}, true
	case "tab", "shift+tab":
		if s.inserted != "" {
			if key == "tab" {
				s.move(1)
			} else {
				s.move(-1)
			}
		}
		name := s.matches[s.selected].entry.Name
		s.inserted = name
		return Action{Kind: ActionInsert, NewValue: name}, true
	default:
		return Action{}, false
	}
}

func (s *State) move(delta int) {
	n := len(s.matches)
	if n == 0 {
		return
	}
	s.selected = (s.selected + delta + n) % n
}

func filterMatches(entries []command.Entry, query string) []match {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = strings.ToLower(e.Name)
	}
	results := fuzzy.Find(query, keys)
	matches := make([]match, 0, len(results))
	for _, res := range results {
		matches = append(matches, match{
			entry:      entries[res.Index],
			highlights: res.MatchedIndexes,
			score:      res.Score,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		pi := strings.HasPrefix(matches[i].entry.Name, query)
		pj := strings.HasPrefix(matches[j].entry.Name, query)
		if pi != pj {
			return pi
		}
		if matches[i].score == matches[j].score {
			return matches[i].entry.Name < matches[j].entry.Name
		}
		return matches[i].score > matches[j].score
	})
	return matches
}
