// Package history 持久化提交过的输入，并提供上下箭头浏览。
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLimit 是启动时加载的最大历史条数。
const DefaultLimit = 500

// 文件行数超过 limit*compactFactor 时 Compact 才会重写文件。
const compactFactor = 2

var (
	ErrNilStore  = errors.New("history store is nil")
	ErrEmptyPath = errors.New("history store path is empty")
)

// Entry 是 JSONL 文件中的一行。
type Entry struct {
	Text    string    `json:"text"`
	TS      time.Time `json:"ts"`
	Session string    `json:"session,omitempty"`
}

// Store 以追加方式写入 JSONL 历史文件，每行带上会话 id。
type Store struct {
	Path    string
	Session string
	// Limit <= 0 表示 DefaultLimit。
	Limit int
	now   func() time.Time
}

func New(path, session string) *Store {
	return &Store{Path: path, Session: session}
}

func (s *Store) check() error {
	if s == nil {
		return ErrNilStore
	}
	if strings.TrimSpace(s.Path) == "" {
		return ErrEmptyPath
	}
	return nil
}

func (s *Store) limit() int {
	if s.Limit > 0 {
		return s.Limit
	}
	return DefaultLimit
}

func (s *Store) stamp() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Append 追加一条输入，空白输入直接忽略。
func (s *Store) Append(text string) error {
	if err := s.check(); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	line, err := json.Marshal(Entry{Text: text, TS: s.stamp(), Session: s.Session})
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// LoadTexts 返回最近 limit 条输入，连续重复的只保留一条。
// 文件不存在时返回空；无法解析的行被跳过。
func (s *Store) LoadTexts() ([]string, error) {
	entries, err := s.entries()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if n := len(out); n > 0 && out[n-1] == e.Text {
			continue
		}
		out = append(out, e.Text)
	}
	if n := s.limit(); len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

// Compact 在文件明显超出 limit 时只保留最新的 limit 行，返回删除的行数。
// 通过临时文件加 rename 替换，中途失败不会损坏原文件。
func (s *Store) Compact() (int, error) {
	entries, err := s.entries()
	if err != nil {
		return 0, err
	}
	keep := s.limit()
	if len(entries) <= keep*compactFactor {
		return 0, nil
	}
	dropped := len(entries) - keep
	entries = entries[dropped:]

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".history-*")
	if err != nil {
		return 0, fmt.Errorf("create temp history: %w", err)
	}
	defer os.Remove(tmp.Name())
	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			tmp.Close()
			return 0, fmt.Errorf("encode history entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return 0, fmt.Errorf("replace history: %w", err)
	}
	return dropped, nil
}

func (s *Store) entries() ([]Entry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeEntries(f)
}

func decodeEntries(r io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var out []Entry
	for sc.Scan() {
		var e Entry
		if json.Unmarshal(sc.Bytes(), &e) != nil {
			continue
		}
		if e.Text = strings.TrimSpace(e.Text); e.Text == "" {
			continue
		}
		out = append(out, e)
	}
	return out, sc.Err()
}
