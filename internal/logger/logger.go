// Package logger 给各组件提供共享的 logrus 入口。
// 交互模式下终端被 TUI 占用，日志只能写文件或丢弃。
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type LogEntry = logrus.Entry
type Fields = logrus.Fields

const DefaultLogPath = "logs/termfolio.log"

const (
	componentKey = "component"
	callerKey    = "caller"
	sessionKey   = "session"
)

// tags 中的字段按顺序渲染成 [key=value] 标签，不再出现在尾部字段里。
var tags = []string{"command", sessionKey}

// session id 在标签里只保留前 8 位
const sessionTagLen = 8

var std = logrus.StandardLogger()

// swap 替换全局 logger 并返回恢复函数，测试用。
func swap(l *logrus.Logger) func() {
	prev := std
	std = l
	return func() { std = prev }
}

func Configure() {
	std.SetReportCaller(true)
	std.SetFormatter(PlainFormatter{})
}

// SetLevel 解析级别名；空串不做修改，无法识别时返回错误且级别不变。
func SetLevel(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", name, err)
	}
	std.SetLevel(level)
	return nil
}

// SetupFile 把输出切到 path（空则用 DefaultLogPath），父目录不存在时创建。
// 返回文件 closer 和实际使用的路径。
func SetupFile(path string) (io.Closer, string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultLogPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, "", fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("open log file: %w", err)
	}
	std.SetOutput(f)
	return f, path, nil
}

func Discard() {
	std.SetOutput(io.Discard)
}

// Named 返回带 component 字段的入口。
func Named(component string) *LogEntry {
	entry := logrus.NewEntry(std)
	if component == "" {
		return entry
	}
	return entry.WithField(componentKey, component)
}

// ForSession 给入口附加会话 id。
func ForSession(entry *LogEntry, id string) *LogEntry {
	return entry.WithField(sessionKey, id)
}

// PlainFormatter 输出单行文本：
//
//	[time] [LEVEL] [component] [command=x] [session=abcd1234] message k=v ... @file:line
type PlainFormatter struct{}

func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return nil, nil
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] [%s]", entry.Time.UTC().Format(time.RFC3339Nano), strings.ToUpper(entry.Level.String()))
	if c, ok := entry.Data[componentKey].(string); ok && c != "" {
		fmt.Fprintf(&b, " [%s]", c)
	}
	for _, key := range tags {
		if v := tagValue(entry.Data, key); v != "" {
			fmt.Fprintf(&b, " [%s=%s]", key, v)
		}
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	for _, k := range trailingKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	if caller := callerOf(entry); caller != "" {
		b.WriteString(" @")
		b.WriteString(caller)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func tagValue(data logrus.Fields, key string) string {
	raw, ok := data[key]
	if !ok {
		return ""
	}
	v := fmt.Sprint(raw)
	if key == sessionKey && len(v) > sessionTagLen {
		v = v[:sessionTagLen]
	}
	return v
}

func trailingKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
outer:
	for k := range data {
		if k == componentKey || k == callerKey {
			continue
		}
		for _, t := range tags {
			if k == t {
				continue outer
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func callerOf(entry *logrus.Entry) string {
	if entry.HasCaller() {
		return fmt.Sprintf("%s:%d", trimSourcePath(entry.Caller.File), entry.Caller.Line)
	}
	c, _ := entry.Data[callerKey].(string)
	return c
}

// trimSourcePath 去掉模块根之前的部分，例如 .../termfolio/internal/tui/model.go -> internal/tui/model.go。
func trimSourcePath(file string) string {
	file = filepath.ToSlash(file)
	for _, marker := range []string{"/internal/", "/cmd/"} {
		if i := strings.LastIndex(file, marker); i >= 0 {
			return file[i+1:]
		}
	}
	return filepath.Base(file)
}
