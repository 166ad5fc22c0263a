// Package transcript 保存终端会话的输出记录：按提交顺序追加的 markup 片段。
package transcript

// Transcript 是只追加的片段列表，唯一的破坏性操作是 Clear。
// 最后一个条目是正在被打字机逐步写入的条目。
type Transcript struct {
	entries    []string
	version    uint64
	generation uint64
}

// New 返回空记录。
func New() *Transcript {
	return &Transcript{}
}

// Append 追加一个完整条目。
func (t *Transcript) Append(fragment string) {
	t.entries = append(t.entries, fragment)
	t.version++
}

// Begin 追加一个空条目，供打字机后续写入，返回其下标。
func (t *Transcript) Begin() int {
	t.Append("")
	return len(t.entries) - 1
}

// AppendToLast 向最后一个条目追加文本；记录为空时不做任何事。
func (t *Transcript) AppendToLast(s string) {
	if len(t.entries) == 0 || s == "" {
		return
	}
	t.entries[len(t.entries)-1] += s
	t.version++
}

// Clear 清空全部条目。
func (t *Transcript) Clear() {
	t.entries = nil
	t.version++
	t.generation++
}

// Entries 返回条目的副本。
func (t *Transcript) Entries() []string {
	out := make([]string, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entry 返回下标 i 的条目。
func (t *Transcript) Entry(i int) (string, bool) {
	if i < 0 || i >= len(t.entries) {
		return "", false
	}
	return t.entries[i], true
}

// Len 返回条目数量。
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Last 返回最后一个条目。
func (t *Transcript) Last() (string, bool) {
	return t.Entry(len(t.entries) - 1)
}

// Version 每次变更都会递增，视图据此判断是否需要重新渲染和滚动。
func (t *Transcript) Version() uint64 {
	return t.version
}

// Generation 每次 Clear 递增。
func (t *Transcript) Generation() uint64 {
	return t.generation
}
