package markup

import "strings"

// Options 控制渲染。
type Options struct {
	// Width 是折行宽度，<= 0 表示不折行。
	Width int
	// Hyperlinks 为真时 <a> 输出 OSC 8 超链接。
	Hyperlinks bool
}

// Render 解析并折行，返回带样式的字符串行。
func Render(src string, opts Options) []string {
	return LinesToStrings(Wrap(Parse(src), opts.Width), opts.Hyperlinks)
}

// RenderString 与 Render 相同，但用换行符连接。
func RenderString(src string, opts Options) string {
	return strings.Join(Render(src, opts), "\n")
}

// PlainText 返回去掉标签与样式后的文本，用于复制到剪贴板和 HTTP 接口。
func PlainText(src string) string {
	return strings.Join(LinesToPlain(Parse(src)), "\n")
}
