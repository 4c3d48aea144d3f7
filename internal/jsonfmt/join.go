package jsonfmt

import (
	"bytes"
	"strings"
)

// Join 用 sep 连接一组已编码的文本片段。
func Join(fragments []string, sep string) string {
	return strings.Join(fragments, sep)
}

// WrapArray 将一组已编码的 JSON 片段拼接为数组文本。
func WrapArray(fragments []string) string {
	return "[" + Join(fragments, ",") + "]"
}

// ToReader 将编码结果物化为可 Seek 的 UTF-8 字节流。
func ToReader(text string) *bytes.Reader {
	return bytes.NewReader([]byte(text))
}
