// Package json 是基于 bytedance/sonic 的 JSON 门面，统一项目内对第三方 JSON 库的依赖。
//
// 使用 sonic.ConfigStd，行为与 encoding/json 保持一致（转义 HTML、校验 UTF-8、map 按键排序）。
package json

import (
	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// Marshal 将任意对象编码为 JSON。
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalToString 将任意对象编码为 JSON 字符串。
func MarshalToString(v any) (string, error) {
	return api.MarshalToString(v)
}

// Unmarshal 将 JSON 解码到 v，v 应为指针。
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// UnmarshalFromString 将 JSON 字符串解码到 v，v 应为指针。
func UnmarshalFromString(data string, v any) error {
	return api.UnmarshalFromString(data, v)
}

// Valid 判断 data 是否为合法的 JSON 文本。
func Valid(data []byte) bool {
	return api.Valid(data)
}
