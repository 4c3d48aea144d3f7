package jsonfmt

import (
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/exp/constraints"

	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

// scalarAPI 用于不经过 Serializer 的标量快速路径，转义规则与默认配置一致。
var scalarAPI = jsoniter.Config{EscapeHTML: true}.Froze()

// EncodeUints 将无符号整数切片编码为 JSON 数组，不经过字段检查与注册表。
func EncodeUints[T constraints.Unsigned](values []T) string {
	stream := scalarAPI.BorrowStream(nil)
	defer scalarAPI.ReturnStream(stream)

	stream.WriteArrayStart()
	for i, v := range values {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteUint64(uint64(v))
	}
	stream.WriteArrayEnd()
	return string(stream.Buffer())
}

// EncodeInts 将有符号整数切片编码为 JSON 数组。
func EncodeInts[T constraints.Signed](values []T) string {
	stream := scalarAPI.BorrowStream(nil)
	defer scalarAPI.ReturnStream(stream)

	stream.WriteArrayStart()
	for i, v := range values {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteInt64(int64(v))
	}
	stream.WriteArrayEnd()
	return string(stream.Buffer())
}

// EncodeStrings 将字符串切片编码为 JSON 数组，每个元素都会被转义。
func EncodeStrings(values []string) (string, error) {
	stream := scalarAPI.BorrowStream(nil)
	defer scalarAPI.ReturnStream(stream)

	stream.WriteArrayStart()
	for i, v := range values {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteStringWithHTMLEscaped(v)
	}
	stream.WriteArrayEnd()
	if stream.Error != nil {
		return "", merr.WrapErrEncodingFailed("[]string", "", stream.Error)
	}
	return string(stream.Buffer()), nil
}

// Escape 返回 s 对应的带引号 JSON 字符串字面量。
func Escape(s string) (string, error) {
	stream := scalarAPI.BorrowStream(nil)
	defer scalarAPI.ReturnStream(stream)

	stream.WriteStringWithHTMLEscaped(s)
	if stream.Error != nil {
		return "", merr.WrapErrEncodingFailed("string", "", stream.Error)
	}
	return string(stream.Buffer()), nil
}
