package jsonfmt

import (
	"bytes"

	"github.com/samber/lo"
)

// EncodeArray 将一组记录编码为 JSON 数组。空切片输出 "[]"。
// 任一元素未登记时整体失败，不产生输出。
func EncodeArray[T Record](s *Serializer, values []T) (string, error) {
	out, err := s.encodeArray(toRecords(values), nil)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeArrayProjected 对每个元素应用 keep 投影后编码为 JSON 数组。
func EncodeArrayProjected[T Record](s *Serializer, values []T, keep KeepSet) (string, error) {
	out, err := s.encodeArray(toRecords(values), keep)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func EncodeArrayReader[T Record](s *Serializer, values []T) (*bytes.Reader, error) {
	out, err := s.encodeArray(toRecords(values), nil)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out), nil
}

func EncodeArrayProjectedReader[T Record](s *Serializer, values []T, keep KeepSet) (*bytes.Reader, error) {
	out, err := s.encodeArray(toRecords(values), keep)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out), nil
}

func toRecords[T Record](values []T) []Record {
	return lo.Map(values, func(v T, _ int) Record {
		return v
	})
}
