package jsonfmt

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Kind 是 Value 的种类，集合是封闭的。
type Kind uint8

const (
	KindMissing Kind = iota
	KindString
	KindUint
	KindInt
	KindBool
	KindRecord
)

var kindNames = [...]string{
	KindMissing: "missing",
	KindString:  "string",
	KindUint:    "uint",
	KindInt:     "int",
	KindBool:    "bool",
	KindRecord:  "record",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value 是字段值的标记联合。零值表示缺失。
type Value struct {
	kind Kind
	str  string
	u64  uint64
	i64  int64
	b    bool
	rec  Record
}

// Missing 返回表示“无值”的 Value，编码时对应字段会被省略。
func Missing() Value {
	return Value{}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func Uint[T constraints.Unsigned](u T) Value {
	return Value{kind: KindUint, u64: uint64(u)}
}

func Int[T constraints.Signed](i T) Value {
	return Value{kind: KindInt, i64: int64(i)}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Nested 包装一个嵌套记录。rec 为 nil（包括带类型的 nil 指针）时返回 Missing。
func Nested(rec Record) Value {
	if isNilRecord(rec) {
		return Missing()
	}
	return Value{kind: KindRecord, rec: rec}
}

// OptString 将可选字符串转换为 Value，nil 对应 Missing。
func OptString(p *string) Value {
	if p == nil {
		return Missing()
	}
	return String(*p)
}

func OptUint[T constraints.Unsigned](p *T) Value {
	if p == nil {
		return Missing()
	}
	return Uint(*p)
}

func OptInt[T constraints.Signed](p *T) Value {
	if p == nil {
		return Missing()
	}
	return Int(*p)
}

func OptBool(p *bool) Value {
	if p == nil {
		return Missing()
	}
	return Bool(*p)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Str 返回字符串值，仅在 Kind 为 KindString 时有意义。
func (v Value) Str() string {
	return v.str
}

func (v Value) Uint64() uint64 {
	return v.u64
}

func (v Value) Int64() int64 {
	return v.i64
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Record() Record {
	return v.rec
}

func isNilRecord(rec Record) bool {
	if rec == nil {
		return true
	}
	rv := reflect.ValueOf(rec)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}
