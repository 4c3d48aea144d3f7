package jsonfmt

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"

	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

// visit 标识遍历路径上的一个指针记录，用于检测环。
type visit struct {
	typ reflect.Type
	ptr uintptr
}

// encoder 承载单次顶层调用的遍历状态，不跨调用复用。
type encoder struct {
	cfg      *Config
	registry *Registry
	stream   *jsoniter.Stream

	curType  string
	curField string
	trail    []string
	active   map[visit]struct{}
}

func newEncoder(cfg *Config, registry *Registry, stream *jsoniter.Stream) *encoder {
	return &encoder{
		cfg:      cfg,
		registry: registry,
		stream:   stream,
	}
}

// guard 执行 fn，并将其中的 panic（通常来自 Field.Get 或 Record.Fields）转换为 merr.ErrEncodingFailed。
func (e *encoder) guard(fn func() error) (err error) {
	defer func() {
		if x := recover(); x != nil {
			err = merr.WrapErrEncodingFailed(e.curType, e.curField, errors.Newf("panic: %v", x))
		}
	}()
	return fn()
}

// admit 校验顶层记录能否被编码。
func (e *encoder) admit(rec Record) error {
	if isNilRecord(underlying(rec)) {
		return merr.WrapErrParameterMissing("record", "nil record cannot be encoded")
	}
	if !e.registry.Contains(rec) {
		return merr.WrapErrTypeNotSupported(rec.TypeName(), "top level")
	}
	return nil
}

func (e *encoder) writeString(s string) {
	if e.cfg.EscapeHTML {
		e.stream.WriteStringWithHTMLEscaped(s)
		return
	}
	e.stream.WriteString(s)
}

// encodeRecord 将 rec 编码为对象。depth 从 1 开始计数。
func (e *encoder) encodeRecord(rec Record, depth int) error {
	typeName := rec.TypeName()
	if depth > e.cfg.MaxDepth {
		return merr.WrapErrRecursionTooDeep(typeName, depth, e.cfg.MaxDepth)
	}

	if id, ok := identity(rec); ok {
		if e.active == nil {
			e.active = make(map[visit]struct{})
		}
		if _, seen := e.active[id]; seen {
			return merr.WrapErrRecordCycle(typeName, strings.Join(e.trail, "."))
		}
		e.active[id] = struct{}{}
		defer delete(e.active, id)
	}

	// 出错时保留当前位置，供 guard 生成错误信息。
	parentType, parentField := e.curType, e.curField
	e.curType, e.curField = typeName, ""

	e.stream.WriteObjectStart()
	first := true
	for _, field := range rec.Fields() {
		e.curField = field.Name
		if field.Get == nil {
			continue
		}
		val := field.Get()
		if val.IsMissing() {
			continue
		}
		if !first {
			e.stream.WriteMore()
		}
		first = false
		e.writeString(field.Name)
		e.stream.WriteRaw(":")
		if err := e.encodeValue(val, depth); err != nil {
			return err
		}
	}
	e.stream.WriteObjectEnd()
	e.curType, e.curField = parentType, parentField
	return nil
}

func (e *encoder) encodeValue(val Value, depth int) error {
	switch val.Kind() {
	case KindString:
		e.writeString(val.Str())
	case KindUint:
		e.stream.WriteUint64(val.Uint64())
	case KindInt:
		e.stream.WriteInt64(val.Int64())
	case KindBool:
		e.stream.WriteBool(val.Bool())
	case KindRecord:
		return e.encodeNested(val.Record(), depth)
	default:
		return merr.WrapErrEncodingFailed(e.curType, e.curField,
			errors.Newf("unexpected value kind %s", val.Kind()))
	}
	return nil
}

func (e *encoder) encodeNested(rec Record, depth int) error {
	if e.cfg.CheckNested && !e.registry.Contains(rec) {
		return merr.WrapErrTypeNotSupported(rec.TypeName(),
			"nested in "+e.curType+"."+e.curField)
	}
	e.trail = append(e.trail, e.curType+"."+e.curField)
	defer func() {
		e.trail = e.trail[:len(e.trail)-1]
	}()
	return e.encodeRecord(rec, depth+1)
}

// identity 返回指针记录的身份，值类型的记录无法成环，返回 false。
func identity(rec Record) (visit, bool) {
	rv := reflect.ValueOf(underlying(rec))
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return visit{}, false
	}
	return visit{typ: rv.Type(), ptr: rv.Pointer()}, true
}
