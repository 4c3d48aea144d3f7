package jsonfmt

import (
	"fmt"
	"reflect"

	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

// TypeDesc 描述一个允许编码的记录类型（类型本身，而非实例）。
type TypeDesc struct {
	typ  reflect.Type
	name string
}

// TypeOf 返回记录类型 T 的描述。T 与 *T 视为同一类型。
//
// T 必须是具体类型，传入接口类型会 panic，应在启动阶段调用。
func TypeOf[T Record]() TypeDesc {
	typ := indirectType(reflect.TypeOf((*T)(nil)).Elem())
	if typ.Kind() == reflect.Interface {
		panic(fmt.Sprintf("jsonfmt: TypeOf requires a concrete record type, got interface '%s'", typ))
	}
	obj, ok := reflect.New(typ).Interface().(Record)
	if !ok {
		panic(fmt.Sprintf("jsonfmt: '%s' does not implement Record through a pointer receiver", typ))
	}
	return TypeDesc{typ: typ, name: obj.TypeName()}
}

// Name 返回记录类型名（Record.TypeName）。
func (d TypeDesc) Name() string {
	return d.name
}

// GoType 返回带包路径的 Go 类型名。
func (d TypeDesc) GoType() string {
	if d.typ == nil {
		return ""
	}
	return d.typ.PkgPath() + "." + d.typ.Name()
}

// Registry 是允许编码的记录类型白名单。
//
// 构造完成后只读，可在多个 goroutine 中无锁并发访问。
type Registry struct {
	byType map[reflect.Type]TypeDesc
	byName map[string]TypeDesc
	order  []TypeDesc
}

// NewRegistry 以给定顺序构造注册表。
// 同一类型重复登记会被忽略；不同类型声明相同 TypeName 时返回 merr.ErrRegistryConflict。
func NewRegistry(descs ...TypeDesc) (*Registry, error) {
	r := &Registry{
		byType: make(map[reflect.Type]TypeDesc, len(descs)),
		byName: make(map[string]TypeDesc, len(descs)),
		order:  make([]TypeDesc, 0, len(descs)),
	}
	for _, desc := range descs {
		if desc.typ == nil {
			return nil, merr.WrapErrParameterMissing("type descriptor", "zero TypeDesc, use TypeOf[T]()")
		}
		if _, ok := r.byType[desc.typ]; ok {
			continue
		}
		if exists, ok := r.byName[desc.name]; ok {
			return nil, merr.WrapErrRegistryConflict(desc.name, exists.GoType(), desc.GoType())
		}
		r.byType[desc.typ] = desc
		r.byName[desc.name] = desc
		r.order = append(r.order, desc)
	}
	return r, nil
}

// MustNewRegistry 与 NewRegistry 相同，出错时 panic。
func MustNewRegistry(descs ...TypeDesc) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Contains 判断记录的运行时类型是否已登记。投影视图按其底层记录判断。
func (r *Registry) Contains(rec Record) bool {
	if r == nil {
		return false
	}
	typ := recordType(rec)
	if typ == nil {
		return false
	}
	_, ok := r.byType[typ]
	return ok
}

// Lookup 按 TypeName 查找已登记的类型。
func (r *Registry) Lookup(name string) (TypeDesc, bool) {
	if r == nil {
		return TypeDesc{}, false
	}
	desc, ok := r.byName[name]
	return desc, ok
}

// Types 返回按登记顺序排列的类型描述副本。
func (r *Registry) Types() []TypeDesc {
	if r == nil {
		return nil
	}
	return append([]TypeDesc(nil), r.order...)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

type unwrapper interface {
	Unwrap() Record
}

// underlying 剥去投影等包装，返回真正的记录。
func underlying(rec Record) Record {
	for {
		w, ok := rec.(unwrapper)
		if !ok {
			return rec
		}
		rec = w.Unwrap()
	}
}

func recordType(rec Record) reflect.Type {
	rec = underlying(rec)
	if rec == nil {
		return nil
	}
	return indirectType(reflect.TypeOf(rec))
}

func indirectType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}
