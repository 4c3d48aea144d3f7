package jsonfmt

import (
	"github.com/samber/lo"

	"github.com/lk2023060901/rentit-go/pkg/util/typeutil"
)

// KeepSet 是投影时保留的字段名集合。
// nil 表示不做投影；非 nil 的空集合表示一个字段都不保留。
type KeepSet = typeutil.Set[string]

// Keep 由字段名构造 KeepSet。
func Keep(names ...string) KeepSet {
	return typeutil.NewSet(names...)
}

// projection 是记录的只读投影视图。
type projection struct {
	rec  Record
	keep KeepSet
}

// Project 返回 rec 的投影视图，只暴露 keep 中列出的字段，顺序与声明顺序一致。
// keep 中不存在的字段名被忽略。投影只作用于顶层字段，被保留的嵌套记录整体输出。
//
// rec 不会被修改；keep 为 nil 或 rec 为 nil 时直接返回 rec。
func Project(rec Record, keep KeepSet) Record {
	if keep == nil || rec == nil {
		return rec
	}
	return projection{rec: rec, keep: keep.Clone()}
}

func (p projection) TypeName() string {
	return p.rec.TypeName()
}

func (p projection) Fields() []Field {
	return lo.Filter(p.rec.Fields(), func(f Field, _ int) bool {
		return p.keep.Contain(f.Name)
	})
}

// Unwrap 返回被投影的原始记录。
func (p projection) Unwrap() Record {
	return p.rec
}
