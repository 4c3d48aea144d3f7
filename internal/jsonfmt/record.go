package jsonfmt

// Record 是可被编码的记录。
//
// 实现方通过 Fields 按固定顺序声明全部字段；字段名即输出的 JSON 键名。
type Record interface {
	// TypeName 返回记录类型名，用于注册表冲突检测与日志/指标标签。
	TypeName() string
	// Fields 返回按声明顺序排列的字段描述。
	Fields() []Field
}

// Field 描述记录中的一个字段。
type Field struct {
	// Name 为字段名，同时也是输出的键名。
	Name string
	// Get 读取字段当前的值。
	Get func() Value
}

// FieldOf 构造一个字段描述。
func FieldOf(name string, get func() Value) Field {
	return Field{Name: name, Get: get}
}

// Marshaler 抽象了“对象 -> 字节序列”的编码能力。
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
