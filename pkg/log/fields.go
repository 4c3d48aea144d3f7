package log

import "go.uber.org/zap"

const (
	FieldNameModule    = "module"
	FieldNameComponent = "component"
)

// FieldModule 标记日志所属模块，WithModule 使用它。
func FieldModule(module string) zap.Field {
	return zap.String(FieldNameModule, module)
}

// FieldComponent 标记日志所属组件，例如 serializer。
func FieldComponent(component string) zap.Field {
	return zap.String(FieldNameComponent, component)
}

// FieldTypeName 返回一个包含记录类型名的 zap 字段。
func FieldTypeName(name string) zap.Field {
	return zap.String("typeName", name)
}
