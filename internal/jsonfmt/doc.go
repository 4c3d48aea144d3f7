// Package jsonfmt 将类型化的内存记录编码为 JSON 文本。
//
// 记录通过 Record 接口自行声明字段及其顺序，编码器按声明顺序遍历字段，
// 依据封闭的 Value 种类（字符串、无符号整数、有符号整数、布尔、嵌套记录、缺失）输出对应的 JSON 片段：
//
//	{"title":"Foo \"Bar\"","price":{"buy":1000}}
//
// 主要约定：
//   - 缺失（Missing）的字段直接省略，不输出 null；
//   - 只有注册表（Registry）中登记过的记录类型允许编码，其余返回 merr.ErrTypeNotSupported；
//   - 投影（Project / KeepSet）只过滤输出，不修改调用方的记录；
//   - 嵌套层级受 MaxDepth 限制，并对指针记录做环检测，超限返回 merr.ErrRecursionTooDeep；
//   - 任意一步失败都会丢弃本次调用的全部输出，不返回部分结果。
//
// Serializer 本身只持有不可变配置与注册表，可被多个 goroutine 并发使用。
package jsonfmt
