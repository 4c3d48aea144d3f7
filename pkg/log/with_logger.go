package log

import "go.uber.org/atomic"

// Binder 嵌入到组件中保存组件自己的 Logger，零值可用。
type Binder struct {
	logger atomic.Pointer[MLogger]
}

// SetLogger 替换组件的 Logger，可与 Logger 并发调用。
func (w *Binder) SetLogger(logger *MLogger) {
	w.logger.Store(logger)
}

// Logger 返回组件的 Logger，未设置时返回基于全局 Logger 的实例。
func (w *Binder) Logger() *MLogger {
	if l := w.logger.Load(); l != nil {
		return l
	}
	return With()
}
