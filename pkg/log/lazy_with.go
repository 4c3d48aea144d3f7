// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap/zapcore"
)

// lazyWithCore 推迟 core.With(fields) 到第一次真正写日志时执行，
// 未输出日志的 Logger 不必编码字段。参见 https://github.com/uber-go/zap/issues/1426。
type lazyWithCore struct {
	corePtr atomic.Pointer[zapcore.Core]
	once    sync.Once
	fields  []zapcore.Field
}

var _ zapcore.Core = (*lazyWithCore)(nil)

// NewLazyWith 返回在首次使用时才附加 fields 的 Core。
func NewLazyWith(core zapcore.Core, fields []zapcore.Field) zapcore.Core {
	c := &lazyWithCore{fields: fields}
	c.corePtr.Store(&core)
	return c
}

func (c *lazyWithCore) resolve() zapcore.Core {
	c.once.Do(func() {
		core := (*c.corePtr.Load()).With(c.fields)
		c.corePtr.Store(&core)
	})
	return *c.corePtr.Load()
}

// Enabled 只看级别，不触发字段编码。
func (c *lazyWithCore) Enabled(level zapcore.Level) bool {
	return (*c.corePtr.Load()).Enabled(level)
}

func (c *lazyWithCore) Sync() error {
	return c.resolve().Sync()
}

// Write 只会在 Check 之后被调用，此时 core 已带上字段。
func (c *lazyWithCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return (*c.corePtr.Load()).Write(entry, fields)
}

func (c *lazyWithCore) With(fields []zapcore.Field) zapcore.Core {
	return c.resolve().With(fields)
}

func (c *lazyWithCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return c.resolve().Check(e, ce)
}
