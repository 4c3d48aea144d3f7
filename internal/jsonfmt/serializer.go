package jsonfmt

import (
	"bytes"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/lk2023060901/rentit-go/internal/json"
	"github.com/lk2023060901/rentit-go/pkg/log"
	"github.com/lk2023060901/rentit-go/pkg/metrics"
	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

var _ Marshaler = (*Serializer)(nil)

// Serializer 将登记过的记录编码为紧凑的 JSON 文本。
//
// Serializer 只持有不可变配置与注册表，可在多个 goroutine 中并发使用；
// 不会保留调用方传入的记录。
type Serializer struct {
	log.Binder

	registry *Registry
	cfg      Config
	api      jsoniter.API
}

// NewSerializer 创建 Serializer。registry 不能为空。
func NewSerializer(registry *Registry, opts ...Option) (*Serializer, error) {
	if registry == nil {
		return nil, merr.WrapErrParameterMissing("registry")
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Serializer{
		registry: registry,
		cfg:      cfg,
		api:      jsoniter.Config{EscapeHTML: cfg.EscapeHTML}.Froze(),
	}
	s.SetLogger(log.With(log.FieldComponent("jsonfmt")).WithRateGroup("jsonfmt.reject", 1, 60))
	return s, nil
}

// Registry 返回 Serializer 使用的注册表。
func (s *Serializer) Registry() *Registry {
	return s.registry
}

// Config 返回 Serializer 的生效配置。
func (s *Serializer) Config() Config {
	return s.cfg
}

// Encode 将 rec 编码为 JSON 对象文本。
func (s *Serializer) Encode(rec Record) (string, error) {
	out, err := s.EncodeBytes(rec)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeBytes 与 Encode 相同，返回调用方独占的字节切片。
func (s *Serializer) EncodeBytes(rec Record) ([]byte, error) {
	return s.encodeObject(rec, nil)
}

// EncodeProjected 只输出 keep 中列出的顶层字段；keep 为 nil 时等同于 Encode。
// rec 本身不会被修改。
func (s *Serializer) EncodeProjected(rec Record, keep KeepSet) (string, error) {
	out, err := s.encodeObject(rec, keep)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeReader 返回可 Seek 的编码结果。
func (s *Serializer) EncodeReader(rec Record) (*bytes.Reader, error) {
	out, err := s.encodeObject(rec, nil)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out), nil
}

func (s *Serializer) EncodeProjectedReader(rec Record, keep KeepSet) (*bytes.Reader, error) {
	out, err := s.encodeObject(rec, keep)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(out), nil
}

// Marshal 是通用入口，支持 Record、[]Record、记录切片、[]string 以及整数切片，
// 其他类型返回 merr.ErrTypeNotSupported。
func (s *Serializer) Marshal(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, merr.WrapErrParameterMissing("value")
	case Record:
		return s.EncodeBytes(val)
	case []Record:
		return s.encodeArray(val, nil)
	case []string:
		out, err := EncodeStrings(val)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case []uint:
		return []byte(EncodeUints(val)), nil
	case []uint8:
		return []byte(EncodeUints(val)), nil
	case []uint16:
		return []byte(EncodeUints(val)), nil
	case []uint32:
		return []byte(EncodeUints(val)), nil
	case []uint64:
		return []byte(EncodeUints(val)), nil
	case []int:
		return []byte(EncodeInts(val)), nil
	case []int8:
		return []byte(EncodeInts(val)), nil
	case []int16:
		return []byte(EncodeInts(val)), nil
	case []int32:
		return []byte(EncodeInts(val)), nil
	case []int64:
		return []byte(EncodeInts(val)), nil
	}

	// 具体记录类型的切片，例如 []*model.Product。
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Implements(recordIface) {
		records := make([]Record, rv.Len())
		for i := range records {
			records[i], _ = rv.Index(i).Interface().(Record)
		}
		return s.encodeArray(records, nil)
	}
	return nil, merr.WrapErrTypeNotSupported(rv.Type().String(), "marshal")
}

var recordIface = reflect.TypeOf((*Record)(nil)).Elem()

func (s *Serializer) encodeObject(rec Record, keep KeepSet) ([]byte, error) {
	var typeName string
	return s.run(metrics.ObjectShape, &typeName, func(e *encoder) error {
		if err := e.admit(rec); err != nil {
			return err
		}
		typeName = rec.TypeName()
		return e.encodeRecord(Project(rec, keep), 1)
	})
}

func (s *Serializer) encodeArray(records []Record, keep KeepSet) ([]byte, error) {
	var typeName string
	return s.run(metrics.ArrayShape, &typeName, func(e *encoder) error {
		// 先校验全部元素，保证失败时不产生任何输出。
		for i, rec := range records {
			if err := e.admit(rec); err != nil {
				return errors.Wrapf(err, "element %d", i)
			}
		}
		if len(records) > 0 {
			typeName = records[0].TypeName()
		}

		e.stream.WriteArrayStart()
		for i, rec := range records {
			if i > 0 {
				e.stream.WriteMore()
			}
			if err := e.encodeRecord(Project(rec, keep), 1); err != nil {
				return err
			}
		}
		e.stream.WriteArrayEnd()
		return nil
	})
}

// run 执行一次顶层编码：借用 stream、捕获 panic、校验输出并上报指标。
// 出错时丢弃全部输出。
func (s *Serializer) run(shape string, typeName *string, fn func(e *encoder) error) ([]byte, error) {
	start := time.Now()
	stream := s.api.BorrowStream(nil)
	defer s.api.ReturnStream(stream)

	e := newEncoder(&s.cfg, s.registry, stream)
	err := e.guard(func() error { return fn(e) })
	if err == nil && stream.Error != nil {
		err = merr.WrapErrEncodingFailed(*typeName, "", stream.Error)
	}

	var out []byte
	if err == nil {
		out = append([]byte(nil), stream.Buffer()...)
		if s.cfg.VerifyOutput && !json.Valid(out) {
			err = merr.WrapErrOutputVerifyFail(*typeName, len(out))
			out = nil
		}
	}
	s.observe(shape, *typeName, len(out), time.Since(start), err)
	return out, err
}

// latencyMs 把耗时换算为带小数的毫秒数，单次编码通常只有几微秒。
func latencyMs(cost time.Duration) float64 {
	return float64(cost) / float64(time.Millisecond)
}

func (s *Serializer) observe(shape, typeName string, size int, cost time.Duration, err error) {
	metrics.JSONFmtEncodeLatency.WithLabelValues(shape).Observe(latencyMs(cost))

	switch {
	case err == nil:
		metrics.JSONFmtEncodeTotal.WithLabelValues(typeName, shape, metrics.SuccessLabel).Inc()
		metrics.JSONFmtEncodeBytes.WithLabelValues(typeName, shape).Observe(float64(size))
		s.Logger().Debug("encode done",
			log.FieldTypeName(typeName),
			zap.String("shape", shape),
			zap.Int("size", size),
			zap.Duration("cost", cost))
	case errors.Is(err, merr.ErrTypeNotSupported), errors.Is(err, merr.ErrParameterMissing):
		metrics.JSONFmtEncodeTotal.WithLabelValues(typeName, shape, metrics.RejectLabel).Inc()
		s.Logger().RatedWarn(1, "encode rejected",
			zap.String("shape", shape),
			zap.Error(err))
	default:
		metrics.JSONFmtEncodeTotal.WithLabelValues(typeName, shape, metrics.FailLabel).Inc()
		s.Logger().RatedWarn(1, "encode failed",
			log.FieldTypeName(typeName),
			zap.String("shape", shape),
			zap.Error(err))
	}
}
