package jsonfmt

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lk2023060901/rentit-go/pkg/log"
	"github.com/lk2023060901/rentit-go/pkg/util/conc"
	"github.com/lk2023060901/rentit-go/pkg/util/merr"
)

// EncodeEach 在协程池上把每条记录分别编码为独立的 JSON 文档，结果顺序与 values 一致。
//
// 单条记录的编码仍是单线程的。任一记录失败或 ctx 被取消时返回错误且不返回任何结果。
func EncodeEach[T Record](ctx context.Context, s *Serializer, pool *conc.Pool[string], values []T) ([]string, error) {
	if pool == nil {
		return nil, merr.WrapErrParameterMissing("pool")
	}

	futures := make([]*conc.Future[string], 0, len(values))
	for _, v := range values {
		if err := ctx.Err(); err != nil {
			// 已提交的任务仍需等待结束，避免泄露。
			_ = conc.AwaitAll(futures...)
			return nil, err
		}
		rec := Record(v)
		futures = append(futures, pool.Submit(func() (string, error) {
			return s.Encode(rec)
		}))
	}
	if err := conc.AwaitAll(futures...); err != nil {
		log.Ctx(ctx).Warn("encode batch failed", zap.Int("size", len(values)), zap.Error(err))
		return nil, err
	}
	return lo.Map(futures, func(f *conc.Future[string], _ int) string {
		return f.Value()
	}), nil
}
