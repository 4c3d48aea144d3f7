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

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	jsonfmtMetricSubsystem = "jsonfmt"
)

var (
	JSONFmtMetricsRegisterOnce sync.Once

	JSONFmtEncodeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: rentitNamespace,
		Subsystem: jsonfmtMetricSubsystem,
		Name:      "encode_total",
		Help:      "顶层编码调用次数，按记录类型、输出形态与结果区分",
	}, []string{typeNameLabelName, shapeLabelName, statusLabelName})

	JSONFmtEncodeBytes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: rentitNamespace,
		Subsystem: jsonfmtMetricSubsystem,
		Name:      "encode_bytes",
		Help:      "成功编码后输出文本的字节数",
		Buckets:   sizeBuckets,
	}, []string{typeNameLabelName, shapeLabelName})

	JSONFmtEncodeLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: rentitNamespace,
		Subsystem: jsonfmtMetricSubsystem,
		Name:      "encode_latency",
		Help:      "单次顶层编码耗时，单位毫秒，精度到纳秒",
		Buckets:   latencyBuckets,
	}, []string{shapeLabelName})
)

// RegisterJSONFmtMetrics 将序列化相关的指标注册到 Prometheus Registerer 中。
func RegisterJSONFmtMetrics(registry prometheus.Registerer) {
	JSONFmtMetricsRegisterOnce.Do(func() {
		registry.MustRegister(JSONFmtEncodeTotal)
		registry.MustRegister(JSONFmtEncodeBytes)
		registry.MustRegister(JSONFmtEncodeLatency)
	})
}
