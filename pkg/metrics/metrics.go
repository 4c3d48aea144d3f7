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
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// rentitNamespace 是当前项目所有 Prometheus 指标使用的命名空间。
	rentitNamespace = "rentit"

	// 以下为当前使用的通用标签名。
	typeNameLabelName = "type_name"
	statusLabelName   = "status"
	shapeLabelName    = "shape"

	SuccessLabel = "success"
	FailLabel    = "fail"
	RejectLabel  = "reject"

	ObjectShape = "object"
	ArrayShape  = "array"
	ScalarShape = "scalar"
)

var (
	// latencyBuckets 为编码耗时直方图的桶划分，单位为毫秒，从 5 微秒起步。
	// 实际桶分布为：
	// [0.005 0.01 0.02 0.04 0.08 0.16 0.32 0.64 1.28 2.56 5.12 10.24 20.48 40.96 81.92 163.84 327.68 655.36]
	latencyBuckets = prometheus.ExponentialBuckets(0.005, 2, 18)

	// sizeBuckets 为输出大小的桶划分，单位为字节。
	sizeBuckets = prometheus.ExponentialBuckets(64, 4, 10)

	metricRegisterer prometheus.Registerer
)

// GetRegisterer 返回全局 Prometheus Registerer。
// 如果尚未通过 Register 显式设置，则返回 prometheus.DefaultRegisterer。
func GetRegisterer() prometheus.Registerer {
	if metricRegisterer == nil {
		return prometheus.DefaultRegisterer
	}
	return metricRegisterer
}

// Register 注册当前定义的所有指标。
// 通常应在进程启动时调用一次。
func Register(r prometheus.Registerer) {
	RegisterJSONFmtMetrics(r)
	metricRegisterer = r
}
