// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter（计数器）：只增不减，如HTTP请求总数、图书创建总数
//   - Gauge（仪表盘）：可增可减，如正在处理的请求数
//   - Histogram（直方图）：观测值分布，如请求耗时
//
// # 使用示例
//
//	// 1. 程序启动时初始化
//	metrics.InitMetrics()
//
//	// 2. 暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 业务代码中记录
//	metrics.IncCounterVec(metrics.BookOperationsTotal, map[string]string{
//	    "operation": "create",
//	    "result":    "success",
//	})
//
// # 命名规范
//
//   - Counter以_total结尾
//   - Histogram以单位结尾（_seconds）
//   - 标签只使用有限取值（method、路由模板、status），不要用图书ID
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/books/:id）、status（200/302/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 图书业务指标

	// BookOperationsTotal 图书操作总数（Counter）
	// 标签：operation（list/search/get/create/update/delete）、result（success/invalid/not_found/error）
	BookOperationsTotal *prometheus.CounterVec

	// BookSearchResults 单次搜索命中数量（Histogram）
	BookSearchResults prometheus.Histogram

	// 缓存指标

	// BookCountCacheTotal 图书总数缓存访问次数（Counter）
	// 标签：result（hit/miss/error/skipped/stale，skipped表示熔断中未访问Redis，stale表示查库期间缓存被失效而放弃回填）
	BookCountCacheTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，promauto会把指标注册到默认Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 图书业务指标
	BookOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_operations_total",
			Help: "图书操作总数",
		},
		[]string{"operation", "result"},
	)

	BookSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "book_search_results",
			Help:    "单次搜索命中的图书数量",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500},
		},
	)

	// 缓存指标
	BookCountCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_count_cache_total",
			Help: "图书总数缓存访问次数",
		},
		[]string{"result"},
	)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// RecordBookOperation 记录一次图书操作结果
func RecordBookOperation(operation, result string) {
	if BookOperationsTotal == nil {
		return
	}
	IncCounterVec(BookOperationsTotal, map[string]string{
		"operation": operation,
		"result":    result,
	})
}

// RecordCountCache 记录一次总数缓存访问
func RecordCountCache(result string) {
	if BookCountCacheTotal == nil {
		return
	}
	IncCounterVec(BookCountCacheTotal, map[string]string{"result": result})
}
