package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	// 重复调用不应panic（promauto重复注册会panic）
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if BookOperationsTotal == nil {
		t.Error("BookOperationsTotal未初始化")
	}
	if BookCountCacheTotal == nil {
		t.Error("BookCountCacheTotal未初始化")
	}
}

// TestRecordBookOperation 测试图书操作计数
func TestRecordBookOperation(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"operation": "create", "result": "success"}
	before := getCounterVecValue(t, BookOperationsTotal, labels)

	RecordBookOperation("create", "success")
	RecordBookOperation("create", "success")
	RecordBookOperation("create", "invalid")

	if got := getCounterVecValue(t, BookOperationsTotal, labels) - before; got != 2 {
		t.Errorf("create/success计数错误: expected=2, got=%f", got)
	}
}

// TestRecordCountCache 测试缓存命中计数
func TestRecordCountCache(t *testing.T) {
	InitMetrics()

	hit := map[string]string{"result": "hit"}
	miss := map[string]string{"result": "miss"}
	hitBefore := getCounterVecValue(t, BookCountCacheTotal, hit)
	missBefore := getCounterVecValue(t, BookCountCacheTotal, miss)

	RecordCountCache("hit")
	RecordCountCache("miss")
	RecordCountCache("hit")

	if got := getCounterVecValue(t, BookCountCacheTotal, hit) - hitBefore; got != 2 {
		t.Errorf("hit计数错误: expected=2, got=%f", got)
	}
	if got := getCounterVecValue(t, BookCountCacheTotal, miss) - missBefore; got != 1 {
		t.Errorf("miss计数错误: expected=1, got=%f", got)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	SetGauge(HTTPRequestsInProgress, 0)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	if value := getGaugeValue(t, HTTPRequestsInProgress); value != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", value)
	}

	DecGauge(HTTPRequestsInProgress)
	if value := getGaugeValue(t, HTTPRequestsInProgress); value != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", value)
	}

	SetGauge(HTTPRequestsInProgress, 0)
}

// TestHistogram 测试搜索命中数分布
func TestHistogram(t *testing.T) {
	InitMetrics()

	countBefore := getHistogramCount(t, BookSearchResults)
	sumBefore := getHistogramSum(t, BookSearchResults)

	ObserveHistogram(BookSearchResults, 0)
	ObserveHistogram(BookSearchResults, 3)
	ObserveHistogram(BookSearchResults, 12)

	if count := getHistogramCount(t, BookSearchResults) - countBefore; count != 3 {
		t.Errorf("Histogram观测次数错误: expected=3, got=%d", count)
	}
	if sum := getHistogramSum(t, BookSearchResults) - sumBefore; sum != 15 {
		t.Errorf("Histogram总和错误: expected=15, got=%f", sum)
	}
}

// TestRealWorldScenario 模拟一组HTTP请求
func TestRealWorldScenario(t *testing.T) {
	InitMetrics()

	SetGauge(HTTPRequestsInProgress, 0)
	durationLabels := map[string]string{"method": "GET", "path": "/books/:id"}
	countBefore := getHistogramVecCount(t, HTTPRequestDuration, durationLabels)

	for i := 0; i < 5; i++ {
		IncGauge(HTTPRequestsInProgress)

		start := time.Now()
		time.Sleep(time.Millisecond)

		ObserveHistogramVec(HTTPRequestDuration, durationLabels, time.Since(start).Seconds())
		IncCounterVec(HTTPRequestsTotal, map[string]string{
			"method": "GET",
			"path":   "/books/:id",
			"status": "200",
		})

		DecGauge(HTTPRequestsInProgress)
	}

	if inProgress := getGaugeValue(t, HTTPRequestsInProgress); inProgress != 0 {
		t.Errorf("正在处理的请求数错误: expected=0, got=%f", inProgress)
	}
	if count := getHistogramVecCount(t, HTTPRequestDuration, durationLabels) - countBefore; count != 5 {
		t.Errorf("HistogramVec观测次数错误: expected=5, got=%d", count)
	}
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

// 辅助函数：获取Histogram总和
func getHistogramSum(t *testing.T, histogram prometheus.Histogram) float64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleSum()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
