package middleware

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

const testTemplates = `
{{define "error"}}error:{{.Title}}{{end}}
{{define "page_not_found"}}page_not_found:{{.Title}}{{end}}
{{define "server_error"}}server_error:{{.RequestID}}{{end}}
`

func init() {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()
}

// newTestEngine 与router相同的中间件顺序
func newTestEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	r.Use(RequestLogger(log), Tracing(), Metrics(), ErrorRenderer(log), Recovery(log))
	r.NoRoute(NotFound())
	return r
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestErrorRenderer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTestEngine(zap.New(core))

	r.GET("/ok", Handle(func(c *gin.Context) error {
		c.String(http.StatusOK, "ok")
		return nil
	}))
	r.GET("/missing", Handle(func(c *gin.Context) error {
		return apperrors.ErrBookNotFound
	}))
	r.GET("/bind", Handle(func(c *gin.Context) error {
		return apperrors.ErrBindError
	}))
	r.GET("/fail", Handle(func(c *gin.Context) error {
		return errors.New("database is locked")
	}))

	testCases := []struct {
		target     string
		wantStatus int
		wantBody   string
	}{
		{"/ok", http.StatusOK, "ok"},
		{"/missing", http.StatusNotFound, "error:Book Not Found"},
		{"/nowhere", http.StatusNotFound, "page_not_found:Page Not Found"},
		{"/bind", http.StatusBadRequest, "server_error:"},
		{"/fail", http.StatusInternalServerError, "server_error:"},
	}

	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			w := serve(r, tc.target)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
			assert.NotContains(t, w.Body.String(), "database is locked")
		})
	}

	// 500的错误详情写入日志
	failed := logs.FilterMessage("request failed").All()
	if assert.Len(t, failed, 1) {
		assert.Contains(t, failed[0].ContextMap()["error"], "database is locked")
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTestEngine(zap.New(core))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(r, "/panic")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "server_error:")
	assert.Len(t, logs.FilterMessage("panic recovered").All(), 1)
	failed := logs.FilterMessage("request failed").All()
	if assert.Len(t, failed, 1) {
		assert.Equal(t, "[50000] GET /panic 处理失败: panic: boom", failed[0].ContextMap()["error"])
	}

	// 进程继续处理后续请求
	w = serve(r, "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTestEngine(zap.New(core))
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := serve(r, "/ok")

	requestID := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, requestID, "未传入时生成请求ID")
	assert.Equal(t, requestID, w.Body.String())

	entries := logs.FilterMessage("http request").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, requestID, fields["request_id"])
		assert.Equal(t, int64(http.StatusOK), fields["status"])
		assert.Equal(t, "/ok", fields["path"])
	}

	// 服务端错误记为Error级别，错误页显示请求ID
	r.GET("/fail", Handle(func(c *gin.Context) error {
		return errors.New("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
	assert.Contains(t, w.Body.String(), "server_error:req-42")
	assert.Len(t, logs.FilterMessage("http request").FilterField(zap.Int("status", 500)).All(), 1)
}

// useRecorder 把全局Provider替换为内存记录器，测试结束后恢复
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func TestTracing(t *testing.T) {
	sr := useRecorder(t)
	core, logs := observer.New(zap.InfoLevel)
	r := newTestEngine(zap.New(core))
	r.GET("/fail", Handle(func(c *gin.Context) error {
		return errors.New("database is locked")
	}))

	w := serve(r, "/fail")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /fail", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	traceID := span.SpanContext().TraceID().String()
	spanID := span.SpanContext().SpanID().String()

	// 访问日志与错误日志都带上同一个trace_id
	access := logs.FilterMessage("http request").All()
	require.Len(t, access, 1)
	assert.Equal(t, traceID, access[0].ContextMap()["trace_id"])

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, traceID, failed[0].ContextMap()["trace_id"])
	assert.Equal(t, spanID, failed[0].ContextMap()["span_id"])

	// 未匹配的路由
	serve(r, "/nowhere")
	spans = sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET unmatched", spans[1].Name())
}

func TestTracing_NoopProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(noop.NewTracerProvider())
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	core, logs := observer.New(zap.InfoLevel)
	r := newTestEngine(zap.New(core))
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	serve(r, "/ok")

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap(), "trace_id", "未初始化Tracer时没有有效Span")
}

func TestHTML_RenderError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newTestEngine(zap.New(core))
	r.GET("/broken", Handle(func(c *gin.Context) error {
		return HTML(c, http.StatusOK, "missing", nil)
	}))
	r.GET("/page", Handle(func(c *gin.Context) error {
		return HTML(c, http.StatusOK, "error", map[string]string{"Title": "ok"})
	}))

	w := serve(r, "/broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "server_error:")

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	fields := failed[0].ContextMap()
	assert.Equal(t, int64(apperrors.ErrCodeRenderError), fields["code"])
	assert.Contains(t, fields["error"], "render missing")

	w = serve(r, "/page")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "error:ok", w.Body.String())
}
