package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// tracerName HTTP层Span所属的Tracer
const tracerName = "book-catalog/http"

// Tracing 为每个请求创建根Span
// 1. 沿用上游traceparent Header中的链路
// 2. Span名称为"方法 路由模板"，未匹配的路由记为unmatched
// 3. 5xx响应标记为codes.Error
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracing.StartSpan(ctx, tracerName, c.Request.Method+" "+route)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if err := c.Errors.Last(); err != nil {
			span.RecordError(err.Err)
		}
		if status >= 500 {
			span.SetStatus(codes.Error, "")
		}
	}
}

// requestFields 日志中关联请求与链路的字段
// 没有有效Span时不输出trace_id/span_id
func requestFields(c *gin.Context) []zap.Field {
	fields := []zap.Field{zap.String("request_id", GetRequestID(c))}
	ctx := c.Request.Context()
	if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
		fields = append(fields,
			zap.String("trace_id", traceID),
			zap.String("span_id", tracing.ExtractSpanID(ctx)),
		)
	}
	return fields
}
