package book

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// tracerName 用例Span所属的Tracer
const tracerName = "book-catalog"

// 操作结果(book_operations_total的result标签)
const (
	resultSuccess  = "success"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultError    = "error"
)

// startSpan 为用例创建Span
func startSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	return tracing.StartSpan(ctx, tracerName, operation)
}

// finish 记录用例结果(指标+Span状态)并结束Span
func finish(span trace.Span, operation string, err error) {
	defer span.End()

	result := classify(err)
	metrics.RecordBookOperation(operation, result)

	switch result {
	case resultSuccess:
		span.SetStatus(codes.Ok, "")
	case resultError:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	default:
		// 校验失败与不存在属于正常业务结果,只打标记
		span.AddEvent(result)
	}
}

// classify 错误 → 结果标签
func classify(err error) string {
	var validationErr *book.ValidationError
	switch {
	case err == nil:
		return resultSuccess
	case errors.As(err, &validationErr):
		return resultInvalid
	case errors.Is(err, book.ErrBookNotFound):
		return resultNotFound
	default:
		return resultError
	}
}
