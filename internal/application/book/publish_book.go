package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// PublishBookUseCase 新建图书用例
// 设计说明:
// 1. 应用层负责用例编排,字段校验由领域服务负责
// 2. 校验失败返回*book.ValidationError(携带未保存的Draft用于回填表单)
type PublishBookUseCase struct {
	bookService book.Service
}

// NewPublishBookUseCase 创建新建图书用例
func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行新建图书用例
func (uc *PublishBookUseCase) Execute(ctx context.Context, fields book.Fields) (b *book.Book, err error) {
	ctx, span := startSpan(ctx, "PublishBook")
	defer func() { finish(span, "create", err) }()

	b, err = uc.bookService.PublishBook(ctx, fields)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("book.id", int64(b.ID)))
	return b, nil
}
