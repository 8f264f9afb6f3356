package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
	}
}

// Execute 根据ID获取图书,不存在返回book.ErrBookNotFound
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (b *book.Book, err error) {
	ctx, span := startSpan(ctx, "GetBook")
	defer func() { finish(span, "get", err) }()

	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	return uc.bookService.GetBook(ctx, id)
}
