package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// RemoveBookUseCase 删除图书用例
type RemoveBookUseCase struct {
	bookService book.Service
}

// NewRemoveBookUseCase 创建删除图书用例
func NewRemoveBookUseCase(bookService book.Service) *RemoveBookUseCase {
	return &RemoveBookUseCase{
		bookService: bookService,
	}
}

// Execute 删除图书,不存在返回book.ErrBookNotFound
func (uc *RemoveBookUseCase) Execute(ctx context.Context, id uint) (err error) {
	ctx, span := startSpan(ctx, "RemoveBook")
	defer func() { finish(span, "delete", err) }()

	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	return uc.bookService.DeleteBook(ctx, id)
}
