package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// EditBookUseCase 编辑图书用例
// 设计说明:
// 1. 只覆盖请求中提交的字段(部分更新)
// 2. 先查后改:图书不存在返回book.ErrBookNotFound
// 3. 校验失败时数据库记录保持不变
type EditBookUseCase struct {
	bookService book.Service
}

// NewEditBookUseCase 创建编辑图书用例
func NewEditBookUseCase(bookService book.Service) *EditBookUseCase {
	return &EditBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行编辑图书用例
func (uc *EditBookUseCase) Execute(ctx context.Context, id uint, fields book.Fields) (b *book.Book, err error) {
	ctx, span := startSpan(ctx, "EditBook")
	defer func() { finish(span, "update", err) }()

	span.SetAttributes(attribute.Int64("book.id", int64(id)))

	return uc.bookService.EditBook(ctx, id, fields)
}
