package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 每页固定book.PageSize条,按ID升序
// 2. 页码小于1按第1页处理
// 3. 同时返回全部图书数量(用于"共N本"和分页导航)
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, page int) (result *book.Page, err error) {
	ctx, span := startSpan(ctx, "ListBooks")
	defer func() { finish(span, "list", err) }()

	span.SetAttributes(attribute.Int("book.page", page))

	return uc.bookService.ListBooks(ctx, page)
}
