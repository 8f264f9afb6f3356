package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// SearchBooksUseCase 图书搜索用例
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		bookService: bookService,
	}
}

// Execute 书名/作者/类型/年份任一包含term的图书
// term为空时返回空结果(HTTP层在此之前就会重定向)
func (uc *SearchBooksUseCase) Execute(ctx context.Context, term string) (books []*book.Book, err error) {
	ctx, span := startSpan(ctx, "SearchBooks")
	defer func() { finish(span, "search", err) }()

	books, err = uc.bookService.SearchBooks(ctx, term)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("book.search.results", len(books)))
	if metrics.BookSearchResults != nil {
		metrics.ObserveHistogram(metrics.BookSearchResults, float64(len(books)))
	}
	return books, nil
}
