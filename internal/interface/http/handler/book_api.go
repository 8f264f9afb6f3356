package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookAPIHandler 图书只读JSON接口
// 与页面共用同一组用例,错误通过response.Error返回业务错误码
type BookAPIHandler struct {
	listBooks   *appbook.ListBooksUseCase
	searchBooks *appbook.SearchBooksUseCase
	getBook     *appbook.GetBookUseCase
}

// NewBookAPIHandler 创建图书JSON接口处理器
func NewBookAPIHandler(
	listBooks *appbook.ListBooksUseCase,
	searchBooks *appbook.SearchBooksUseCase,
	getBook *appbook.GetBookUseCase,
) *BookAPIHandler {
	return &BookAPIHandler{
		listBooks:   listBooks,
		searchBooks: searchBooks,
		getBook:     getBook,
	}
}

// Routes JSON接口路由表（挂载在/api/v1下）
func (h *BookAPIHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/books", h.ListBooks},
		{http.MethodGet, "/books/search", h.SearchBooks},
		{http.MethodGet, "/books/:id", h.GetBook},
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按ID升序分页查询,每页10本;page缺失或非法时返回第1页
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码(从1开始)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.BookResponse}}
// @Failure      500 {object} response.Response "系统内部错误"
// @Router       /books [get]
func (h *BookAPIHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	_ = c.ShouldBindQuery(&req)

	result, err := h.listBooks.Execute(c.Request.Context(), dto.ParsePage(req.Page))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.NewBookResponses(result.Books), result.Total, result.Page, book.PageSize)
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  书名、作者、类型或年份包含关键词的全部图书
// @Tags         图书
// @Produce      json
// @Param        search query string true "关键词"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      500 {object} response.Response "系统内部错误"
// @Router       /books/search [get]
func (h *BookAPIHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, http.StatusBadRequest, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	books, err := h.searchBooks.Execute(c.Request.Context(), req.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponses(books))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      500 {object} response.Response "系统内部错误"
// @Router       /books/{id} [get]
func (h *BookAPIHandler) GetBook(c *gin.Context) {
	id, ok := dto.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, book.ErrBookNotFound)
		return
	}

	b, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookResponse(b))
}
