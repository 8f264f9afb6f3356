package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 页面模板
const (
	viewAllBooks    = "all_books"
	viewNewBook     = "new_book"
	viewBookDetails = "book_details"
)

// booksPath 图书列表路由（新建、编辑、删除成功后重定向到这里）
const booksPath = "/books"

// BookHandler 图书页面处理器（服务端渲染）
// 设计说明:
// 1. 处理器只做参数解析、调用用例、选择视图
// 2. 返回的error交给middleware.ErrorRenderer统一渲染
// 3. 字段校验失败不是错误,重新渲染表单(HTTP 200)
type BookHandler struct {
	listBooks   *appbook.ListBooksUseCase
	searchBooks *appbook.SearchBooksUseCase
	getBook     *appbook.GetBookUseCase
	publishBook *appbook.PublishBookUseCase
	editBook    *appbook.EditBookUseCase
	removeBook  *appbook.RemoveBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	searchBooks *appbook.SearchBooksUseCase,
	getBook *appbook.GetBookUseCase,
	publishBook *appbook.PublishBookUseCase,
	editBook *appbook.EditBookUseCase,
	removeBook *appbook.RemoveBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:   listBooks,
		searchBooks: searchBooks,
		getBook:     getBook,
		publishBook: publishBook,
		editBook:    editBook,
		removeBook:  removeBook,
	}
}

// Routes 图书页面路由表
// /books/search与/books/new是静态路径,优先于/books/:id匹配
func (h *BookHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/", h.Root},
		{http.MethodGet, "/books", middleware.Handle(h.List)},
		{http.MethodGet, "/books/search", middleware.Handle(h.Search)},
		{http.MethodGet, "/books/new", middleware.Handle(h.New)},
		{http.MethodPost, "/books/new", middleware.Handle(h.Create)},
		{http.MethodGet, "/books/:id", middleware.Handle(h.Show)},
		{http.MethodPost, "/books/:id", middleware.Handle(h.Update)},
		{http.MethodPost, "/books/:id/delete", middleware.Handle(h.Delete)},
	}
}

// Root 首页重定向到图书列表
func (h *BookHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, booksPath)
}

// List 图书列表（每页10本）
// 页码缺失或非法时显示第1页
func (h *BookHandler) List(c *gin.Context) error {
	page := dto.ParsePage(c.Query("page"))

	result, err := h.listBooks.Execute(c.Request.Context(), page)
	if err != nil {
		return err
	}

	return middleware.HTML(c, http.StatusOK, viewAllBooks, dto.NewListView(result))
}

// Search 搜索图书
// search参数为空时重定向到列表
func (h *BookHandler) Search(c *gin.Context) error {
	term := c.Query("search")
	if term == "" {
		c.Redirect(http.StatusFound, booksPath)
		return nil
	}

	books, err := h.searchBooks.Execute(c.Request.Context(), term)
	if err != nil {
		return err
	}

	return middleware.HTML(c, http.StatusOK, viewAllBooks, dto.NewSearchView(term, books))
}

// New 新建图书表单
func (h *BookHandler) New(c *gin.Context) error {
	return middleware.HTML(c, http.StatusOK, viewNewBook, dto.FormView{Title: "New Book"})
}

// Create 新建图书
func (h *BookHandler) Create(c *gin.Context) error {
	form, err := bindForm(c)
	if err != nil {
		return err
	}

	_, err = h.publishBook.Execute(c.Request.Context(), form.Fields())
	var validationErr *book.ValidationError
	if errors.As(err, &validationErr) {
		// 回填提交的内容
		return middleware.HTML(c, http.StatusOK, viewNewBook, dto.FormView{
			Title:  "New Book",
			Book:   dto.NewDraftView(validationErr.Draft),
			Errors: validationErr.Fields,
		})
	}
	if err != nil {
		return err
	}

	c.Redirect(http.StatusFound, booksPath)
	return nil
}

// Show 图书详情（同时是编辑表单）
func (h *BookHandler) Show(c *gin.Context) error {
	id, ok := dto.ParseID(c.Param("id"))
	if !ok {
		return book.ErrBookNotFound
	}

	b, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		return err
	}

	return middleware.HTML(c, http.StatusOK, viewBookDetails, dto.FormView{
		Title: b.Title,
		Book:  dto.NewBookView(b),
	})
}

// Update 编辑图书（只更新提交的字段）
func (h *BookHandler) Update(c *gin.Context) error {
	id, ok := dto.ParseID(c.Param("id"))
	if !ok {
		return book.ErrBookNotFound
	}

	form, err := bindForm(c)
	if err != nil {
		return err
	}

	_, err = h.editBook.Execute(c.Request.Context(), id, form.Fields())
	var validationErr *book.ValidationError
	if errors.As(err, &validationErr) {
		// 显示叠加了提交字段的记录,数据库中的记录不变
		return middleware.HTML(c, http.StatusOK, viewBookDetails, dto.FormView{
			Title:  "Error",
			Book:   dto.NewDraftView(validationErr.Draft),
			Errors: validationErr.Fields,
		})
	}
	if err != nil {
		return err
	}

	c.Redirect(http.StatusFound, booksPath)
	return nil
}

// Delete 删除图书
func (h *BookHandler) Delete(c *gin.Context) error {
	id, ok := dto.ParseID(c.Param("id"))
	if !ok {
		return book.ErrBookNotFound
	}

	if err := h.removeBook.Execute(c.Request.Context(), id); err != nil {
		return err
	}

	c.Redirect(http.StatusFound, booksPath)
	return nil
}

// bindForm 绑定表单（application/x-www-form-urlencoded或multipart）
func bindForm(c *gin.Context) (dto.BookForm, error) {
	var form dto.BookForm
	if err := c.ShouldBind(&form); err != nil {
		return form, apperrors.ErrBindError.WithCause(err)
	}
	return form, nil
}
