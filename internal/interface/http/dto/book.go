package dto

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// timeLayout JSON接口中的时间格式
const timeLayout = "2006-01-02 15:04:05"

// BookForm 新建/编辑图书的表单
// 字段为指针:请求中没有的字段保持nil,编辑时不覆盖原值
type BookForm struct {
	Title  *string `form:"title" json:"title"`
	Author *string `form:"author" json:"author"`
	Genre  *string `form:"genre" json:"genre"`
	Year   *string `form:"year" json:"year"`
}

// Fields 表单 → 领域字段集
func (f BookForm) Fields() book.Fields {
	return book.Fields{
		Title:  f.Title,
		Author: f.Author,
		Genre:  f.Genre,
		Year:   f.Year,
	}
}

// ParsePage 解析页码
// 缺失、非数字、0或负数都按第1页处理;超过book.MaxPage(含int溢出)按book.MaxPage处理
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && page > 0 {
		return book.MaxPage
	}
	if err != nil || page < 1 {
		return 1
	}
	if page > book.MaxPage {
		return book.MaxPage
	}
	return page
}

// ParseID 解析路径中的图书ID,非正整数返回false
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// =========================================
// 页面视图模型
// =========================================

// BookView 模板中使用的图书
type BookView struct {
	ID     uint
	Title  string
	Author string
	Genre  string
	Year   string
}

// NewBookView 已保存的图书 → 视图
func NewBookView(b *book.Book) BookView {
	return BookView{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Year:   b.YearText(),
	}
}

// NewDraftView 未保存的图书 → 视图(保留提交时的原文)
func NewDraftView(d book.Draft) BookView {
	return BookView{
		ID:     d.ID,
		Title:  d.Title,
		Author: d.Author,
		Genre:  d.Genre,
		Year:   d.Year,
	}
}

// pageWindow 当前页两侧显示的页码数量
const pageWindow = 2

// Pagination 分页导航
// Numbers只包含当前页附近的页码,窗口外的首页/末页由First/Last单独给出
type Pagination struct {
	Page    int
	Pages   int
	Numbers []int
	Prev    int
	Next    int
	First   int // 窗口不含第1页时为1
	Last    int // 窗口不含最后一页时为Pages
}

// HasPrev 是否有上一页
func (p Pagination) HasPrev() bool { return p.Prev > 0 }

// HasNext 是否有下一页
func (p Pagination) HasNext() bool { return p.Next > 0 }

// HasFirst 是否单独显示第1页
func (p Pagination) HasFirst() bool { return p.First > 0 }

// HasLast 是否单独显示最后一页
func (p Pagination) HasLast() bool { return p.Last > 0 }

// NewPagination 根据当前页与总页数生成导航
// 页码超出范围时以最后一页为中心
func NewPagination(page, pages int) *Pagination {
	p := &Pagination{Page: page, Pages: pages}

	center := min(max(page, 1), pages)
	start := max(1, center-pageWindow)
	end := min(pages, center+pageWindow)
	for i := start; i <= end; i++ {
		p.Numbers = append(p.Numbers, i)
	}
	if start > 1 {
		p.First = 1
	}
	if end < pages {
		p.Last = pages
	}

	if page > 1 {
		p.Prev = min(page-1, pages)
	}
	if page < pages {
		p.Next = page + 1
	}
	return p
}

// ListView all_books页面
// 搜索结果不显示总数与分页(HasCount为false)
type ListView struct {
	Title         string
	Books         []BookView
	NumberOfBooks int64
	HasCount      bool
	Search        string
	Pagination    *Pagination
}

// NewListView 分页列表
func NewListView(p *book.Page) ListView {
	return ListView{
		Title:         "Books",
		Books:         toBookViews(p.Books),
		NumberOfBooks: p.Total,
		HasCount:      true,
		Pagination:    NewPagination(p.Page, p.TotalPages()),
	}
}

// NewSearchView 搜索结果
func NewSearchView(term string, books []*book.Book) ListView {
	return ListView{
		Title:  "Books",
		Books:  toBookViews(books),
		Search: term,
	}
}

// FormView new_book与book_details页面
type FormView struct {
	Title  string
	Book   BookView
	Errors []book.FieldError
}

// ErrorView error、page_not_found、server_error页面
type ErrorView struct {
	Title     string
	RequestID string // 服务端错误页展示,便于按请求ID查日志
}

func toBookViews(books []*book.Book) []BookView {
	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = NewBookView(b)
	}
	return views
}

// =========================================
// JSON接口DTO
// =========================================

// BookResponse HTTP图书响应
type BookResponse struct {
	ID        uint   `json:"id" example:"1"`
	Title     string `json:"title" example:"The Hobbit"`
	Author    string `json:"author" example:"J.R.R. Tolkien"`
	Genre     string `json:"genre" example:"Fantasy"`
	Year      *int   `json:"year" example:"1937"` // 未填写时为null
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// NewBookResponse 领域实体 → JSON响应
func NewBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Year:      b.Year,
		CreatedAt: formatTime(b.CreatedAt),
		UpdatedAt: formatTime(b.UpdatedAt),
	}
}

// NewBookResponses 批量转换
func NewBookResponses(books []*book.Book) []BookResponse {
	list := make([]BookResponse, len(books))
	for i, b := range books {
		list[i] = NewBookResponse(b)
	}
	return list
}

// ListBooksRequest JSON列表请求
type ListBooksRequest struct {
	Page string `form:"page" example:"1"`
}

// SearchBooksRequest JSON搜索请求
type SearchBooksRequest struct {
	Search string `form:"search" binding:"required,max=255" example:"Hobbit"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
