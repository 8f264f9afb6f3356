package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装字段校验与"先查后改"的业务规则
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// ListBooks 分页查询(每页PageSize条),同时返回总数
	ListBooks(ctx context.Context, page int) (*Page, error)

	// SearchBooks 子串搜索,term为空时返回空结果
	SearchBooks(ctx context.Context, term string) ([]*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// PublishBook 新建图书
	// 校验失败返回*ValidationError,不写库
	PublishBook(ctx context.Context, f Fields) (*Book, error)

	// EditBook 更新图书(只覆盖提交的字段)
	// 图书不存在返回ErrBookNotFound;校验失败返回*ValidationError,原记录不变
	EditBook(ctx context.Context, id uint, f Fields) (*Book, error)

	// DeleteBook 删除图书,不存在返回ErrBookNotFound
	DeleteBook(ctx context.Context, id uint) error
}

// Page 一页图书
type Page struct {
	Books []*Book
	Total int64 // 全部图书数量(与分页无关)
	Page  int
}

// TotalPages 总页数
func (p *Page) TotalPages() int {
	return TotalPages(p.Total)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListBooks 分页查询
func (s *service) ListBooks(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.List(ctx, ListParams{
		Limit:  PageSize,
		Offset: Offset(page),
	})
	if err != nil {
		return nil, err
	}

	return &Page{Books: books, Total: total, Page: page}, nil
}

// SearchBooks 子串搜索
func (s *service) SearchBooks(ctx context.Context, term string) ([]*Book, error) {
	if term == "" {
		return nil, nil
	}
	return s.repo.Search(ctx, term)
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	if id == 0 {
		return nil, ErrBookNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// PublishBook 新建图书
func (s *service) PublishBook(ctx context.Context, f Fields) (*Book, error) {
	draft := Build(nil, f)
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	b := draft.Book()
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// EditBook 更新图书
func (s *service) EditBook(ctx context.Context, id uint, f Fields) (*Book, error) {
	// 1. 先确认图书存在
	existing, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 叠加提交字段并校验
	draft := Build(existing, f)
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	// 3. 持久化
	b := draft.Book()
	b.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.GetBook(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
