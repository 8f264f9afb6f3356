package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 查不到记录时返回ErrBookNotFound
type Repository interface {
	// Count 图书总数
	Count(ctx context.Context) (int64, error)

	// List 按ID升序分页查询
	List(ctx context.Context, params ListParams) ([]*Book, error)

	// Search 书名/作者/类型/年份任一包含term的图书
	Search(ctx context.Context, term string) ([]*Book, error)

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Create 创建图书(回填ID)
	Create(ctx context.Context, book *Book) error

	// Update 更新图书全部可编辑字段
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(物理删除)
	Delete(ctx context.Context, id uint) error
}

// ListParams 列表查询参数
type ListParams struct {
	Limit  int
	Offset int
}
