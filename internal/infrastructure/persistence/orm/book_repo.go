package orm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// searchCondition 书名/作者/类型/年份任一包含搜索词
// CAST(year AS CHAR)在MySQL与SQLite中都返回文本，year为NULL时不匹配
const searchCondition = "title LIKE ? ESCAPE '" + likeEscape + "'" +
	" OR author LIKE ? ESCAPE '" + likeEscape + "'" +
	" OR genre LIKE ? ESCAPE '" + likeEscape + "'" +
	" OR CAST(year AS CHAR) LIKE ? ESCAPE '" + likeEscape + "'"

// updatableColumns Update写入的列
var updatableColumns = []string{"title", "author", "genre", "year", "updated_at"}

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 把gorm.ErrRecordNotFound转换为book.ErrBookNotFound,其他错误包装为数据库错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Count 图书总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookModel{}).Count(&total).Error; err != nil {
		return 0, dbError(err, "查询图书总数失败")
	}
	return total, nil
}

// List 按ID升序分页查询
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, error) {
	var models []BookModel
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&models).Error
	if err != nil {
		return nil, dbError(err, "查询图书列表失败")
	}
	return toBookEntities(models), nil
}

// Search 子串搜索(按ID升序)
// 大小写是否敏感取决于数据库默认排序规则
func (r *bookRepository) Search(ctx context.Context, term string) ([]*book.Book, error) {
	pattern := containsPattern(term)

	var models []BookModel
	err := r.db.WithContext(ctx).
		Where(searchCondition, pattern, pattern, pattern, pattern).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, dbError(err, "搜索图书失败")
	}
	return toBookEntities(models), nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, dbError(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return dbError(err, "创建图书失败")
	}

	// 回填自增ID与时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Update 更新图书全部可编辑字段
// 只更新已存在的行,记录已被删除时不会重新插入
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	err := r.db.WithContext(ctx).
		Model(model).
		Select(updatableColumns).
		Updates(model).Error
	if err != nil {
		return dbError(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)
	if result.Error != nil {
		return dbError(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Year:      b.Year,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		Title:     model.Title,
		Author:    model.Author,
		Genre:     model.Genre,
		Year:      model.Year,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
