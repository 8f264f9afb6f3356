package book

import (
	"strconv"
	"strings"
	"time"
)

// Book 图书实体
// 设计说明:
// 1. Title/Author必填,持久化后永不为空
// 2. Genre为空字符串表示未填写
// 3. Year为nil表示未填写,否则在[1000,2999]之间
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	Genre     string // 类型
	Year      *int   // 出版年份(可选)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// YearText 年份的文本形式(未填写时为空)
func (b *Book) YearText() string {
	if b.Year == nil {
		return ""
	}
	return strconv.Itoa(*b.Year)
}

// Fields 一次创建/更新请求提交的字段
// nil表示请求中没有该字段(部分更新时保持原值)
type Fields struct {
	Title  *string
	Author *string
	Genre  *string
	Year   *string
}

// Draft 尚未保存的图书(原始文本形式)
// 校验失败时用于回填表单,所以年份保留提交时的原文
type Draft struct {
	ID     uint
	Title  string `validate:"required,max=255"`
	Author string `validate:"required,max=255"`
	Genre  string `validate:"max=255"`
	Year   string `validate:"omitempty,year"`
}

// Build 以base为基础叠加提交字段,构造未保存的图书
// base为nil表示新建
func Build(base *Book, f Fields) Draft {
	var d Draft
	if base != nil {
		d = Draft{
			ID:     base.ID,
			Title:  base.Title,
			Author: base.Author,
			Genre:  base.Genre,
			Year:   base.YearText(),
		}
	}

	if f.Title != nil {
		d.Title = strings.TrimSpace(*f.Title)
	}
	if f.Author != nil {
		d.Author = strings.TrimSpace(*f.Author)
	}
	if f.Genre != nil {
		d.Genre = strings.TrimSpace(*f.Genre)
	}
	if f.Year != nil {
		d.Year = strings.TrimSpace(*f.Year)
	}
	return d
}

// Book 把已校验的Draft转换为实体
// 调用前必须先通过Validate
func (d Draft) Book() *Book {
	b := &Book{
		ID:     d.ID,
		Title:  d.Title,
		Author: d.Author,
		Genre:  d.Genre,
	}
	if d.Year != "" {
		if year, err := strconv.Atoi(d.Year); err == nil {
			b.Year = &year
		}
	}
	return b
}
