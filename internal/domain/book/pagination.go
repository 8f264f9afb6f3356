package book

import "math"

// PageSize 每页图书数量
const PageSize = 10

// MaxPage 最大页码,保证(page-1)*PageSize不溢出
// 更大的页码按MaxPage处理(必然超出范围,返回空列表)
const MaxPage = math.MaxInt / PageSize

// Offset 页码 → 行偏移量
// 页码小于1时按第1页处理,大于MaxPage时按MaxPage处理
func Offset(page int) int {
	if page < 1 {
		return 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	return (page - 1) * PageSize
}

// TotalPages 总页数(至少1页)
func TotalPages(total int64) int {
	if total <= 0 {
		return 1
	}
	pages := int(total) / PageSize
	if int(total)%PageSize != 0 {
		pages++
	}
	return pages
}
