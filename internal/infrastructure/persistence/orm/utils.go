package orm

import (
	"strings"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// likeEscape LIKE语句的转义字符（MySQL与SQLite通用）
const likeEscape = "!"

// likeReplacer 转义LIKE通配符（%、_）和转义字符本身
var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern 子串匹配的LIKE模式
// 示例：50%_off → %50!%!_off%
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}

// dbError 包装数据库错误(错误码50001)
func dbError(err error, message string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeDatabaseError,
		Message: message,
		Err:     err,
	}
}
