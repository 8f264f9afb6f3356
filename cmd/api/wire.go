//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明：
// 1. 本文件只在运行 `wire gen ./cmd/api` 时参与编译（wireinject构建标签）
// 2. Wire根据wire.Build生成wire_gen.go，main.go调用其中的InitializeApp()
// 3. 修改Provider后需要重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：数据库连接、Redis连接（可选）、图书仓储
var infrastructureSet = wire.NewSet(
	provideDB,             // 创建数据库连接（mysql/sqlite）
	provideRedisClient,    // 创建Redis连接（未启用时为nil）
	provideBookRepository, // 图书仓储（启用Redis时带总数缓存）
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService, // 图书领域服务
)

// applicationSet 应用层依赖
// 包含：所有Use Case的构造函数
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,   // 图书列表
	appbook.NewSearchBooksUseCase, // 图书搜索
	appbook.NewGetBookUseCase,     // 图书详情
	appbook.NewPublishBookUseCase, // 新建图书
	appbook.NewEditBookUseCase,    // 编辑图书
	appbook.NewRemoveBookUseCase,  // 删除图书
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,    // 页面处理器
	handler.NewBookAPIHandler, // JSON接口处理器
)

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎、资源清理函数（关闭数据库与Redis连接）
//
// 依赖链：
// *gin.Engine ← *handler.BookHandler ← *appbook.XxxUseCase ← book.Service ← book.Repository ← *gorm.DB
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 领域层
		domainSet,

		// 应用层
		applicationSet,

		// 接口层
		handlerSet,

		// Gin引擎
		router.New,
	)
	return nil, nil, nil
}
