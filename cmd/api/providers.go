package main

import (
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/orm"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 需要返回cleanup函数、或需要按配置选择实现的依赖，在这里手写Provider

// provideDB 创建数据库连接，cleanup时关闭连接池
func provideDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := orm.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := orm.Close(db); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// provideRedisClient 创建Redis客户端（redis.enabled为false时返回nil）
func provideRedisClient(cfg *config.Config, log *zap.Logger) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client == nil {
			return
		}
		if err := client.Close(); err != nil {
			log.Warn("关闭Redis连接失败", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// provideBookRepository 图书仓储
// 有Redis客户端时给Count加一层缓存（Redis故障时熔断，直接查库）
func provideBookRepository(cfg *config.Config, log *zap.Logger, db *gorm.DB, client *goredis.Client) book.Repository {
	repo := orm.NewBookRepository(db)
	if client == nil {
		return repo
	}
	cache := redis.NewGuardedCache(
		redis.NewCountCache(client, cfg.Redis.CountTTL),
		redis.DefaultBreakerConfig,
		log,
	)
	return redis.NewCachedRepository(repo, cache, log)
}
