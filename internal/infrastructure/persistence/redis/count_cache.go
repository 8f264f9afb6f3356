package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// countKey 图书总数缓存Key
const countKey = "books:count"

// CountCache 图书总数缓存
// ok为false表示未命中
type CountCache interface {
	Get(ctx context.Context) (total int64, ok bool, err error)
	Set(ctx context.Context, total int64) error
	Invalidate(ctx context.Context) error
}

// countStore 基于Redis的CountCache实现
// 设计说明：
// 1. 列表页每次请求都要查总数，缓存后只有分页查询落到数据库
// 2. 设置过期时间，即使漏删也只在TTL内不一致
type countStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCountCache 创建图书总数缓存
func NewCountCache(client *redis.Client, ttl time.Duration) CountCache {
	return &countStore{client: client, ttl: ttl}
}

// Get 读取缓存的总数
func (s *countStore) Get(ctx context.Context) (int64, bool, error) {
	total, err := s.client.Get(ctx, countKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, redisError(err, "读取图书总数缓存失败")
	}
	return total, true, nil
}

// Set 写入总数
func (s *countStore) Set(ctx context.Context, total int64) error {
	if err := s.client.Set(ctx, countKey, total, s.ttl).Err(); err != nil {
		return redisError(err, "写入图书总数缓存失败")
	}
	return nil
}

// Invalidate 删除缓存（新建、删除图书后调用）
func (s *countStore) Invalidate(ctx context.Context) error {
	if err := s.client.Del(ctx, countKey).Err(); err != nil {
		return redisError(err, "删除图书总数缓存失败")
	}
	return nil
}

func redisError(err error, message string) *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeRedisError,
		Message: message,
		Err:     err,
	}
}
