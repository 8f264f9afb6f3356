package redis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
)

// guardedCache 用熔断器包装CountCache
// 设计说明：
// 1. 连续失败后熔断，Get/Set直接返回ErrOpenState，不再访问Redis
// 2. Invalidate不经过熔断器，写操作之后总是尝试删除缓存
// 3. 熔断期间漏掉的删除由countStore的TTL兜底
type guardedCache struct {
	inner CountCache
	cb    *circuitbreaker.CircuitBreaker
}

// BreakerConfig 缓存熔断配置
type BreakerConfig struct {
	MaxFailures uint32        // 连续失败多少次熔断
	OpenTimeout time.Duration // 熔断持续时间
}

// DefaultBreakerConfig 默认熔断配置
var DefaultBreakerConfig = BreakerConfig{
	MaxFailures: 3,
	OpenTimeout: 30 * time.Second,
}

// NewGuardedCache 创建带熔断的CountCache
func NewGuardedCache(inner CountCache, cfg BreakerConfig, log *zap.Logger) CountCache {
	cb := circuitbreaker.New("book-count-cache", circuitbreaker.Config{
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("缓存熔断状态变化",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &guardedCache{inner: inner, cb: cb}
}

func (g *guardedCache) Get(ctx context.Context) (int64, bool, error) {
	var (
		total int64
		ok    bool
	)
	err := g.cb.Execute(func() error {
		var err error
		total, ok, err = g.inner.Get(ctx)
		return err
	})
	return total, ok, err
}

func (g *guardedCache) Set(ctx context.Context, total int64) error {
	return g.cb.Execute(func() error {
		return g.inner.Set(ctx, total)
	})
}

func (g *guardedCache) Invalidate(ctx context.Context) error {
	return g.inner.Invalidate(ctx)
}
