package redis

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// cachedRepository 给Count加一层缓存的仓储装饰器
// 设计说明：
// 1. 只缓存Count，其他查询直接委托给inner
// 2. Create/Delete成功后删除缓存（Update不改变总数）
// 3. 缓存出错只记日志，不影响请求结果
// 4. 查库期间发生过失效时不回填，避免旧总数覆盖失效结果（同一进程内）
type cachedRepository struct {
	book.Repository
	cache CountCache
	log   *zap.Logger

	mu         sync.Mutex // 串行化回填与失效
	generation uint64     // 每次失效递增
}

// NewCachedRepository 创建带总数缓存的仓储
func NewCachedRepository(inner book.Repository, cache CountCache, log *zap.Logger) book.Repository {
	return &cachedRepository{
		Repository: inner,
		cache:      cache,
		log:        log,
	}
}

// Count 先查缓存，未命中时查库并回填
func (r *cachedRepository) Count(ctx context.Context) (int64, error) {
	total, ok, err := r.cache.Get(ctx)
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.RecordCountCache("skipped")
	case err != nil:
		metrics.RecordCountCache("error")
		r.log.Warn("读取图书总数缓存失败", zap.Error(err))
	case ok:
		metrics.RecordCountCache("hit")
		return total, nil
	default:
		metrics.RecordCountCache("miss")
	}

	generation := r.currentGeneration()
	total, err = r.Repository.Count(ctx)
	if err != nil {
		return 0, err
	}

	r.fill(ctx, generation, total)
	return total, nil
}

func (r *cachedRepository) currentGeneration() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// fill 回填缓存；generation已变化说明查到的总数可能已过期
func (r *cachedRepository) fill(ctx context.Context, generation uint64, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation != generation {
		metrics.RecordCountCache("stale")
		return
	}
	if err := r.cache.Set(ctx, total); err != nil && !errors.Is(err, circuitbreaker.ErrOpenState) {
		r.log.Warn("写入图书总数缓存失败", zap.Error(err))
	}
}

// Create 创建图书并使缓存失效
func (r *cachedRepository) Create(ctx context.Context, b *book.Book) error {
	if err := r.Repository.Create(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Delete 删除图书并使缓存失效
func (r *cachedRepository) Delete(ctx context.Context, id uint) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedRepository) invalidate(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	if err := r.cache.Invalidate(ctx); err != nil {
		r.log.Warn("删除图书总数缓存失败", zap.Error(err))
	}
}
