package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New("book-count-cache", cfg)
	cb.now = clock.Now
	cb.toNewGeneration(clock.Now())
	return cb, clock
}

func fail() error    { return errRedisDown }
func succeed() error { return nil }

// TestClosedState 正常状态放行并统计
func TestClosedState(t *testing.T) {
	cb, _ := newTestBreaker(Config{Timeout: 30 * time.Second})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(succeed))
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
	assert.Equal(t, uint32(10), cb.Counts().Requests)
}

// TestTripsAfterConsecutiveFailures 默认连续失败5次熔断
func TestTripsAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{Timeout: 30 * time.Second})

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errRedisDown)
	}
	assert.Equal(t, StateClosed, cb.State())

	// 中间一次成功会重置连续失败
	require.NoError(t, cb.Execute(succeed))
	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	assert.Equal(t, StateClosed, cb.State())

	_ = cb.Execute(fail)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断时不应调用req")
}

// TestHalfOpenRecovers 超时后试探成功恢复为CLOSED
func TestHalfOpenRecovers(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}
	require.Equal(t, StateOpen, cb.State())

	clock.Advance(29 * time.Second)
	assert.Equal(t, StateOpen, cb.State())

	clock.Advance(2 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())
}

// TestHalfOpenFailureReopens 试探失败重新熔断
func TestHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	_ = cb.Execute(fail)
	clock.Advance(11 * time.Second)
	require.Equal(t, StateHalfOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(fail), errRedisDown)
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(succeed), ErrOpenState)
}

// TestHalfOpenSingleTrial 半开状态同一时间只放行一个请求
func TestHalfOpenSingleTrial(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Timeout:     10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	_ = cb.Execute(fail)
	clock.Advance(11 * time.Second)

	// 试探请求执行期间，其他请求被拒绝
	var inner error
	err := cb.Execute(func() error {
		inner = cb.Execute(succeed)
		return nil
	})
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrOpenState)
	assert.Equal(t, StateClosed, cb.State())
}

// TestSuccessResetsConsecutiveFailures 成功后连续失败数清零
func TestSuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{
		Timeout:     time.Minute,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	_ = cb.Execute(succeed)
	_ = cb.Execute(fail)

	counts := cb.Counts()
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(3), counts.TotalFailures)
	assert.Equal(t, uint32(4), counts.Requests)
}

// TestStateChangeCallback 状态变化回调
func TestStateChangeCallback(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(Config{
		Timeout:     time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(fail)
	clock.Advance(2 * time.Second)
	_ = cb.Execute(succeed)

	assert.Equal(t, []string{
		"book-count-cache:CLOSED->OPEN",
		"book-count-cache:OPEN->HALF_OPEN",
		"book-count-cache:HALF_OPEN->CLOSED",
	}, transitions)
}

// TestConcurrentExecute 并发调用不panic且计数准确
func TestConcurrentExecute(t *testing.T) {
	cb, _ := newTestBreaker(Config{Timeout: time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cb.Execute(succeed)
		}()
	}
	wg.Wait()

	assert.Equal(t, uint32(50), cb.Counts().TotalSuccesses)
}
