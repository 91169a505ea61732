package auth

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// memoryCounters fakes the redis commands the guard issues.
type memoryCounters struct {
	mu      sync.Mutex
	values  map[string]int64
	expires map[string]time.Duration
	fail    error
}

func newMemoryCounters() *memoryCounters {
	return &memoryCounters{values: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (m *memoryCounters) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return redis.NewStringResult("", m.fail)
	}
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(strconv.FormatInt(v, 10), nil)
}

func (m *memoryCounters) Incr(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return redis.NewIntResult(0, m.fail)
	}
	m.values[key]++
	return redis.NewIntResult(m.values[key], nil)
}

func (m *memoryCounters) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (m *memoryCounters) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return redis.NewIntResult(0, m.fail)
	}
	for _, k := range keys {
		delete(m.values, k)
		delete(m.expires, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisLoginGuard_LocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	store := newMemoryCounters()
	guard := NewRedisLoginGuard(store, 3, 15*time.Minute, nil)

	for i := 1; i <= 3; i++ {
		if locked, want := guard.RecordFailure(ctx, "Alice"), i == 3; locked != want {
			t.Errorf("failure %d: locked = %v, want %v", i, locked, want)
		}
	}

	if !guard.Locked(ctx, "alice") {
		t.Error("Locked() = false after max failures")
	}
	if ttl := store.expires[lockoutKey("alice")]; ttl != 15*time.Minute {
		t.Errorf("window = %v", ttl)
	}

	guard.Reset(ctx, "ALICE")
	if guard.Locked(ctx, "alice") {
		t.Error("Locked() = true after reset")
	}
}

func TestRedisLoginGuard_FailsOpen(t *testing.T) {
	store := newMemoryCounters()
	store.fail = errors.New("connection refused")
	core, logs := observer.New(zap.WarnLevel)
	guard := NewRedisLoginGuard(store, 1, time.Minute, zap.New(core))

	if guard.Locked(context.Background(), "bob") {
		t.Error("Locked() = true with store down")
	}
	if guard.RecordFailure(context.Background(), "bob") {
		t.Error("RecordFailure() = true with store down")
	}
	guard.Reset(context.Background(), "bob")

	if got := logs.Len(); got != 3 {
		t.Errorf("logged %d warnings, want 3", got)
	}
}

func TestNewRedisLoginGuard_Disabled(t *testing.T) {
	if _, ok := NewRedisLoginGuard(nil, 5, time.Minute, nil).(NoopLoginGuard); !ok {
		t.Error("nil store should yield a no-op guard")
	}
	if _, ok := NewRedisLoginGuard(newMemoryCounters(), 0, time.Minute, nil).(NoopLoginGuard); !ok {
		t.Error("zero max failures should yield a no-op guard")
	}
}
