package feature

import (
	"context"
	"sync"
	"time"

	"github.com/rushteam/actireco/core"
)

// CachedProfiles 给任意 ProfileService 加一层 TTL 内存缓存。
// 画像构建需要扫描交互流水，QPS 高时直查会放大延迟，缓存按 userID 复用结果。
// 超过 maxSize 时淘汰最久未访问的条目。
type CachedProfiles struct {
	mu      sync.RWMutex
	inner   ProfileService
	entries map[string]*profileEntry
	maxSize int
	ttl     time.Duration

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
}

type profileEntry struct {
	profile    *core.UserProfile
	expireTime time.Time
	accessTime time.Time
}

func NewCachedProfiles(inner ProfileService, maxSize int, ttl time.Duration) *CachedProfiles {
	c := &CachedProfiles{
		inner:       inner,
		entries:     make(map[string]*profileEntry),
		maxSize:     maxSize,
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}
	c.cleanupTicker = time.NewTicker(time.Minute)
	go c.cleanup()
	return c
}

func (c *CachedProfiles) Name() string { return c.inner.Name() + ".cached" }

func (c *CachedProfiles) GetProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	now := time.Now()

	c.mu.RLock()
	e, ok := c.entries[userID]
	c.mu.RUnlock()
	if ok && now.Before(e.expireTime) {
		c.mu.Lock()
		e.accessTime = now
		c.mu.Unlock()
		return e.profile, nil
	}

	profile, err := c.inner.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[userID] = &profileEntry{
		profile:    profile,
		expireTime: now.Add(c.ttl),
		accessTime: now,
	}
	c.evictLRU()
	c.mu.Unlock()

	return profile, nil
}

// Invalidate 清空缓存。工件快照被替换后画像可能已变化，调用方应立即失效。
func (c *CachedProfiles) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]*profileEntry)
	c.mu.Unlock()
}

func (c *CachedProfiles) Close() error {
	close(c.stopCleanup)
	return c.inner.Close()
}

func (c *CachedProfiles) cleanup() {
	for {
		select {
		case <-c.cleanupTicker.C:
			c.cleanExpired()
		case <-c.stopCleanup:
			c.cleanupTicker.Stop()
			return
		}
	}
}

func (c *CachedProfiles) cleanExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for userID, e := range c.entries {
		if now.After(e.expireTime) {
			delete(c.entries, userID)
		}
	}
	c.evictLRU()
}

// evictLRU 淘汰最久未访问的条目，调用方需持有写锁。
func (c *CachedProfiles) evictLRU() {
	for c.maxSize > 0 && len(c.entries) > c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		first := true
		for k, e := range c.entries {
			if first || e.accessTime.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.accessTime
				first = false
			}
		}
		delete(c.entries, oldestKey)
	}
}
