package catalog

import (
	"context"
	"sync"
	"time"

	"canteen-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// CachedSource 以 TTL 快取上游來源的快照
type CachedSource struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu        sync.RWMutex
	snapshot  *Snapshot
	expiresAt time.Time
	stats     cacheStats
}

// cacheStats 緩存統計
type cacheStats struct {
	hits    int64
	misses  int64
	reloads int64
	errors  int64
}

// NewCachedSource 創建快取來源；ttl <= 0 時每次都回源
func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	common.LogInfo("目錄快取已初始化",
		zap.Duration("存活時間", ttl),
	)
	return &CachedSource{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Load 取得快照；上游失敗但仍有舊快照時沿用舊快照
func (c *CachedSource) Load(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	if c.snapshot != nil && c.now().Before(c.expiresAt) {
		snap := c.snapshot
		c.mu.RUnlock()
		c.mu.Lock()
		c.stats.hits++
		c.mu.Unlock()
		common.LogCacheHit("catalog")
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// 其他請求可能已經重新載入
	if c.snapshot != nil && c.now().Before(c.expiresAt) {
		c.stats.hits++
		return c.snapshot, nil
	}

	c.stats.misses++
	common.LogCacheMiss("catalog")

	snap, err := c.source.Load(ctx)
	if err != nil {
		c.stats.errors++
		if c.snapshot != nil {
			common.LogWarn("目錄重新載入失敗，沿用舊快照", zap.Error(err))
			return c.snapshot, nil
		}
		return nil, err
	}

	c.snapshot = snap
	c.expiresAt = c.now().Add(c.ttl)
	c.stats.reloads++
	return snap, nil
}

// Invalidate 清除快取，下次讀取會回源
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.expiresAt = time.Time{}
	common.LogInfo("目錄快取已清除")
}

// GetStats 獲取緩存統計信息
func (c *CachedSource) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ratio := 0.0
	if total := c.stats.hits + c.stats.misses; total > 0 {
		ratio = float64(c.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"cached":    c.snapshot != nil,
		"hits":      c.stats.hits,
		"misses":    c.stats.misses,
		"reloads":   c.stats.reloads,
		"errors":    c.stats.errors,
		"hit_ratio": ratio,
	}
}
