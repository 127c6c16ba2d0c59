package search

import (
	"strings"
	"sync"
)

// DefaultHistoryLimit 最近搜尋保留筆數
const DefaultHistoryLimit = 5

// RecentSearchHistory 最近搜尋，最新的在最前面，不分大小寫去重
type RecentSearchHistory struct {
	mu      sync.RWMutex
	limit   int
	entries []string
}

// NewRecentSearchHistory 創建最近搜尋列表
func NewRecentSearchHistory(limit int) *RecentSearchHistory {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &RecentSearchHistory{limit: limit}
}

// Record 記錄一筆搜尋，空白字串不記錄
func (h *RecentSearchHistory) Record(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]string, 0, h.limit)
	entries = append(entries, term)
	for _, e := range h.entries {
		if strings.EqualFold(e, term) {
			continue
		}
		if len(entries) == h.limit {
			break
		}
		entries = append(entries, e)
	}
	h.entries = entries
}

// Entries 目前的列表副本
func (h *RecentSearchHistory) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string{}, h.entries...)
}

// Clear 清空
func (h *RecentSearchHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// HistoryBook 每個使用者各自一份最近搜尋
type HistoryBook struct {
	mu        sync.Mutex
	limit     int
	histories map[string]*RecentSearchHistory
}

// NewHistoryBook 創建 HistoryBook
func NewHistoryBook(limit int) *HistoryBook {
	return &HistoryBook{
		limit:     limit,
		histories: make(map[string]*RecentSearchHistory),
	}
}

// For 取得（必要時建立）某使用者的最近搜尋
func (b *HistoryBook) For(owner string) *RecentSearchHistory {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.histories[owner]
	if !ok {
		h = NewRecentSearchHistory(b.limit)
		b.histories[owner] = h
	}
	return h
}
