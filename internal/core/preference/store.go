package preference

import (
	"context"
	"sync"
)

// Store 偏好的持久化介面，選擇與展開後的忽略集合必須一起寫入
type Store interface {
	// Selections 取得原始選擇，未儲存時回傳空值
	Selections(ctx context.Context, owner string) ([]string, error)
	// Ignored 取得快取的忽略分類，found=false 表示尚未推導
	Ignored(ctx context.Context, owner string) (ignored []string, found bool, err error)
	// CacheIgnored 只寫入推導結果
	CacheIgnored(ctx context.Context, owner string, ignored []string) error
	// Save 原子地寫入選擇與推導結果
	Save(ctx context.Context, owner string, selections, ignored []string) error
	// Clear 原子地刪除兩者
	Clear(ctx context.Context, owner string) error
	Close() error
}

type memoryEntry struct {
	selections []string
	ignored    []string
	hasIgnored bool
}

// MemoryStore 行程內的偏好儲存
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

// Selections 實作 Store
func (s *MemoryStore) Selections(_ context.Context, owner string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[owner]; ok {
		return append([]string(nil), e.selections...), nil
	}
	return nil, nil
}

// Ignored 實作 Store
func (s *MemoryStore) Ignored(_ context.Context, owner string) ([]string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[owner]
	if !ok || !e.hasIgnored {
		return nil, false, nil
	}
	return append([]string(nil), e.ignored...), true, nil
}

// CacheIgnored 實作 Store
func (s *MemoryStore) CacheIgnored(_ context.Context, owner string, ignored []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[owner]
	if !ok {
		e = &memoryEntry{}
		s.entries[owner] = e
	}
	e.ignored = append([]string(nil), ignored...)
	e.hasIgnored = true
	return nil
}

// Save 實作 Store
func (s *MemoryStore) Save(_ context.Context, owner string, selections, ignored []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[owner] = &memoryEntry{
		selections: append([]string(nil), selections...),
		ignored:    append([]string(nil), ignored...),
		hasIgnored: true,
	}
	return nil
}

// Clear 實作 Store
func (s *MemoryStore) Clear(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, owner)
	return nil
}

// Close 實作 Store
func (s *MemoryStore) Close() error {
	return nil
}
