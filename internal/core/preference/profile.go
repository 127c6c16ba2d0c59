// Package preference 管理使用者的飲食偏好：原始選擇（預設名稱或分類）與展開後的忽略分類
package preference

import (
	"context"
	"fmt"
	"strings"

	"canteen-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultOwner 未指定使用者時的偏好擁有者
const DefaultOwner = "default"

// CategorySet 分類集合
type CategorySet map[string]struct{}

// NewCategorySet 由字串建立集合
func NewCategorySet(values ...string) CategorySet {
	s := make(CategorySet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Contains 是否包含
func (s CategorySet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted 排序後的內容
func (s CategorySet) Sorted() []string {
	return sortedKeys(s)
}

// Equal 集合是否相同
func (s CategorySet) Equal(other CategorySet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}

// Profile 某位使用者的偏好；不持有狀態，所有資料都在 Store
type Profile struct {
	store   Store
	presets Presets
	owner   string
}

// NewProfile 創建偏好
func NewProfile(store Store, presets Presets, owner string) *Profile {
	if presets == nil {
		presets = DefaultPresets()
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = DefaultOwner
	}
	return &Profile{store: store, presets: presets, owner: owner}
}

// Owner 擁有者
func (p *Profile) Owner() string {
	return p.owner
}

// Presets 預設組合
func (p *Profile) Presets() Presets {
	return p.presets
}

// SelectedPreferences 原始選擇
func (p *Profile) SelectedPreferences(ctx context.Context) (CategorySet, error) {
	selections, err := p.store.Selections(ctx, p.owner)
	if err != nil {
		return nil, common.ErrPreferenceStore.Wrap(err)
	}
	return NewCategorySet(selections...), nil
}

// IgnoredCategories 忽略分類；永遠由選擇重新推導，快取不存在或過期時寫回
func (p *Profile) IgnoredCategories(ctx context.Context) (CategorySet, error) {
	selections, err := p.store.Selections(ctx, p.owner)
	if err != nil {
		return nil, common.ErrPreferenceStore.Wrap(err)
	}
	derived := NewCategorySet(p.presets.Expand(selections)...)

	cached, found, err := p.store.Ignored(ctx, p.owner)
	if err != nil {
		return nil, common.ErrPreferenceStore.Wrap(err)
	}
	if found && NewCategorySet(cached...).Equal(derived) {
		return derived, nil
	}
	if !found && len(selections) == 0 {
		return derived, nil
	}

	if err := p.store.CacheIgnored(ctx, p.owner, derived.Sorted()); err != nil {
		// 推導結果仍然正確，寫回失敗只記錄
		common.LogWarn("忽略分類寫回失敗",
			zap.String("owner", p.owner),
			zap.Error(err),
		)
	} else if found {
		common.LogInfo("忽略分類快取已過期，已重新推導",
			zap.String("owner", p.owner),
		)
	}
	return derived, nil
}

// SaveSelections 儲存選擇並同時寫入推導結果
func (p *Profile) SaveSelections(ctx context.Context, selections []string) (CategorySet, error) {
	cleaned := make([]string, 0, len(selections))
	for _, s := range selections {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		canonical, ok := p.presets.Canonical(s)
		if !ok {
			return nil, common.NewValidationError(fmt.Sprintf("unknown preference %q", s))
		}
		cleaned = append(cleaned, canonical)
	}
	set := NewCategorySet(cleaned...)
	sel := set.Sorted()
	ignored := p.presets.Expand(sel)

	if err := p.store.Save(ctx, p.owner, sel, ignored); err != nil {
		return nil, common.ErrPreferenceStore.Wrap(err)
	}

	common.LogInfo("飲食偏好已更新",
		zap.String("owner", p.owner),
		zap.Strings("selections", sel),
		zap.Int("ignored_count", len(ignored)),
	)
	return NewCategorySet(ignored...), nil
}

// Clear 清除所有偏好
func (p *Profile) Clear(ctx context.Context) error {
	if err := p.store.Clear(ctx, p.owner); err != nil {
		return common.ErrPreferenceStore.Wrap(err)
	}
	common.LogInfo("飲食偏好已清除", zap.String("owner", p.owner))
	return nil
}
