package search

import (
	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/preference"
)

// VisibilityFilter 依飲食偏好隱藏菜色與攤位
type VisibilityFilter struct {
	ignored preference.CategorySet
}

// NewVisibilityFilter 以忽略分類建立過濾器
func NewVisibilityFilter(ignored preference.CategorySet) VisibilityFilter {
	return VisibilityFilter{ignored: ignored}
}

// IsFoodHidden 任一分類被忽略即隱藏
func (v VisibilityFilter) IsFoodHidden(food catalog.Food) bool {
	if len(v.ignored) == 0 {
		return false
	}
	for _, c := range food.Categories {
		if v.ignored.Contains(string(c)) {
			return true
		}
	}
	return false
}

// IsTenantHidden 沒有菜色的攤位不隱藏；全部菜色都被隱藏時才隱藏
func (v VisibilityFilter) IsTenantHidden(_ catalog.Tenant, foods []catalog.Food) bool {
	if len(foods) == 0 {
		return false
	}
	for _, f := range foods {
		if !v.IsFoodHidden(f) {
			return false
		}
	}
	return true
}

// VisibleFoods 未被隱藏的菜色，保留原順序
func (v VisibilityFilter) VisibleFoods(foods []catalog.Food) []catalog.Food {
	out := make([]catalog.Food, 0, len(foods))
	for _, f := range foods {
		if !v.IsFoodHidden(f) {
			out = append(out, f)
		}
	}
	return out
}
