package search

import (
	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/pkg/common"
)

// Pick 隨機推薦的菜色
type Pick struct {
	Food       catalog.Food    `json:"food"`
	Tenant     catalog.Tenant  `json:"tenant"`
	Canteen    catalog.Canteen `json:"canteen"`
	Categories string          `json:"categories"`
}

// RandomPick 從未被隱藏的菜色中隨機挑一道，intn 由呼叫端注入
func RandomPick(snapshot *catalog.Snapshot, filter VisibilityFilter, intn func(n int) int) (Pick, bool) {
	if snapshot == nil {
		return Pick{}, false
	}
	candidates := make([]Pick, 0, len(snapshot.Foods))
	for _, food := range snapshot.Foods {
		if filter.IsFoodHidden(food) {
			continue
		}
		tenant, ok := snapshot.TenantOf(food)
		if !ok {
			continue
		}
		canteen, ok := snapshot.CanteenOf(tenant)
		if !ok {
			continue
		}
		candidates = append(candidates, Pick{
			Food:       food,
			Tenant:     tenant,
			Canteen:    canteen,
			Categories: common.JoinNames(food.CategoryNames()),
		})
	}
	if len(candidates) == 0 {
		return Pick{}, false
	}
	return candidates[intn(len(candidates))], true
}
