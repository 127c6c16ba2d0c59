package search

import (
	"sort"

	"canteen-finder/internal/core/catalog"
)

// Result 一次搜尋的分類結果
type Result struct {
	VisibleTenants        []catalog.Tenant          `json:"visible_tenants"`
	VisibleFoodsByTenant  map[string][]catalog.Food `json:"visible_foods_by_tenant"`
	HiddenTenantNames     []string                  `json:"hidden_tenant_names"`
	HiddenFoodNames       []string                  `json:"hidden_food_names"`
	NoNearestCanteenFound bool                      `json:"no_nearest_canteen_found"`
	NearestCanteen        string                    `json:"nearest_canteen,omitempty"`
	SuggestRandomPick     bool                      `json:"suggest_random_pick"`
	LocationAuthorization string                    `json:"location_authorization,omitempty"`
}

// EmptyResult 空結果，目錄無法讀取時的降級值
func EmptyResult() *Result {
	return &Result{
		VisibleTenants:       []catalog.Tenant{},
		VisibleFoodsByTenant: map[string][]catalog.Food{},
		HiddenTenantNames:    []string{},
		HiddenFoodNames:      []string{},
	}
}

// finalize 去重並排序
func (r *Result) finalize() {
	seen := make(map[string]struct{}, len(r.VisibleTenants))
	tenants := r.VisibleTenants[:0]
	for _, t := range r.VisibleTenants {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		tenants = append(tenants, t)
	}
	sort.SliceStable(tenants, func(i, j int) bool { return tenants[i].Name < tenants[j].Name })
	r.VisibleTenants = tenants

	for id, foods := range r.VisibleFoodsByTenant {
		sort.SliceStable(foods, func(i, j int) bool { return foods[i].Name < foods[j].Name })
		r.VisibleFoodsByTenant[id] = foods
	}

	r.HiddenTenantNames = dedupeSorted(r.HiddenTenantNames)
	r.HiddenFoodNames = dedupeSorted(r.HiddenFoodNames)
}

func dedupeSorted(names []string) []string {
	set := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := set[n]; ok {
			continue
		}
		set[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
