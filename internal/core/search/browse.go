package search

import (
	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/geo"
)

// CanteenSummary 餐廳列表項目
type CanteenSummary struct {
	catalog.Canteen
	Geohash        string   `json:"geohash"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	VisibleTenants int      `json:"visible_tenants"`
}

// CanteenSummaries 所有餐廳摘要，有提供位置時附上距離
func CanteenSummaries(snapshot *catalog.Snapshot, filter VisibilityFilter, loc *geo.Point) []CanteenSummary {
	if snapshot == nil {
		return []CanteenSummary{}
	}
	out := make([]CanteenSummary, 0, len(snapshot.Canteens))
	for _, c := range snapshot.Canteens {
		tenants, _ := VisibleTenantsOfCanteen(snapshot, c.ID, filter)
		summary := CanteenSummary{
			Canteen:        c,
			Geohash:        c.Location().Geohash(),
			VisibleTenants: len(tenants),
		}
		if loc != nil {
			d := geo.DistanceMeters(*loc, c.Location())
			summary.DistanceMeters = &d
		}
		out = append(out, summary)
	}
	return out
}

// VisibleTenantsOfCanteen 餐廳中未被偏好隱藏的攤位；找不到餐廳時 ok=false
func VisibleTenantsOfCanteen(snapshot *catalog.Snapshot, canteenID string, filter VisibilityFilter) ([]catalog.Tenant, bool) {
	if _, ok := snapshot.Canteen(canteenID); !ok {
		return nil, false
	}
	tenants := snapshot.TenantsOf(canteenID)
	out := make([]catalog.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if !filter.IsTenantHidden(t, snapshot.FoodsOf(t.ID)) {
			out = append(out, t)
		}
	}
	return out, true
}

// VisibleFoodsOfTenant 攤位中未被隱藏的菜色；找不到攤位時 ok=false
func VisibleFoodsOfTenant(snapshot *catalog.Snapshot, tenantID string, filter VisibilityFilter) ([]catalog.Food, bool) {
	if _, ok := snapshot.Tenant(tenantID); !ok {
		return nil, false
	}
	return filter.VisibleFoods(snapshot.FoodsOf(tenantID)), true
}
