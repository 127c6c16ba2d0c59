package catalog

import (
	"sort"

	"canteen-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// Snapshot 目錄的唯讀快照，依名稱排序並已解析關聯
type Snapshot struct {
	Canteens []Canteen
	Tenants  []Tenant
	Foods    []Food

	canteenByID   map[string]int
	tenantByID    map[string]int
	foodsByTenant map[string][]int
	tenantsByCan  map[string][]int
}

// NewSnapshot 建立快照，找不到上層的攤位 / 菜色會被丟棄並記錄
func NewSnapshot(canteens []Canteen, tenants []Tenant, foods []Food) *Snapshot {
	s := &Snapshot{
		Canteens:      append([]Canteen(nil), canteens...),
		canteenByID:   make(map[string]int, len(canteens)),
		tenantByID:    make(map[string]int, len(tenants)),
		foodsByTenant: make(map[string][]int, len(tenants)),
		tenantsByCan:  make(map[string][]int, len(canteens)),
	}

	sort.SliceStable(s.Canteens, func(i, j int) bool { return s.Canteens[i].Name < s.Canteens[j].Name })
	for i, c := range s.Canteens {
		s.canteenByID[c.ID] = i
	}

	for _, t := range tenants {
		if _, ok := s.canteenByID[t.CanteenID]; !ok {
			common.LogWarn("丟棄無對應餐廳的攤位",
				zap.String("tenant", t.Name),
				zap.String("canteen_id", t.CanteenID),
			)
			continue
		}
		s.Tenants = append(s.Tenants, t)
	}
	sort.SliceStable(s.Tenants, func(i, j int) bool { return s.Tenants[i].Name < s.Tenants[j].Name })
	for i, t := range s.Tenants {
		s.tenantByID[t.ID] = i
		s.tenantsByCan[t.CanteenID] = append(s.tenantsByCan[t.CanteenID], i)
	}

	for _, f := range foods {
		if _, ok := s.tenantByID[f.TenantID]; !ok {
			common.LogWarn("丟棄無對應攤位的菜色",
				zap.String("food", f.Name),
				zap.String("tenant_id", f.TenantID),
			)
			continue
		}
		s.Foods = append(s.Foods, f)
	}
	sort.SliceStable(s.Foods, func(i, j int) bool { return s.Foods[i].Name < s.Foods[j].Name })
	for i, f := range s.Foods {
		s.foodsByTenant[f.TenantID] = append(s.foodsByTenant[f.TenantID], i)
	}

	return s
}

// Empty 空快照
func Empty() *Snapshot {
	return NewSnapshot(nil, nil, nil)
}

// IsEmpty 快照是否沒有任何資料
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Canteens) == 0 && len(s.Tenants) == 0 && len(s.Foods) == 0)
}

// Canteen 依 ID 取得餐廳
func (s *Snapshot) Canteen(id string) (Canteen, bool) {
	i, ok := s.canteenByID[id]
	if !ok {
		return Canteen{}, false
	}
	return s.Canteens[i], true
}

// Tenant 依 ID 取得攤位
func (s *Snapshot) Tenant(id string) (Tenant, bool) {
	i, ok := s.tenantByID[id]
	if !ok {
		return Tenant{}, false
	}
	return s.Tenants[i], true
}

// CanteenOf 攤位所屬餐廳
func (s *Snapshot) CanteenOf(t Tenant) (Canteen, bool) {
	return s.Canteen(t.CanteenID)
}

// TenantOf 菜色所屬攤位
func (s *Snapshot) TenantOf(f Food) (Tenant, bool) {
	return s.Tenant(f.TenantID)
}

// FoodsOf 攤位的所有菜色（依名稱排序）
func (s *Snapshot) FoodsOf(tenantID string) []Food {
	idx := s.foodsByTenant[tenantID]
	foods := make([]Food, len(idx))
	for i, j := range idx {
		foods[i] = s.Foods[j]
	}
	return foods
}

// TenantsOf 餐廳的所有攤位（依名稱排序）
func (s *Snapshot) TenantsOf(canteenID string) []Tenant {
	idx := s.tenantsByCan[canteenID]
	tenants := make([]Tenant, len(idx))
	for i, j := range idx {
		tenants[i] = s.Tenants[j]
	}
	return tenants
}

// CanteenNames 所有餐廳名稱（已排序）
func (s *Snapshot) CanteenNames() []string {
	names := make([]string, len(s.Canteens))
	for i, c := range s.Canteens {
		names[i] = c.Name
	}
	return names
}
