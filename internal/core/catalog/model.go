package catalog

import (
	"canteen-finder/internal/core/geo"
)

// Canteen 餐廳（美食廣場）
type Canteen struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Description    string   `json:"description"`
	OperatingHours string   `json:"operating_hours"`
	Amenities      []string `json:"amenities"`
	Image          string   `json:"image,omitempty"`
}

// Location 餐廳座標
func (c Canteen) Location() geo.Point {
	return geo.Point{Latitude: c.Latitude, Longitude: c.Longitude}
}

// Tenant 攤位
type Tenant struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	CanteenID         string `json:"canteen_id"`
	OperatingHours    string `json:"operating_hours"`
	IsHalal           bool   `json:"is_halal"`
	PriceRange        string `json:"price_range"`
	ContactPerson     string `json:"contact_person,omitempty"`
	PreorderAvailable bool   `json:"preorder_available"`
	Image             string `json:"image,omitempty"`
}

// Food 菜色
type Food struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	TenantID    string     `json:"tenant_id"`
	Categories  []Category `json:"categories"`
}

// HasCategory 判斷菜色是否帶有某分類
func (f Food) HasCategory(c Category) bool {
	for _, fc := range f.Categories {
		if fc == c {
			return true
		}
	}
	return false
}

// CategoryNames 分類名稱列表（保留原順序）
func (f Food) CategoryNames() []string {
	names := make([]string, len(f.Categories))
	for i, c := range f.Categories {
		names[i] = string(c)
	}
	return names
}
