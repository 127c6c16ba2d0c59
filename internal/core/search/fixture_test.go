package search

import (
	"time"

	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/geo"
)

var (
	greenEatery = geo.Point{Latitude: -6.302530, Longitude: 106.652311}
	gop6        = geo.Point{Latitude: -6.301576, Longitude: 106.651889}
)

func testSnapshot() *catalog.Snapshot {
	canteens := []catalog.Canteen{
		{ID: "c-green", Name: "Green Eatery", Latitude: greenEatery.Latitude, Longitude: greenEatery.Longitude, OperatingHours: "07:00-17:00"},
		{ID: "c-gop6", Name: "GOP 6", Latitude: gop6.Latitude, Longitude: gop6.Longitude, OperatingHours: "07:00-22:00"},
	}
	tenants := []catalog.Tenant{
		{ID: "t-kasturi", Name: "Kasturi", CanteenID: "c-green", OperatingHours: "07:00-17:00", PriceRange: "15.000-25.000"},
		{ID: "t-mama", Name: "Mama Djempol", CanteenID: "c-green", OperatingHours: "08:00-16:00", PriceRange: "10.000-20.000"},
		{ID: "t-sri", Name: "Ayam Penyet Bu Sri", CanteenID: "c-gop6", OperatingHours: "20:00-02:00", PriceRange: "20000"},
		{ID: "t-kosong", Name: "Warung Kosong", CanteenID: "c-gop6", OperatingHours: "garbage", PriceRange: "abc"},
	}
	foods := []catalog.Food{
		{ID: "f-bakar", Name: "Ayam Bakar", TenantID: "t-kasturi", Categories: []catalog.Category{catalog.Chicken, catalog.Roasted, catalog.Sweet, catalog.Savory}},
		{ID: "f-sawi", Name: "Sawi Putih", TenantID: "t-kasturi", Categories: []catalog.Category{catalog.Vegetables, catalog.Steamed, catalog.Savory}},
		{ID: "f-nasgor", Name: "Nasi Goreng", TenantID: "t-mama", Categories: []catalog.Category{catalog.Rice, catalog.Fried, catalog.Savory, catalog.Eggs}},
		{ID: "f-soto", Name: "Soto Ayam", TenantID: "t-mama", Categories: []catalog.Category{catalog.Chicken, catalog.Soup, catalog.Savory}},
		{ID: "f-penyet", Name: "Ayam Penyet", TenantID: "t-sri", Categories: []catalog.Category{catalog.Chicken, catalog.Fried, catalog.Spicy}},
	}
	return catalog.NewSnapshot(canteens, tenants, foods)
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.Local)
}

func intPtr(v int) *int {
	return &v
}

func tenantNames(tenants []catalog.Tenant) []string {
	names := make([]string, len(tenants))
	for i, t := range tenants {
		names[i] = t.Name
	}
	return names
}

func foodNames(foods []catalog.Food) []string {
	names := make([]string, len(foods))
	for i, f := range foods {
		names[i] = f.Name
	}
	return names
}
