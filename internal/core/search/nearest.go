package search

import (
	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/geo"
)

// ResolveNearestCanteen 線性掃描找最近的餐廳，距離相同時取先出現者
func ResolveNearestCanteen(canteens []catalog.Canteen, loc *geo.Point) (*catalog.Canteen, bool) {
	if loc == nil || len(canteens) == 0 {
		return nil, false
	}
	best := 0
	bestDist := geo.DistanceMeters(*loc, canteens[0].Location())
	for i := 1; i < len(canteens); i++ {
		if d := geo.DistanceMeters(*loc, canteens[i].Location()); d < bestDist {
			best, bestDist = i, d
		}
	}
	c := canteens[best]
	return &c, true
}
