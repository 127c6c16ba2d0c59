// Package geo 提供座標與地表距離計算
package geo

import (
	"fmt"
	"math"

	"github.com/mmcloughlin/geohash"
)

const earthRadiusMeters = 6371000.0

// GeohashPrecision 餐廳摘要使用的 geohash 長度（約 150m 見方）
const GeohashPrecision = 7

// Point 經緯度座標
type Point struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate 檢查座標範圍
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", p.Longitude)
	}
	return nil
}

// Geohash 回傳座標的 geohash
func (p Point) Geohash() string {
	return geohash.EncodeWithPrecision(p.Latitude, p.Longitude, GeohashPrecision)
}

// DistanceMeters 以 haversine 公式計算兩點的地表距離（公尺）
func DistanceMeters(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1 := a.Latitude * (math.Pi / 180.0)
	lat2 := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}
