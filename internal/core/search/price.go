package search

import (
	"math"
	"strconv"
	"strings"
)

// PriceRange 攤位價格區間
type PriceRange struct {
	Min int
	Max int
}

var thousandSeparators = strings.NewReplacer(
	".", "",
	",", "",
	"'", "",
	"_", "",
	" ", "",
	"\u00a0", "",
	"\u202f", "",
)

func parsePriceBound(s string) (int, bool) {
	s = thousandSeparators.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParsePriceRange 解析 "min-max" 或單一數字，千分位符號會先移除
func ParsePriceRange(s string) (PriceRange, bool) {
	parts := strings.Split(s, "-")
	switch len(parts) {
	case 1:
		v, ok := parsePriceBound(parts[0])
		if !ok {
			return PriceRange{}, false
		}
		return PriceRange{Min: v, Max: v}, true
	case 2:
		lo, ok := parsePriceBound(parts[0])
		if !ok {
			return PriceRange{}, false
		}
		hi, ok := parsePriceBound(parts[1])
		if !ok {
			return PriceRange{}, false
		}
		return PriceRange{Min: lo, Max: hi}, true
	default:
		return PriceRange{}, false
	}
}

// MatchesPrice 價格區間與篩選範圍是否重疊；無法解析時視為不符合
func MatchesPrice(priceRange string, min, max *int) bool {
	pr, ok := ParsePriceRange(priceRange)
	if !ok {
		return false
	}
	lo, hi := 0, math.MaxInt
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	return pr.Max >= lo && pr.Min <= hi
}
