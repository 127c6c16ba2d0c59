package search

import (
	"regexp"
	"strconv"
	"time"
)

const minutesPerDay = 24 * 60

var hoursPattern = regexp.MustCompile(`^\s*([01]\d|2[0-3]):([0-5]\d)\s*-\s*([01]\d|2[0-3]):([0-5]\d)\s*$`)

// ParseHours 解析 "HH:MM-HH:MM"，回傳起迄的午夜後分鐘數
func ParseHours(hours string) (start, end int, ok bool) {
	m := hoursPattern.FindStringSubmatch(hours)
	if m == nil {
		return 0, 0, false
	}
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	return atoi(m[1])*60 + atoi(m[2]), atoi(m[3])*60 + atoi(m[4]), true
}

// IsOpenNow 判斷在 now 時是否營業，跨午夜的時段會把結束時間加一天
func IsOpenNow(hours string, now time.Time) bool {
	start, end, ok := ParseHours(hours)
	if !ok {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	if end < start {
		end += minutesPerDay
		if current < start {
			current += minutesPerDay
		}
	}
	return start <= current && current <= end
}
