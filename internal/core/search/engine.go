package search

import (
	"strings"
	"time"

	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/preference"
)

// DefaultRandomTrigger 觸發隨機推薦的搜尋字
const DefaultRandomTrigger = "bingung"

// Engine 搜尋引擎，本身沒有可變狀態，可並發呼叫
type Engine struct {
	randomTrigger string
}

// NewEngine 創建搜尋引擎，trigger 為空時使用預設值
func NewEngine(randomTrigger string) *Engine {
	if strings.TrimSpace(randomTrigger) == "" {
		randomTrigger = DefaultRandomTrigger
	}
	return &Engine{randomTrigger: strings.TrimSpace(randomTrigger)}
}

// RandomTrigger 隨機推薦觸發字
func (e *Engine) RandomTrigger() string {
	return e.randomTrigger
}

// IsRandomTrigger 搜尋字是否為隨機推薦觸發字（不分大小寫）
func (e *Engine) IsRandomTrigger(term string) bool {
	return strings.EqualFold(strings.TrimSpace(term), e.randomTrigger)
}

var defaultEngine = NewEngine(DefaultRandomTrigger)

// Evaluate 以預設設定計算搜尋結果
func Evaluate(snapshot *catalog.Snapshot, criteria Criteria, ignored preference.CategorySet, now time.Time) *Result {
	return defaultEngine.Evaluate(snapshot, criteria, ignored, now)
}

// Evaluate 從頭計算完整的搜尋結果，格式錯誤的資料只會被排除而不會回傳錯誤
func (e *Engine) Evaluate(snapshot *catalog.Snapshot, criteria Criteria, ignored preference.CategorySet, now time.Time) *Result {
	result := EmptyResult()
	result.LocationAuthorization = criteria.LocationAuthorization
	result.SuggestRandomPick = e.IsRandomTrigger(criteria.SearchTerm)
	if snapshot == nil {
		return result
	}

	filter := NewVisibilityFilter(ignored)
	term := strings.ToLower(criteria.Term())
	reportHidden := term != "" || criteria.HasModalFilters()
	browsing := term == "" && !criteria.HasStructuredFilters()

	foodTypes := categorySet(criteria.FoodTypes)
	cookingStyles := categorySet(criteria.CookingStyles)
	tasteTypes := categorySet(criteria.TasteTypes)

	// 1. 決定有效的餐廳篩選
	effective := make(map[string]struct{})
	if criteria.NearestOnly {
		nearest, ok := ResolveNearestCanteen(snapshot.Canteens, criteria.Location)
		if !ok {
			result.NoNearestCanteenFound = true
			result.finalize()
			return result
		}
		effective[nearest.Name] = struct{}{}
		result.NearestCanteen = nearest.Name
	} else {
		for _, name := range criteria.CanteenNames {
			effective[name] = struct{}{}
		}
	}

	for _, tenant := range snapshot.Tenants {
		// 2. 依餐廳挑出候選攤位
		if len(effective) > 0 {
			canteen, ok := snapshot.CanteenOf(tenant)
			if !ok {
				continue
			}
			if _, ok := effective[canteen.Name]; !ok {
				continue
			}
		}

		// 3. 營業中
		if criteria.OpenNow && !IsOpenNow(tenant.OperatingHours, now) {
			continue
		}

		// 4. 價格
		if criteria.HasPriceFilter() && !MatchesPrice(tenant.PriceRange, criteria.PriceMin, criteria.PriceMax) {
			continue
		}

		// 5. 偏好隱藏的攤位
		foods := snapshot.FoodsOf(tenant.ID)
		if filter.IsTenantHidden(tenant, foods) {
			if reportHidden {
				result.HiddenTenantNames = append(result.HiddenTenantNames, tenant.Name)
			}
			continue
		}

		// 7. 瀏覽狀態只列攤位
		if browsing {
			result.VisibleTenants = append(result.VisibleTenants, tenant)
			continue
		}

		// 6. 逐一比對菜色
		tenantMatches := term != "" && strings.Contains(strings.ToLower(tenant.Name), term)
		var matched []catalog.Food
		for _, food := range foods {
			if filter.IsFoodHidden(food) {
				if reportHidden {
					result.HiddenFoodNames = append(result.HiddenFoodNames, food.Name)
				}
				continue
			}
			if term != "" && !tenantMatches && !strings.Contains(strings.ToLower(food.Name), term) {
				continue
			}
			if !hasAll(food, foodTypes) || !hasAll(food, cookingStyles) || !hasAll(food, tasteTypes) {
				continue
			}
			matched = append(matched, food)
		}

		// 7. 納入結果
		switch {
		case len(matched) > 0:
			result.VisibleTenants = append(result.VisibleTenants, tenant)
			result.VisibleFoodsByTenant[tenant.ID] = append(result.VisibleFoodsByTenant[tenant.ID], matched...)
		case tenantMatches && !criteria.HasCategoryFilters():
			result.VisibleTenants = append(result.VisibleTenants, tenant)
			if _, ok := result.VisibleFoodsByTenant[tenant.ID]; !ok {
				result.VisibleFoodsByTenant[tenant.ID] = []catalog.Food{}
			}
		}
	}

	// 8. 去重排序
	result.finalize()
	return result
}
