// Package search 實作餐廳 / 攤位 / 菜色的搜尋與篩選
package search

import (
	"fmt"
	"strings"

	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/geo"
	"canteen-finder/internal/pkg/common"
)

// Criteria 篩選條件，每次變更都會重新計算完整結果
type Criteria struct {
	SearchTerm    string     `json:"search_term"`
	PriceMin      *int       `json:"price_min,omitempty"`
	PriceMax      *int       `json:"price_max,omitempty"`
	FoodTypes     []string   `json:"food_types,omitempty"`
	CookingStyles []string   `json:"cooking_styles,omitempty"`
	TasteTypes    []string   `json:"taste_types,omitempty"`
	CanteenNames  []string   `json:"canteen_names,omitempty"`
	NearestOnly   bool       `json:"nearest_only"`
	OpenNow       bool       `json:"open_now"`
	Location      *geo.Point `json:"location,omitempty"`

	// LocationAuthorization 定位授權狀態，僅原樣回傳
	LocationAuthorization string `json:"location_authorization,omitempty"`
}

// Validate 驗證請求參數
func (c *Criteria) Validate() error {
	if c.PriceMin != nil && *c.PriceMin < 0 {
		return common.NewValidationError("price_min must not be negative")
	}
	if c.PriceMax != nil && *c.PriceMax < 0 {
		return common.NewValidationError("price_max must not be negative")
	}
	if c.PriceMin != nil && c.PriceMax != nil && *c.PriceMin > *c.PriceMax {
		return common.NewValidationError("price_min must not exceed price_max")
	}
	if c.Location != nil {
		if err := c.Location.Validate(); err != nil {
			return common.NewValidationError(err.Error())
		}
	}
	for field, values := range map[string][]string{
		"food_types":     c.FoodTypes,
		"cooking_styles": c.CookingStyles,
		"taste_types":    c.TasteTypes,
	} {
		for _, v := range values {
			if !catalog.IsKnownCategory(v) {
				return common.NewValidationError(fmt.Sprintf("%s: unknown category %q", field, v))
			}
		}
	}
	return nil
}

// Term 去除空白後的搜尋字串
func (c *Criteria) Term() string {
	return strings.TrimSpace(c.SearchTerm)
}

// HasPriceFilter 是否有價格篩選
func (c *Criteria) HasPriceFilter() bool {
	return c.PriceMin != nil || c.PriceMax != nil
}

// HasCategoryFilters 三種分類篩選是否有任一啟用
func (c *Criteria) HasCategoryFilters() bool {
	return len(c.FoodTypes) > 0 || len(c.CookingStyles) > 0 || len(c.TasteTypes) > 0
}

// HasModalFilters 篩選面板上的條件：價格、分類、餐廳
func (c *Criteria) HasModalFilters() bool {
	return c.HasPriceFilter() || c.HasCategoryFilters() || len(c.CanteenNames) > 0
}

// HasStructuredFilters 包含最近餐廳與營業中在內的所有結構化條件
func (c *Criteria) HasStructuredFilters() bool {
	return c.HasModalFilters() || c.NearestOnly || c.OpenNow
}

// ClearModalFilters 重設篩選面板上的條件
func (c *Criteria) ClearModalFilters() {
	c.PriceMin = nil
	c.PriceMax = nil
	c.FoodTypes = nil
	c.CookingStyles = nil
	c.TasteTypes = nil
	c.CanteenNames = nil
}

// categorySet 將篩選值正規化為分類集合
func categorySet(values []string) []catalog.Category {
	seen := make(map[catalog.Category]struct{}, len(values))
	out := make([]catalog.Category, 0, len(values))
	for _, v := range values {
		c := catalog.ParseCategory(v)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// hasAll 食物是否帶有全部選取的分類（空集合視為符合）
func hasAll(food catalog.Food, selected []catalog.Category) bool {
	for _, c := range selected {
		if !food.HasCategory(c) {
			return false
		}
	}
	return true
}
