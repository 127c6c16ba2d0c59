package catalog

import (
	"sort"
	"strings"
)

// Category 食物分類標籤（固定詞彙，值即顯示名稱）
type Category string

// 口味
const (
	Spicy  Category = "Spicy"
	Sweet  Category = "Sweet"
	Sour   Category = "Sour"
	Savory Category = "Savory"
)

// 烹調方式
const (
	Soup    Category = "Soup"
	Fried   Category = "Fried"
	Steamed Category = "Steamed"
	Roasted Category = "Roasted"
)

// 食材 / 類型
const (
	Meat        Category = "Meat"
	Chicken     Category = "Chicken"
	Fish        Category = "Fish"
	Seafood     Category = "Seafood"
	Vegetables  Category = "Vegetables"
	Rice        Category = "Rice"
	Eggs        Category = "Eggs"
	Nuts        Category = "Nuts"
	PorkAndLard Category = "Pork and Lard"
	Soy         Category = "Soy"
	Mushroom    Category = "Mushroom"
	Gluten      Category = "Gluten"
	Snacks      Category = "Snacks"
)

// Unknown 無法辨識的分類
const Unknown Category = "Unknown"

var (
	// TasteCategories 口味篩選選項
	TasteCategories = []Category{Sour, Spicy, Sweet, Savory}
	// CookingStyleCategories 烹調方式篩選選項
	CookingStyleCategories = []Category{Soup, Fried, Steamed, Roasted}
	// FoodTypeCategories 食材篩選選項
	FoodTypeCategories = []Category{
		Fish, Mushroom, Soy, Gluten,
		Chicken, Rice, Seafood, Snacks, Meat,
		Vegetables, Eggs, Nuts, PorkAndLard,
	}

	knownCategories = func() map[string]Category {
		m := make(map[string]Category)
		for _, group := range [][]Category{TasteCategories, CookingStyleCategories, FoodTypeCategories} {
			for _, c := range group {
				m[strings.ToLower(string(c))] = c
			}
		}
		m[strings.ToLower(string(Unknown))] = Unknown
		return m
	}()
)

// ParseCategory 解析分類，大小寫不敏感，無法辨識時回傳 Unknown
func ParseCategory(s string) Category {
	if c, ok := knownCategories[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c
	}
	return Unknown
}

// IsKnownCategory 判斷字串是否為固定詞彙中的分類
func IsKnownCategory(s string) bool {
	c, ok := knownCategories[strings.ToLower(strings.TrimSpace(s))]
	return ok && c != Unknown
}

// String 實作 fmt.Stringer
func (c Category) String() string {
	return string(c)
}

// UnmarshalText 讓 JSON / YAML 解碼時自動落到 Unknown
func (c *Category) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// MarshalText 實作 encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// FilterableCategories 所有可供篩選的分類（去重、排序）
func FilterableCategories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range [][]Category{FoodTypeCategories, CookingStyleCategories, TasteCategories} {
		for _, c := range group {
			if _, ok := seen[string(c)]; ok {
				continue
			}
			seen[string(c)] = struct{}{}
			out = append(out, string(c))
		}
	}
	sort.Strings(out)
	return out
}
