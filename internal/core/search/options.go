package search

import (
	"sort"

	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/preference"
)

// Options 篩選面板可選的值
type Options struct {
	FoodTypes     []string `json:"food_types"`
	CookingStyles []string `json:"cooking_styles"`
	TasteTypes    []string `json:"taste_types"`
	Canteens      []string `json:"canteens"`
	Presets       []string `json:"presets"`
	MoreOptions   []string `json:"more_options"`
}

// FilterOptions 產生篩選選項，已被偏好忽略的分類不會出現
func FilterOptions(snapshot *catalog.Snapshot, ignored preference.CategorySet) Options {
	opts := Options{
		FoodTypes:     allowedCategories(catalog.FoodTypeCategories, ignored),
		CookingStyles: allowedCategories(catalog.CookingStyleCategories, ignored),
		TasteTypes:    allowedCategories(catalog.TasteCategories, ignored),
		Canteens:      []string{},
		Presets:       []string{},
		MoreOptions:   catalog.FilterableCategories(),
	}
	if snapshot != nil {
		opts.Canteens = snapshot.CanteenNames()
		sort.Strings(opts.Canteens)
	}
	return opts
}

func allowedCategories(group []catalog.Category, ignored preference.CategorySet) []string {
	out := make([]string, 0, len(group))
	for _, c := range group {
		if !ignored.Contains(string(c)) {
			out = append(out, string(c))
		}
	}
	sort.Strings(out)
	return out
}
