package preference

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"canteen-finder/internal/core/catalog"

	"gopkg.in/yaml.v3"
)

// Presets 飲食預設組合：名稱 → 要避開的分類
type Presets map[string][]catalog.Category

// DefaultPresets 內建的飲食預設
func DefaultPresets() Presets {
	return Presets{
		"Ahimsa":        {catalog.Meat, catalog.Chicken, catalog.Fish, catalog.Seafood, catalog.Eggs},
		"Treif":         {catalog.Fish, catalog.Seafood},
		"Pescatarian":   {catalog.Meat, catalog.Chicken},
		"GERD-Triggers": {catalog.Spicy, catalog.Fried, catalog.Sour},
	}
}

// LoadPresets 從 YAML 讀取預設組合，檔案格式為 名稱: [分類...]
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var presets Presets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to decode presets file: %w", err)
	}
	for name, cats := range presets {
		for _, c := range cats {
			if c == catalog.Unknown {
				return nil, fmt.Errorf("preset %q contains an unknown category", name)
			}
		}
	}
	return presets, nil
}

// Names 預設名稱（已排序）
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand 將選擇展開為要忽略的分類集合：預設名稱展開為其分類，其餘視為分類原始值
func (p Presets) Expand(selections []string) []string {
	set := make(map[string]struct{})
	for _, sel := range selections {
		if cats, ok := p[sel]; ok {
			for _, c := range cats {
				set[string(c)] = struct{}{}
			}
			continue
		}
		if c := catalog.ParseCategory(sel); c != catalog.Unknown {
			sel = string(c)
		}
		set[sel] = struct{}{}
	}
	return sortedKeys(set)
}

// Canonical 將一筆選擇正規化為預設名稱或分類的標準寫法（不分大小寫）
func (p Presets) Canonical(sel string) (string, bool) {
	sel = strings.TrimSpace(sel)
	if _, ok := p[sel]; ok {
		return sel, true
	}
	for name := range p {
		if strings.EqualFold(name, sel) {
			return name, true
		}
	}
	if c := catalog.ParseCategory(sel); c != catalog.Unknown {
		return string(c), true
	}
	return "", false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
