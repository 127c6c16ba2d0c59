package catalog

import (
	"bytes"
	"fmt"
	"strings"

	"canteen-finder/internal/pkg/common"

	"gopkg.in/yaml.v3"
)

// Document 目錄文件格式（YAML 種子檔與遠端 JSON 共用），餐廳底下巢狀攤位與菜色
type Document struct {
	Canteens []CanteenDoc `json:"canteens" yaml:"canteens"`
}

// CanteenDoc 餐廳
type CanteenDoc struct {
	ID             string      `json:"id,omitempty" yaml:"id,omitempty"`
	Name           string      `json:"name" yaml:"name"`
	Latitude       float64     `json:"latitude" yaml:"latitude"`
	Longitude      float64     `json:"longitude" yaml:"longitude"`
	Image          string      `json:"image,omitempty" yaml:"image,omitempty"`
	Description    string      `json:"description" yaml:"description"`
	OperatingHours string      `json:"operating_hours" yaml:"operating_hours"`
	Amenities      []string    `json:"amenities" yaml:"amenities"`
	Tenants        []TenantDoc `json:"tenants" yaml:"tenants"`
}

// TenantDoc 攤位
type TenantDoc struct {
	ID                string    `json:"id,omitempty" yaml:"id,omitempty"`
	Name              string    `json:"name" yaml:"name"`
	Image             string    `json:"image,omitempty" yaml:"image,omitempty"`
	ContactPerson     string    `json:"contact_person,omitempty" yaml:"contact_person,omitempty"`
	PreorderAvailable bool      `json:"preorder_available" yaml:"preorder_available"`
	OperatingHours    string    `json:"operating_hours" yaml:"operating_hours"`
	IsHalal           bool      `json:"is_halal" yaml:"is_halal"`
	PriceRange        string    `json:"price_range" yaml:"price_range"`
	Foods             []FoodDoc `json:"foods" yaml:"foods"`
}

// FoodDoc 菜色
type FoodDoc struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Categories  []Category `json:"categories" yaml:"categories"`
}

// ParseYAML 解析 YAML 目錄
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog yaml: %w", err)
	}
	return &doc, nil
}

// ParseJSON 解析 JSON 目錄
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := common.ParseJSONBytes(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog json: %w", err)
	}
	return &doc, nil
}

// Snapshot 攤平成快照；沒有 ID 的紀錄依名稱路徑產生穩定 ID
func (d *Document) Snapshot() (*Snapshot, error) {
	var (
		canteens []Canteen
		tenants  []Tenant
		foods    []Food
		seen     = make(map[string]struct{})
	)

	for _, cd := range d.Canteens {
		name := strings.TrimSpace(cd.Name)
		if name == "" {
			return nil, fmt.Errorf("canteen without name")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate canteen name %q", name)
		}
		seen[name] = struct{}{}

		canteenID := cd.ID
		if canteenID == "" {
			canteenID = common.StableID(name)
		}
		canteens = append(canteens, Canteen{
			ID:             canteenID,
			Name:           name,
			Latitude:       cd.Latitude,
			Longitude:      cd.Longitude,
			Description:    cd.Description,
			OperatingHours: cd.OperatingHours,
			Amenities:      cd.Amenities,
			Image:          cd.Image,
		})

		for _, td := range cd.Tenants {
			tenantID := td.ID
			if tenantID == "" {
				tenantID = common.StableID(name, td.Name)
			}
			tenants = append(tenants, Tenant{
				ID:                tenantID,
				Name:              td.Name,
				CanteenID:         canteenID,
				OperatingHours:    td.OperatingHours,
				IsHalal:           td.IsHalal,
				PriceRange:        td.PriceRange,
				ContactPerson:     td.ContactPerson,
				PreorderAvailable: td.PreorderAvailable,
				Image:             td.Image,
			})

			for _, fd := range td.Foods {
				foodID := fd.ID
				if foodID == "" {
					foodID = common.StableID(name, td.Name, fd.Name)
				}
				foods = append(foods, Food{
					ID:          foodID,
					Name:        fd.Name,
					Description: fd.Description,
					TenantID:    tenantID,
					Categories:  append([]Category(nil), fd.Categories...),
				})
			}
		}
	}

	return NewSnapshot(canteens, tenants, foods), nil
}
