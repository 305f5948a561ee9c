// Package gutter models gutter systems as priced accessory catalogs and
// maps calculated quantities onto them.
package gutter

import (
	"strings"

	"github.com/dkurek/ofertownik/internal/geometry"
	"github.com/dkurek/ofertownik/internal/model"
)

// SystemType identifies the gutter material family.
type SystemType string

const (
	SystemPVC          SystemType = "pvc"
	SystemSteel        SystemType = "steel"
	SystemCopper       SystemType = "copper"
	SystemZincTitanium SystemType = "zinc-titanium"
)

// Accessory is one priced component of a gutter system. AutoCalculate
// marks quantities derived from the gutter calculator; manual accessories
// keep whatever quantity the user typed.
type Accessory struct {
	Name          string         `json:"name"`
	Unit          string         `json:"unit"`
	PriceUnitNet  float64        `json:"price_unit_net"`
	Quantity      float64        `json:"quantity"`
	VATRate       int            `json:"vat_rate"`
	Category      model.Category `json:"category"`
	AutoCalculate bool           `json:"auto_calculate"`
}

// System is a complete gutter system with its accessory price list.
type System struct {
	Name        string      `json:"name"`
	SystemType  SystemType  `json:"system_type"`
	Description string      `json:"description"`
	Accessories []Accessory `json:"accessories"`
}

// Clone returns a deep copy of the system.
func (s System) Clone() System {
	out := s
	out.Accessories = make([]Accessory, len(s.Accessories))
	copy(out.Accessories, s.Accessories)
	return out
}

// Accessory returns the accessory with the given name, or nil.
func (s *System) Accessory(name string) *Accessory {
	for i := range s.Accessories {
		if s.Accessories[i].Name == name {
			return &s.Accessories[i]
		}
	}
	return nil
}

// Template is a saved gutter system configuration, either shipped with
// the application or created by the user.
type Template struct {
	Name         string `json:"name"`
	System       System `json:"system"`
	IsPredefined bool   `json:"is_predefined"`
	CreatedAt    string `json:"created_at"`
}

// DefaultCatalog returns the predefined gutter systems shipped with the
// application. Prices are net, in PLN, with the reduced construction VAT
// rate.
func DefaultCatalog() []System {
	return []System{
		{
			Name:        "System PVC półokrągły 125mm",
			SystemType:  SystemPVC,
			Description: "Podstawowy system PVC",
			Accessories: []Accessory{
				{Name: "Rynna PVC 125mm", Unit: "mb", PriceUnitNet: 25.0, VATRate: 8, Category: model.CategoryMaterial, AutoCalculate: true},
				{Name: "Rura spustowa PVC 90mm", Unit: "mb", PriceUnitNet: 28.0, VATRate: 8, Category: model.CategoryMaterial, AutoCalculate: true},
				{Name: "Hak rynnowy PVC", Unit: "szt.", PriceUnitNet: 8.0, VATRate: 8, Category: model.CategoryMaterial, AutoCalculate: true},
				{Name: "Łącznik rynny PVC", Unit: "szt.", PriceUnitNet: 12.0, VATRate: 8, Category: model.CategoryMaterial, AutoCalculate: true},
				{Name: "Wylot do rury PVC", Unit: "szt.", PriceUnitNet: 15.0, VATRate: 8, Category: model.CategoryMaterial, AutoCalculate: true},
				{Name: "Obejma rurowa PVC", Unit: "szt.", PriceUnitNet: 10.0, VATRate: 8, Category: model.CategoryMaterial, AutoCalculate: true},
				{Name: "Kolano rury 67° PVC", Unit: "szt.", PriceUnitNet: 18.0, VATRate: 8, Category: model.CategoryMaterial, AutoCalculate: true},
				{Name: "Zaślepka rynny PVC", Unit: "szt.", PriceUnitNet: 6.0, VATRate: 8, Category: model.CategoryMaterial, AutoCalculate: true},
				{Name: "Montaż systemu rynnowego", Unit: "kpl.", PriceUnitNet: 450.0, VATRate: 8, Category: model.CategoryService, AutoCalculate: true},
			},
		},
	}
}

// ApplyMeasurements fills in auto-calculated accessory quantities from
// the gutter calculator result. Accessories are matched by name keyword,
// so renamed catalog entries keep working as long as the Polish component
// word survives. The installation service is a single lump line.
// Returns a new system; the input is not modified.
func ApplyMeasurements(system System, calc geometry.GutterResult) System {
	out := system.Clone()

	quantities := []struct {
		keyword  string
		quantity float64
	}{
		{"rynna", calc.GutterLength},
		{"rura spustowa", calc.DownpipeLength},
		{"hak", float64(calc.Hooks)},
		{"łącznik", float64(calc.Connectors)},
		{"wylot", float64(calc.Outlets)},
		{"obejma", float64(calc.Clamps)},
		{"kolano", float64(calc.Elbows)},
		{"zaślepka", float64(calc.EndCaps)},
		{"montaż", 1},
	}

	for i := range out.Accessories {
		acc := &out.Accessories[i]
		if !acc.AutoCalculate {
			continue
		}
		lower := strings.ToLower(acc.Name)
		for _, q := range quantities {
			if strings.Contains(lower, q.keyword) {
				acc.Quantity = q.quantity
				break
			}
		}
	}
	return out
}

// BuildCostItems converts the system's accessories with a positive
// quantity into estimate line items under the given group name.
func BuildCostItems(system System, group string) []model.CostItem {
	items := make([]model.CostItem, 0, len(system.Accessories))
	for _, acc := range system.Accessories {
		if acc.Quantity <= 0 {
			continue
		}
		item := model.NewCostItem(acc.Name, acc.Quantity, acc.Unit, acc.PriceUnitNet, acc.VATRate, acc.Category)
		item.Group = group
		items = append(items, item)
	}
	return items
}
