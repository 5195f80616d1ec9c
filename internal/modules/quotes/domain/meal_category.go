package domain

import (
	"slices"
	"strings"
)

const (
	CategoryStandard      = "Standard"
	CategoryLarge         = "Large"
	CategoryMiniMealExtra = "Mini Meal Extra"
	CategoryIDDSILevel3   = "IDDSI Level 3"
	CategoryIDDSILevel4   = "IDDSI Level 4"
	CategoryIDDSILevel5   = "IDDSI Level 5"
	CategoryIDDSILevel6   = "IDDSI Level 6"
	CategoryAllergenFree  = "Allergen Free"
)

// MealCategory prices one bucket of residents within a dining room.
type MealCategory struct {
	Name          string  `json:"name" validate:"required"`
	Residents     int     `json:"residents" validate:"gte=0"`
	UnitPrice     float64 `json:"unitPrice" validate:"gte=0"`
	StandardPrice float64 `json:"standardPrice" validate:"gte=0"`
	Multiplier    float64 `json:"multiplier" validate:"gte=0"`
}

// PriceField selects which price of a category an edit targets.
type PriceField string

const (
	PriceFieldUnit     PriceField = "unitPrice"
	PriceFieldStandard PriceField = "standardPrice"
)

var defaultMultipliers = map[string]float64{
	CategoryStandard:      1.0,
	CategoryLarge:         1.25,
	CategoryMiniMealExtra: 0.5,
	CategoryIDDSILevel3:   1.2,
	CategoryIDDSILevel4:   1.2,
	CategoryIDDSILevel5:   1.2,
	CategoryIDDSILevel6:   1.2,
	CategoryAllergenFree:  1.15,
}

var defaultCategoryOrder = []string{
	CategoryStandard,
	CategoryLarge,
	CategoryMiniMealExtra,
	CategoryIDDSILevel3,
	CategoryIDDSILevel4,
	CategoryIDDSILevel5,
	CategoryIDDSILevel6,
	CategoryAllergenFree,
}

// DefaultMealCategories returns the zeroed category set a new dining room starts with.
func DefaultMealCategories() []MealCategory {
	categories := make([]MealCategory, 0, len(defaultCategoryOrder))
	for _, name := range defaultCategoryOrder {
		categories = append(categories, MealCategory{Name: name, Multiplier: defaultMultipliers[name]})
	}
	return categories
}

// DefaultMultiplier reports the multiplier for a known category name, or 1.
func DefaultMultiplier(name string) float64 {
	if m, ok := defaultMultipliers[CanonicalCategory(name)]; ok {
		return m
	}
	return 1
}

// CanonicalCategory maps loosely typed names ("mini meal extra", "iddsi 4") onto the known names.
func CanonicalCategory(name string) string {
	trimmed := strings.TrimSpace(name)
	key := strings.ToLower(strings.Join(strings.Fields(trimmed), " "))
	for _, known := range defaultCategoryOrder {
		if strings.ToLower(known) == key {
			return known
		}
	}
	switch key {
	case "iddsi 3", "level 3":
		return CategoryIDDSILevel3
	case "iddsi 4", "level 4":
		return CategoryIDDSILevel4
	case "iddsi 5", "level 5":
		return CategoryIDDSILevel5
	case "iddsi 6", "level 6":
		return CategoryIDDSILevel6
	case "mini meal", "mini-meal extra", "minimealextra":
		return CategoryMiniMealExtra
	}
	return trimmed
}

// IsMiniMealExtra reports whether the category couples its unit and standard price.
func (c MealCategory) IsMiniMealExtra() bool {
	return CanonicalCategory(c.Name) == CategoryMiniMealExtra
}

// SetCategoryPrice returns a copy of categories with field of the named category set to price.
// Mini Meal Extra keeps unit and standard price equal, so either edit writes both.
// The boolean is false when no category matches name.
func SetCategoryPrice(categories []MealCategory, name string, field PriceField, price float64) ([]MealCategory, bool) {
	updated := slices.Clone(categories)
	target := CanonicalCategory(name)
	found := false
	for i := range updated {
		if CanonicalCategory(updated[i].Name) != target {
			continue
		}
		found = true
		switch {
		case updated[i].IsMiniMealExtra():
			updated[i].UnitPrice = price
			updated[i].StandardPrice = price
		case field == PriceFieldStandard:
			updated[i].StandardPrice = price
		default:
			updated[i].UnitPrice = price
		}
	}
	return updated, found
}

// SetCategoryUnitPrice is SetCategoryPrice for the unit price field.
func SetCategoryUnitPrice(categories []MealCategory, name string, price float64) ([]MealCategory, bool) {
	return SetCategoryPrice(categories, name, PriceFieldUnit, price)
}

// SetCategoryStandardPrice is SetCategoryPrice for the standard price field.
func SetCategoryStandardPrice(categories []MealCategory, name string, price float64) ([]MealCategory, bool) {
	return SetCategoryPrice(categories, name, PriceFieldStandard, price)
}

// ParsePriceField accepts "unit"/"unitPrice" and "standard"/"standardPrice".
func ParsePriceField(raw string) (PriceField, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "unit", "unitprice", "unit_price":
		return PriceFieldUnit, true
	case "standard", "standardprice", "standard_price":
		return PriceFieldStandard, true
	default:
		return "", false
	}
}
