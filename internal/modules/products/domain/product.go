package domain

import "strings"

// Product is a catalog entry as served by the products API.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	MenuTier    string  `json:"menuTier,omitempty"`
	PortionSize string  `json:"portionSize,omitempty"`
	IDDSILevel  int     `json:"iddsiLevel,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
}

// NewProduct is the create payload.
type NewProduct struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Category    string  `json:"category" validate:"required"`
	MenuTier    string  `json:"menuTier,omitempty" validate:"omitempty,menutier"`
	PortionSize string  `json:"portionSize,omitempty"`
	IDDSILevel  int     `json:"iddsiLevel,omitempty" validate:"omitempty,min=3,max=6"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

func (p NewProduct) Trimmed() NewProduct {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.MenuTier = strings.TrimSpace(p.MenuTier)
	p.PortionSize = strings.TrimSpace(p.PortionSize)
	return p
}

// FilterByCategory keeps products whose category matches case-insensitively. Empty keeps all.
func FilterByCategory(products []Product, category string) []Product {
	wanted := strings.TrimSpace(category)
	if wanted == "" {
		return products
	}
	filtered := make([]Product, 0, len(products))
	for _, product := range products {
		if strings.EqualFold(product.Category, wanted) {
			filtered = append(filtered, product)
		}
	}
	return filtered
}
