package domain

import (
	"math"
	"slices"
	"strings"
)

// PriceData is a base price for one product.
type PriceData struct {
	ProductID   string  `json:"productId" validate:"required"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category,omitempty"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

// CustomerData is a customer's price list: a percentage applied on top of base prices,
// plus any customer-specific rows the pricing API returns.
type CustomerData struct {
	CustomerID     string      `json:"customerId"`
	Name           string      `json:"name"`
	BasePercentage float64     `json:"basePercentage"`
	Prices         []PriceData `json:"prices,omitempty"`
}

// PricingUpdate is the body of a pricing save. CustomerID empty means base prices.
type PricingUpdate struct {
	CustomerID     string      `json:"customerId,omitempty"`
	BasePercentage *float64    `json:"basePercentage,omitempty" validate:"omitempty,gte=-100"`
	Prices         []PriceData `json:"prices" validate:"dive"`
}

// AdjustPrice applies a percentage uplift (or discount when negative) and rounds to
// two decimals for display. A zero percentage still rounds, so every adjusted price is in pennies.
func AdjustPrice(unitPrice, basePercentage float64) float64 {
	return RoundCurrency(unitPrice * (1 + basePercentage/100))
}

// RoundCurrency rounds half away from zero to two decimals.
func RoundCurrency(value float64) float64 {
	return math.Round(value*100) / 100
}

// PriceRow is a price table line with the customer-adjusted price.
type PriceRow struct {
	PriceData
	AdjustedPrice float64 `json:"adjustedPrice"`
}

// PriceTable is the base price list as seen by one customer.
type PriceTable struct {
	CustomerID     string     `json:"customerId,omitempty"`
	CustomerName   string     `json:"customerName,omitempty"`
	BasePercentage float64    `json:"basePercentage"`
	Rows           []PriceRow `json:"rows"`
}

// BuildPriceTable adjusts base prices by the customer's percentage. Customer-specific
// rows replace the base row of the same product before the adjustment is applied.
// An empty category keeps every row; rows are ordered by product name then id.
func BuildPriceTable(base []PriceData, customer *CustomerData, category string) PriceTable {
	table := PriceTable{}
	overrides := map[string]PriceData{}
	if customer != nil {
		table.CustomerID = customer.CustomerID
		table.CustomerName = customer.Name
		table.BasePercentage = customer.BasePercentage
		for _, price := range customer.Prices {
			overrides[price.ProductID] = price
		}
	}

	wanted := strings.TrimSpace(category)
	table.Rows = make([]PriceRow, 0, len(base))
	for _, price := range base {
		if override, ok := overrides[price.ProductID]; ok {
			price = override
		}
		if wanted != "" && !strings.EqualFold(price.Category, wanted) {
			continue
		}
		table.Rows = append(table.Rows, PriceRow{
			PriceData:     price,
			AdjustedPrice: AdjustPrice(price.UnitPrice, table.BasePercentage),
		})
	}

	slices.SortStableFunc(table.Rows, func(a, b PriceRow) int {
		if c := strings.Compare(strings.ToLower(a.ProductName), strings.ToLower(b.ProductName)); c != 0 {
			return c
		}
		return strings.Compare(a.ProductID, b.ProductID)
	})
	return table
}
