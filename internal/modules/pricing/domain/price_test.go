package domain

import (
	"math"
	"testing"
)

func TestAdjustPrice(t *testing.T) {
	tests := []struct {
		name       string
		unitPrice  float64
		percentage float64
		expected   float64
	}{
		{name: "zero percentage keeps price", unitPrice: 3.45, percentage: 0, expected: 3.45},
		{name: "zero percentage still rounds", unitPrice: 3.456, percentage: 0, expected: 3.46},
		{name: "uplift", unitPrice: 4.5, percentage: 10, expected: 4.95},
		{name: "discount", unitPrice: 10, percentage: -15, expected: 8.5},
		{name: "rounds to pennies", unitPrice: 2.99, percentage: 7.5, expected: 3.21},
		{name: "free item", unitPrice: 0, percentage: 20, expected: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := AdjustPrice(test.unitPrice, test.percentage); got != test.expected {
				t.Fatalf("expected %v got %v", test.expected, got)
			}
		})
	}
}

func TestAdjustPriceIsRoundedFormula(t *testing.T) {
	for u := 0.0; u < 20; u += 1.37 {
		for p := -50.0; p <= 50; p += 12.5 {
			want := math.Round(u*(1+p/100)*100) / 100
			if got := AdjustPrice(u, p); got != want {
				t.Fatalf("AdjustPrice(%v, %v) expected %v got %v", u, p, want, got)
			}
		}
	}
}

func TestAdjustPriceRoundsBothBranches(t *testing.T) {
	if got, want := AdjustPrice(1.005, 0), RoundCurrency(1.005); got != want {
		t.Fatalf("expected %v got %v", want, got)
	}
	if got := AdjustPrice(2.5, 0); got != 2.5 {
		t.Fatalf("expected whole pennies to pass through, got %v", got)
	}
}

func TestBuildPriceTable(t *testing.T) {
	base := []PriceData{
		{ProductID: "p2", ProductName: "Roast Chicken", Category: "Main", UnitPrice: 3},
		{ProductID: "p1", ProductName: "apple crumble", Category: "Dessert", UnitPrice: 1.5},
		{ProductID: "p3", ProductName: "Fish Pie", Category: "Main", UnitPrice: 2.8},
	}
	customer := &CustomerData{
		CustomerID:     "c-9",
		Name:           "Oak Lodge",
		BasePercentage: 10,
		Prices:         []PriceData{{ProductID: "p3", ProductName: "Fish Pie", Category: "Main", UnitPrice: 2.5}},
	}

	table := BuildPriceTable(base, customer, "")
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].ProductID != "p1" || table.Rows[1].ProductID != "p3" || table.Rows[2].ProductID != "p2" {
		t.Fatalf("unexpected ordering: %+v", table.Rows)
	}
	if table.Rows[1].AdjustedPrice != 2.75 {
		t.Fatalf("expected override price adjusted to 2.75, got %v", table.Rows[1].AdjustedPrice)
	}
	if table.CustomerName != "Oak Lodge" || table.BasePercentage != 10 {
		t.Fatalf("unexpected customer header: %+v", table)
	}

	mains := BuildPriceTable(base, customer, "main")
	if len(mains.Rows) != 2 {
		t.Fatalf("expected 2 main rows, got %d", len(mains.Rows))
	}

	plain := BuildPriceTable(base, nil, "")
	for _, row := range plain.Rows {
		if row.AdjustedPrice != row.UnitPrice {
			t.Fatalf("base table should not adjust prices: %+v", row)
		}
	}
}
