package domain

const (
	daysPerMonth  = 30
	monthsPerYear = 12
	dietaryUplift = 0.2
)

// CalculatorInput holds the figures the quick estimate is computed from.
// DietaryRequirements is the percentage of residents with special dietary needs.
type CalculatorInput struct {
	TotalResidents      int     `json:"totalResidents"`
	MealsPerDay         float64 `json:"mealsPerDay"`
	PricePerMeal        float64 `json:"pricePerMeal"`
	DietaryRequirements float64 `json:"dietaryRequirements"`
}

type CostEstimate struct {
	DailyCost         float64 `json:"dailyCost"`
	MonthlyCost       float64 `json:"monthlyCost"`
	YearlyCost        float64 `json:"yearlyCost"`
	PerDinerDaily     float64 `json:"perDinerDaily"`
	DietaryMultiplier float64 `json:"dietaryMultiplier"`
}

// QuoteCalculator is stateless; the zero value is ready to use.
type QuoteCalculator struct{}

// Calculate applies the dietary multiplier to the daily, monthly and yearly totals.
// The per-diner figure is the undiluted meals-per-day cost of one resident.
func (QuoteCalculator) Calculate(in CalculatorInput) CostEstimate {
	residents := float64(max(in.TotalResidents, 0))
	meals := max(in.MealsPerDay, 0)
	price := max(in.PricePerMeal, 0)
	dietary := max(in.DietaryRequirements, 0)

	multiplier := 1 + (dietary/100)*dietaryUplift
	daily := residents * meals * price
	monthly := daily * daysPerMonth
	yearly := monthly * monthsPerYear

	return CostEstimate{
		DailyCost:         daily * multiplier,
		MonthlyCost:       monthly * multiplier,
		YearlyCost:        yearly * multiplier,
		PerDinerDaily:     meals * price,
		DietaryMultiplier: multiplier,
	}
}

// FormEstimate is the calculator result alongside the derived inputs.
type FormEstimate struct {
	Input     CalculatorInput `json:"input"`
	Estimate  CostEstimate    `json:"estimate"`
	Residents ResidentTotals  `json:"residents"`
	Labor     LaborSummary    `json:"labor"`
}

// EstimateForm derives calculator input from the form: residents are totalled across
// dining rooms and the base price per meal is scaled by the weighted category multiplier.
func (c QuoteCalculator) EstimateForm(form QuoteFormData) FormEstimate {
	residents := AggregateResidents(form.DiningRooms)
	input := CalculatorInput{
		TotalResidents:      residents.Total,
		MealsPerDay:         form.MealsPerDay,
		PricePerMeal:        form.Pricing.PricePerMeal * residents.Multiplier,
		DietaryRequirements: form.DietaryRequirements,
	}
	return FormEstimate{
		Input:     input,
		Estimate:  c.Calculate(input),
		Residents: residents,
		Labor:     SummarizeLabor(form.LaborRoles, form.ApetitoLabor),
	}
}
