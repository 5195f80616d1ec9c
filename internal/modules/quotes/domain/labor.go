package domain

const weeksPerYear = 52

// LaborRole is one line of the care home's current kitchen staffing.
type LaborRole struct {
	Title                string  `json:"title"`
	HourlyRate           float64 `json:"hourlyRate" validate:"gte=0"`
	HoursPerWeek         float64 `json:"hoursPerWeek" validate:"gte=0,lte=168"`
	NumberOfSimilarRoles int     `json:"numberOfSimilarRoles" validate:"gte=0"`
}

func (r LaborRole) WeeklyTotal() float64 {
	return r.HourlyRate * r.HoursPerWeek * float64(r.NumberOfSimilarRoles)
}

func (r LaborRole) AnnualTotal() float64 {
	return r.WeeklyTotal() * weeksPerYear
}

// ApetitoLabor is the staffing needed once the meal service is in place.
type ApetitoLabor struct {
	HourlyRate   float64 `json:"hourlyRate" validate:"gte=0"`
	HoursPerWeek float64 `json:"hoursPerWeek" validate:"gte=0,lte=168"`
	Multiplier   float64 `json:"multiplier" validate:"gte=0"`
}

func (l ApetitoLabor) WeeklyTotal() float64 {
	return l.HourlyRate * l.HoursPerWeek * l.Multiplier
}

func (l ApetitoLabor) AnnualTotal() float64 {
	return l.WeeklyTotal() * weeksPerYear
}

// LaborLine is a role with its derived totals, as shown in the labor table.
type LaborLine struct {
	LaborRole
	WeeklyTotal float64 `json:"weeklyTotal"`
	AnnualTotal float64 `json:"annualTotal"`
}

type LaborSummary struct {
	Roles              []LaborLine `json:"roles"`
	CurrentWeeklyTotal float64     `json:"currentWeeklyTotal"`
	CurrentAnnualTotal float64     `json:"currentAnnualTotal"`
	ApetitoWeeklyTotal float64     `json:"apetitoWeeklyTotal"`
	ApetitoAnnualTotal float64     `json:"apetitoAnnualTotal"`
	AnnualSavings      float64     `json:"annualSavings"`
}

// SummarizeLabor totals the current roles and compares them with the proposed staffing.
func SummarizeLabor(roles []LaborRole, apetito ApetitoLabor) LaborSummary {
	summary := LaborSummary{Roles: make([]LaborLine, 0, len(roles))}
	for _, role := range roles {
		line := LaborLine{LaborRole: role, WeeklyTotal: role.WeeklyTotal(), AnnualTotal: role.AnnualTotal()}
		summary.Roles = append(summary.Roles, line)
		summary.CurrentWeeklyTotal += line.WeeklyTotal
		summary.CurrentAnnualTotal += line.AnnualTotal
	}
	summary.ApetitoWeeklyTotal = apetito.WeeklyTotal()
	summary.ApetitoAnnualTotal = apetito.AnnualTotal()
	summary.AnnualSavings = summary.CurrentAnnualTotal - summary.ApetitoAnnualTotal
	return summary
}
