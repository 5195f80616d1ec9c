package domain

import "testing"

func TestLaborRoleTotals(t *testing.T) {
	roles := []LaborRole{
		{Title: "Head Chef", HourlyRate: 15.5, HoursPerWeek: 40, NumberOfSimilarRoles: 1},
		{Title: "Kitchen Assistant", HourlyRate: 11.44, HoursPerWeek: 30, NumberOfSimilarRoles: 3},
		{Title: "Vacant", HourlyRate: 12, HoursPerWeek: 20, NumberOfSimilarRoles: 0},
	}
	for _, role := range roles {
		want := role.HourlyRate * role.HoursPerWeek * float64(role.NumberOfSimilarRoles) * 52
		if got := role.AnnualTotal(); !approxEqual(got, want) {
			t.Fatalf("%s: expected annual %v got %v", role.Title, want, got)
		}
		if got := role.AnnualTotal(); !approxEqual(got, role.WeeklyTotal()*52) {
			t.Fatalf("%s: annual is not 52 weeks of weekly", role.Title)
		}
	}
}

func TestSummarizeLabor(t *testing.T) {
	roles := []LaborRole{
		{Title: "Cook", HourlyRate: 12, HoursPerWeek: 40, NumberOfSimilarRoles: 2},
		{Title: "Porter", HourlyRate: 10, HoursPerWeek: 10, NumberOfSimilarRoles: 1},
	}
	apetito := ApetitoLabor{HourlyRate: 11, HoursPerWeek: 30, Multiplier: 1.5}

	summary := SummarizeLabor(roles, apetito)
	if len(summary.Roles) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(summary.Roles))
	}
	if !approxEqual(summary.CurrentWeeklyTotal, 1060) {
		t.Fatalf("unexpected weekly total %v", summary.CurrentWeeklyTotal)
	}
	if !approxEqual(summary.CurrentAnnualTotal, 1060*52) {
		t.Fatalf("unexpected annual total %v", summary.CurrentAnnualTotal)
	}
	if !approxEqual(summary.ApetitoWeeklyTotal, 495) {
		t.Fatalf("unexpected apetito weekly %v", summary.ApetitoWeeklyTotal)
	}
	if !approxEqual(summary.AnnualSavings, (1060-495)*52) {
		t.Fatalf("unexpected savings %v", summary.AnnualSavings)
	}
}
