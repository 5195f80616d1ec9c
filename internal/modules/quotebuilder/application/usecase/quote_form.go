package usecase

import (
	"fmt"

	quotes "mealQuote/internal/modules/quotes/domain"
)

// Estimate previews the costs of a form locally. Nothing is sent upstream.
// A preview does not need the care home name, every other rule applies.
func (uc *QuoteUseCase) Estimate(form quotes.QuoteFormData) (quotes.FormEstimate, error) {
	if err := withoutFields(uc.validator.Struct(form), "careHomeName"); err != nil {
		return quotes.FormEstimate{}, err
	}
	return uc.calculator.EstimateForm(form.Normalized()), nil
}

func (uc *QuoteUseCase) Labor(cmd quotes.LaborCommand) (quotes.LaborSummary, error) {
	if err := uc.validator.Struct(cmd); err != nil {
		return quotes.LaborSummary{}, err
	}
	return quotes.SummarizeLabor(cmd.Roles, cmd.Apetito), nil
}

func (uc *QuoteUseCase) ResizeDiningRooms(cmd quotes.ResizeDiningRoomsCommand) ([]quotes.DiningRoom, error) {
	if err := uc.validator.Struct(cmd); err != nil {
		return nil, err
	}
	return quotes.ResizeDiningRooms(cmd.Rooms, cmd.Count), nil
}

// EditCategoryPrice applies one price edit. Editing Mini Meal Extra sets both of its prices.
func (uc *QuoteUseCase) EditCategoryPrice(cmd quotes.EditCategoryPriceCommand) ([]quotes.MealCategory, error) {
	if err := uc.validator.Struct(cmd); err != nil {
		return nil, err
	}
	field, ok := quotes.ParsePriceField(cmd.Field)
	if !ok {
		return nil, &ValidationError{Fields: map[string]string{"field": "must be unitPrice or standardPrice"}}
	}
	categories := cmd.Categories
	if len(categories) == 0 {
		categories = quotes.DefaultMealCategories()
	}
	updated, found := quotes.SetCategoryPrice(categories, cmd.Name, field, cmd.Price)
	if !found {
		return nil, fmt.Errorf("%w: unknown meal category %q", ErrInvalidInput, cmd.Name)
	}
	return updated, nil
}
