package usecase

import (
	"context"
	"fmt"
	"strings"

	pricing "mealQuote/internal/modules/pricing/domain"
	"mealQuote/internal/modules/quotebuilder/application/port"
)

var ErrMissingCustomerID = fmt.Errorf("%w: missing customer id", ErrInvalidInput)

type PricingUseCase struct {
	api       port.PricingAPI
	cache     *QueryCache
	validator *PayloadValidator
}

func NewPricingUseCase(api port.PricingAPI, cache *QueryCache, validator *PayloadValidator) *PricingUseCase {
	return &PricingUseCase{api: api, cache: cache, validator: validator}
}

func (uc *PricingUseCase) ListPricing(ctx context.Context) ([]pricing.CustomerData, error) {
	return cachedList(ctx, uc.cache, KeyPricing, uc.api.ListPricing)
}

func (uc *PricingUseCase) BasePrices(ctx context.Context) ([]pricing.PriceData, error) {
	return cachedList(ctx, uc.cache, KeyBasePrices, uc.api.BasePrices)
}

func (uc *PricingUseCase) CustomerPrices(ctx context.Context, customerID string) (pricing.CustomerData, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return pricing.CustomerData{}, ErrMissingCustomerID
	}
	return cachedFetch(ctx, uc.cache, CustomerKey(customerID), func(ctx context.Context) (pricing.CustomerData, error) {
		return uc.api.CustomerPrices(ctx, customerID)
	})
}

// SavePricing stores base or customer prices and drops every pricing entry, since a base
// price change moves every customer's adjusted prices.
func (uc *PricingUseCase) SavePricing(ctx context.Context, update pricing.PricingUpdate) error {
	update.CustomerID = strings.TrimSpace(update.CustomerID)
	if err := uc.validator.Struct(update); err != nil {
		return err
	}
	if err := uc.api.SavePricing(ctx, update); err != nil {
		return fmt.Errorf("save pricing: %w", err)
	}
	uc.cache.Invalidate(KeyPricing, KeyBasePrices)
	uc.cache.InvalidatePrefix(customerPrefix)
	return nil
}

// PriceTable combines base prices with a customer's percentage. An empty customerID gives
// the unadjusted base table.
func (uc *PricingUseCase) PriceTable(ctx context.Context, customerID, category string) (pricing.PriceTable, error) {
	base, err := uc.BasePrices(ctx)
	if err != nil {
		return pricing.PriceTable{}, err
	}
	if strings.TrimSpace(customerID) == "" {
		return pricing.BuildPriceTable(base, nil, category), nil
	}
	customer, err := uc.CustomerPrices(ctx, customerID)
	if err != nil {
		return pricing.PriceTable{}, err
	}
	return pricing.BuildPriceTable(base, &customer, category), nil
}
