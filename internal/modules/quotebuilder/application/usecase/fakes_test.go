package usecase

import (
	"context"
	"slices"
	"sync"

	pricing "mealQuote/internal/modules/pricing/domain"
	products "mealQuote/internal/modules/products/domain"
	"mealQuote/internal/modules/quotebuilder/application/port"
	quotes "mealQuote/internal/modules/quotes/domain"
	users "mealQuote/internal/modules/users/domain"
)

type fakeQuoteAPI struct {
	mu          sync.Mutex
	quotes      map[string]quotes.SavedQuote
	history     map[string][]quotes.QuoteHistory
	requestErr  error
	requestFn   func(quotes.QuoteFormData) (quotes.QuoteResponse, error)
	requests    []quotes.QuoteFormData
	chatAnswer  string
	listCalls   int
	historyHits int
}

func newFakeQuoteAPI() *fakeQuoteAPI {
	return &fakeQuoteAPI{quotes: map[string]quotes.SavedQuote{}, history: map[string][]quotes.QuoteHistory{}}
}

func (f *fakeQuoteAPI) RequestQuote(_ context.Context, form quotes.QuoteFormData) (quotes.QuoteResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, form)
	fn, err := f.requestFn, f.requestErr
	f.mu.Unlock()
	if fn != nil {
		return fn(form)
	}
	if err != nil {
		return quotes.QuoteResponse{}, err
	}
	return quotes.QuoteResponse{DailyCost: 100, MonthlyCost: 3000, YearlyCost: 36000, Summary: "ok"}, nil
}

func (f *fakeQuoteAPI) Chat(_ context.Context, quoteID, question string) (quotes.ChatReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history[quoteID] = append(f.history[quoteID], quotes.QuoteHistory{QuoteID: quoteID, Question: question, Version: len(f.history[quoteID]) + 1})
	return quotes.ChatReply{Answer: f.chatAnswer}, nil
}

func (f *fakeQuoteAPI) ClearChat(context.Context) error { return nil }

func (f *fakeQuoteAPI) ListQuotes(context.Context) ([]quotes.SavedQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	list := make([]quotes.SavedQuote, 0, len(f.quotes))
	for _, quote := range f.quotes {
		list = append(list, quote)
	}
	slices.SortFunc(list, func(a, b quotes.SavedQuote) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return list, nil
}

func (f *fakeQuoteAPI) GetQuote(_ context.Context, id string) (quotes.SavedQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	quote, ok := f.quotes[id]
	if !ok {
		return quotes.SavedQuote{}, port.ErrNotFound
	}
	return quote, nil
}

func (f *fakeQuoteAPI) QuoteHistory(_ context.Context, id string) ([]quotes.QuoteHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyHits++
	return slices.Clone(f.history[id]), nil
}

func (f *fakeQuoteAPI) SaveQuote(_ context.Context, quote quotes.SavedQuote) (quotes.SavedQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if quote.ID == "" {
		quote.ID = "q-" + string(rune('a'+len(f.quotes)))
	}
	f.quotes[quote.ID] = quote
	return quote, nil
}

func (f *fakeQuoteAPI) DeleteQuote(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.quotes[id]; !ok {
		return port.ErrNotFound
	}
	delete(f.quotes, id)
	return nil
}

func (f *fakeQuoteAPI) PushToHubSpot(_ context.Context, id string) (quotes.HubSpotSync, error) {
	return quotes.HubSpotSync{DealID: "deal-" + id, Status: "synced"}, nil
}

type fakePricingAPI struct {
	mu        sync.Mutex
	base      []pricing.PriceData
	customers map[string]pricing.CustomerData
	baseCalls int
	saved     []pricing.PricingUpdate
}

func (f *fakePricingAPI) ListPricing(context.Context) ([]pricing.CustomerData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]pricing.CustomerData, 0, len(f.customers))
	for _, customer := range f.customers {
		list = append(list, customer)
	}
	return list, nil
}

func (f *fakePricingAPI) BasePrices(context.Context) ([]pricing.PriceData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.baseCalls++
	return slices.Clone(f.base), nil
}

func (f *fakePricingAPI) CustomerPrices(_ context.Context, id string) (pricing.CustomerData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer, ok := f.customers[id]
	if !ok {
		return pricing.CustomerData{}, port.ErrNotFound
	}
	return customer, nil
}

func (f *fakePricingAPI) SavePricing(_ context.Context, update pricing.PricingUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, update)
	if update.CustomerID == "" {
		f.base = slices.Clone(update.Prices)
		return nil
	}
	customer := f.customers[update.CustomerID]
	customer.CustomerID = update.CustomerID
	if update.BasePercentage != nil {
		customer.BasePercentage = *update.BasePercentage
	}
	f.customers[update.CustomerID] = customer
	return nil
}

type fakeCatalogAPI struct {
	products []products.Product
	users    []users.User
	calls    int
}

func (f *fakeCatalogAPI) ListProducts(context.Context) ([]products.Product, error) {
	f.calls++
	return slices.Clone(f.products), nil
}

func (f *fakeCatalogAPI) CreateProduct(_ context.Context, p products.NewProduct) (products.Product, error) {
	created := products.Product{ID: "p-new", Name: p.Name, Category: p.Category, UnitPrice: p.UnitPrice}
	f.products = append(f.products, created)
	return created, nil
}

func (f *fakeCatalogAPI) ListUsers(context.Context) ([]users.User, error) {
	f.calls++
	return slices.Clone(f.users), nil
}

func (f *fakeCatalogAPI) CreateUser(_ context.Context, u users.NewUser) (users.User, error) {
	created := users.User{ID: "u-new", Name: u.Name, Email: u.Email, Role: u.Role}
	f.users = append(f.users, created)
	return created, nil
}

func (f *fakeCatalogAPI) DeleteUser(_ context.Context, id string) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return port.ErrNotFound
}

func validForm() quotes.QuoteFormData {
	return quotes.QuoteFormData{
		CareHomeName:        "Willow House",
		NumberOfDiningRooms: 1,
		DiningRooms: []quotes.DiningRoom{{
			Name:           "Main",
			ResidentCounts: map[string]int{quotes.ResidentsStandard: 20},
			SelectedMenu:   quotes.MenuGold,
		}},
		SelectedMenu: quotes.MenuGold,
		MealsPerDay:  3,
		Pricing:      quotes.PricingSelection{PricePerMeal: 4.5},
	}
}
