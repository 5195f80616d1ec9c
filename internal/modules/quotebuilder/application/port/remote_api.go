package port

import (
	"context"

	pricing "mealQuote/internal/modules/pricing/domain"
	products "mealQuote/internal/modules/products/domain"
	quotes "mealQuote/internal/modules/quotes/domain"
	users "mealQuote/internal/modules/users/domain"
)

// QuoteAPI is the quoting side of the remote API.
type QuoteAPI interface {
	RequestQuote(ctx context.Context, form quotes.QuoteFormData) (quotes.QuoteResponse, error)
	Chat(ctx context.Context, quoteID, question string) (quotes.ChatReply, error)
	ClearChat(ctx context.Context) error
	ListQuotes(ctx context.Context) ([]quotes.SavedQuote, error)
	GetQuote(ctx context.Context, id string) (quotes.SavedQuote, error)
	QuoteHistory(ctx context.Context, id string) ([]quotes.QuoteHistory, error)
	SaveQuote(ctx context.Context, quote quotes.SavedQuote) (quotes.SavedQuote, error)
	DeleteQuote(ctx context.Context, id string) error
	PushToHubSpot(ctx context.Context, id string) (quotes.HubSpotSync, error)
}

type PricingAPI interface {
	ListPricing(ctx context.Context) ([]pricing.CustomerData, error)
	BasePrices(ctx context.Context) ([]pricing.PriceData, error)
	CustomerPrices(ctx context.Context, customerID string) (pricing.CustomerData, error)
	SavePricing(ctx context.Context, update pricing.PricingUpdate) error
}

type ProductAPI interface {
	ListProducts(ctx context.Context) ([]products.Product, error)
	CreateProduct(ctx context.Context, product products.NewProduct) (products.Product, error)
}

type UserAPI interface {
	ListUsers(ctx context.Context) ([]users.User, error)
	CreateUser(ctx context.Context, user users.NewUser) (users.User, error)
	DeleteUser(ctx context.Context, id string) error
}
