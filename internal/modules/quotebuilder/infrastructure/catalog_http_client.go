package infrastructure

import (
	"context"
	"net/http"

	pricing "mealQuote/internal/modules/pricing/domain"
	products "mealQuote/internal/modules/products/domain"
	"mealQuote/internal/modules/quotebuilder/application/port"
	users "mealQuote/internal/modules/users/domain"
)

type PricingHTTPClient struct {
	rest *RESTClient
}

func NewPricingHTTPClient(rest *RESTClient) *PricingHTTPClient {
	return &PricingHTTPClient{rest: rest}
}

func (c *PricingHTTPClient) ListPricing(ctx context.Context) ([]pricing.CustomerData, error) {
	return requestJSON[[]pricing.CustomerData](ctx, c.rest, http.MethodGet, pathPricing, nil, nil)
}

func (c *PricingHTTPClient) BasePrices(ctx context.Context) ([]pricing.PriceData, error) {
	return requestJSON[[]pricing.PriceData](ctx, c.rest, http.MethodGet, pathBasePrices, nil, nil)
}

func (c *PricingHTTPClient) CustomerPrices(ctx context.Context, customerID string) (pricing.CustomerData, error) {
	path, err := customerPricesPath(customerID)
	if err != nil {
		return pricing.CustomerData{}, err
	}
	return requestJSON[pricing.CustomerData](ctx, c.rest, http.MethodGet, path, nil, nil)
}

func (c *PricingHTTPClient) SavePricing(ctx context.Context, update pricing.PricingUpdate) error {
	return requestNoContent(ctx, c.rest, http.MethodPost, pathPricing, nil, update)
}

type ProductHTTPClient struct {
	rest *RESTClient
}

func NewProductHTTPClient(rest *RESTClient) *ProductHTTPClient {
	return &ProductHTTPClient{rest: rest}
}

func (c *ProductHTTPClient) ListProducts(ctx context.Context) ([]products.Product, error) {
	return requestJSON[[]products.Product](ctx, c.rest, http.MethodGet, pathProducts, nil, nil)
}

func (c *ProductHTTPClient) CreateProduct(ctx context.Context, product products.NewProduct) (products.Product, error) {
	return requestJSON[products.Product](ctx, c.rest, http.MethodPost, pathProducts, nil, product)
}

type UserHTTPClient struct {
	rest *RESTClient
}

func NewUserHTTPClient(rest *RESTClient) *UserHTTPClient {
	return &UserHTTPClient{rest: rest}
}

func (c *UserHTTPClient) ListUsers(ctx context.Context) ([]users.User, error) {
	return requestJSON[[]users.User](ctx, c.rest, http.MethodGet, pathUsers, nil, nil)
}

func (c *UserHTTPClient) CreateUser(ctx context.Context, user users.NewUser) (users.User, error) {
	return requestJSON[users.User](ctx, c.rest, http.MethodPost, pathUsers, nil, user)
}

func (c *UserHTTPClient) DeleteUser(ctx context.Context, id string) error {
	path, err := userPath(id)
	if err != nil {
		return err
	}
	return requestNoContent(ctx, c.rest, http.MethodDelete, path, nil, nil)
}

var (
	_ port.PricingAPI = (*PricingHTTPClient)(nil)
	_ port.ProductAPI = (*ProductHTTPClient)(nil)
	_ port.UserAPI    = (*UserHTTPClient)(nil)
)
