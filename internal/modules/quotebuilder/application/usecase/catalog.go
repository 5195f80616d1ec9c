package usecase

import (
	"context"
	"fmt"
	"strings"

	products "mealQuote/internal/modules/products/domain"
	"mealQuote/internal/modules/quotebuilder/application/port"
	users "mealQuote/internal/modules/users/domain"
)

var ErrMissingUserID = fmt.Errorf("%w: missing user id", ErrInvalidInput)

type CatalogUseCase struct {
	api       port.ProductAPI
	cache     *QueryCache
	validator *PayloadValidator
}

func NewCatalogUseCase(api port.ProductAPI, cache *QueryCache, validator *PayloadValidator) *CatalogUseCase {
	return &CatalogUseCase{api: api, cache: cache, validator: validator}
}

// Products lists the catalog, optionally narrowed to one category.
func (uc *CatalogUseCase) Products(ctx context.Context, category string) ([]products.Product, error) {
	items, err := cachedList(ctx, uc.cache, KeyProducts, uc.api.ListProducts)
	if err != nil {
		return nil, err
	}
	return products.FilterByCategory(items, category), nil
}

func (uc *CatalogUseCase) CreateProduct(ctx context.Context, product products.NewProduct) (products.Product, error) {
	product = product.Trimmed()
	if err := uc.validator.Struct(product); err != nil {
		return products.Product{}, err
	}
	created, err := uc.api.CreateProduct(ctx, product)
	if err != nil {
		return products.Product{}, fmt.Errorf("create product: %w", err)
	}
	uc.cache.Invalidate(KeyProducts)
	return created, nil
}

type UserUseCase struct {
	api       port.UserAPI
	cache     *QueryCache
	validator *PayloadValidator
}

func NewUserUseCase(api port.UserAPI, cache *QueryCache, validator *PayloadValidator) *UserUseCase {
	return &UserUseCase{api: api, cache: cache, validator: validator}
}

func (uc *UserUseCase) Users(ctx context.Context) ([]users.User, error) {
	return cachedList(ctx, uc.cache, KeyUsers, uc.api.ListUsers)
}

func (uc *UserUseCase) CreateUser(ctx context.Context, user users.NewUser) (users.User, error) {
	user = user.Normalized()
	if err := uc.validator.Struct(user); err != nil {
		return users.User{}, err
	}
	created, err := uc.api.CreateUser(ctx, user)
	if err != nil {
		return users.User{}, fmt.Errorf("create user: %w", err)
	}
	uc.cache.Invalidate(KeyUsers)
	return created, nil
}

func (uc *UserUseCase) DeleteUser(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingUserID
	}
	if err := uc.api.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	uc.cache.Invalidate(KeyUsers)
	return nil
}
