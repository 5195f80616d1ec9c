package transport

import (
	"strings"

	"github.com/labstack/echo/v4"

	products "mealQuote/internal/modules/products/domain"
	"mealQuote/internal/modules/quotebuilder/application/usecase"
	users "mealQuote/internal/modules/users/domain"
)

func NewListProductsHandler(uc *usecase.CatalogUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := uc.Products(c.Request().Context(), c.QueryParam("category"))
		if err != nil {
			return respondError(c, err, nil)
		}
		if items == nil {
			items = []products.Product{}
		}
		return respondOK(c, items)
	}
}

func NewCreateProductHandler(uc *usecase.CatalogUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var product products.NewProduct
		if err := bindPayload(c, &product); err != nil {
			return respondError(c, err, nil)
		}
		created, err := uc.CreateProduct(c.Request().Context(), product)
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondCreated(c, created)
	}
}

func NewListUsersHandler(uc *usecase.UserUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := uc.Users(c.Request().Context())
		if err != nil {
			return respondError(c, err, nil)
		}
		if list == nil {
			list = []users.User{}
		}
		return respondOK(c, list)
	}
}

func NewCreateUserHandler(uc *usecase.UserUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var user users.NewUser
		if err := bindPayload(c, &user); err != nil {
			return respondError(c, err, nil)
		}
		created, err := uc.CreateUser(c.Request().Context(), user)
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondCreated(c, created)
	}
}

func NewDeleteUserHandler(uc *usecase.UserUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if err := uc.DeleteUser(c.Request().Context(), id); err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, map[string]any{"id": id, "deleted": true})
	}
}
