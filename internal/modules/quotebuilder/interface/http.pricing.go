package transport

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	pricing "mealQuote/internal/modules/pricing/domain"
	"mealQuote/internal/modules/quotebuilder/application/usecase"
	"mealQuote/internal/shared/auth"
)

type unlockRequest struct {
	Password string `json:"password"`
}

// NewUnlockPricingHandler exchanges the shared password for a pricing session. The token is
// returned in the body and set as an http-only cookie.
func NewUnlockPricingHandler(gate *usecase.PricingGate) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req unlockRequest
		if err := bindPayload(c, &req); err != nil {
			return respondError(c, err, nil)
		}
		session, err := gate.Unlock(req.Password)
		if err != nil {
			return respondError(c, err, nil)
		}
		c.SetCookie(&http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    session.Token,
			Path:     "/",
			Expires:  session.ExpiresAt,
			MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
			HttpOnly: true,
			Secure:   c.IsTLS(),
			SameSite: http.SameSiteLaxMode,
		})
		return respondOK(c, session)
	}
}

// RequirePricingSession rejects requests without a valid pricing session token.
func RequirePricingSession(gate *usecase.PricingGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := gate.Authorize(auth.ExtractToken(c.Request(), "token")); err != nil {
				return respondError(c, err, nil)
			}
			return next(c)
		}
	}
}

func NewListPricingHandler(uc *usecase.PricingUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		customers, err := uc.ListPricing(c.Request().Context())
		if err != nil {
			return respondError(c, err, nil)
		}
		if customers == nil {
			customers = []pricing.CustomerData{}
		}
		return respondOK(c, customers)
	}
}

func NewSavePricingHandler(uc *usecase.PricingUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var update pricing.PricingUpdate
		if err := bindPayload(c, &update); err != nil {
			return respondError(c, err, nil)
		}
		if err := uc.SavePricing(c.Request().Context(), update); err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, update)
	}
}

func NewBasePricesHandler(uc *usecase.PricingUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		prices, err := uc.BasePrices(c.Request().Context())
		if err != nil {
			return respondError(c, err, nil)
		}
		if prices == nil {
			prices = []pricing.PriceData{}
		}
		return respondOK(c, prices)
	}
}

func NewCustomerPricesHandler(uc *usecase.PricingUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		customer, err := uc.CustomerPrices(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, customer)
	}
}

// NewPriceTableHandler serves GET /api/pricing/table?customerId=&category=.
func NewPriceTableHandler(uc *usecase.PricingUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		table, err := uc.PriceTable(c.Request().Context(), c.QueryParam("customerId"), c.QueryParam("category"))
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, table)
	}
}
