package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mealQuote/internal/modules/quotebuilder/application/usecase"
	"mealQuote/internal/modules/quotebuilder/infrastructure"
)

// Dependencies are the use cases and infrastructure the routes are served from.
type Dependencies struct {
	Quotes     *usecase.QuoteUseCase
	Pricing    *usecase.PricingUseCase
	Catalog    *usecase.CatalogUseCase
	Users      *usecase.UserUseCase
	Gate       *usecase.PricingGate
	Cache      *usecase.QueryCache
	Hub        *infrastructure.Hub
	Metrics    http.Handler
	SendBuffer int
}

func RegisterRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/healthz", NewHealthHandler(deps.Hub, deps.Cache))
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics))
	}

	api := e.Group("/api")

	quote := api.Group("/quote")
	quote.POST("/request", NewSubmitQuoteHandler(deps.Quotes))
	quote.POST("/retry", NewRetryQuoteHandler(deps.Quotes))
	quote.POST("/estimate", NewEstimateHandler(deps.Quotes))
	quote.POST("/labor", NewLaborHandler(deps.Quotes))
	quote.POST("/dining-rooms", NewResizeDiningRoomsHandler(deps.Quotes))
	quote.POST("/meal-categories", NewEditCategoryPriceHandler(deps.Quotes))
	quote.POST("/chat", NewChatHandler(deps.Quotes))
	quote.POST("/clear", NewClearChatHandler(deps.Quotes))

	api.GET("/quotes", NewListQuotesHandler(deps.Quotes))
	api.POST("/quotes", NewSaveQuoteHandler(deps.Quotes))
	api.GET("/quotes/:id", NewGetQuoteHandler(deps.Quotes))
	api.DELETE("/quotes/:id", NewDeleteQuoteHandler(deps.Quotes))
	api.GET("/quotes/:id/history", NewQuoteHistoryHandler(deps.Quotes))
	api.POST("/quotes/:id/hubspot", NewPushToHubSpotHandler(deps.Quotes))

	api.POST("/pricing/unlock", NewUnlockPricingHandler(deps.Gate))
	pricing := api.Group("/pricing", RequirePricingSession(deps.Gate))
	pricing.GET("", NewListPricingHandler(deps.Pricing))
	pricing.POST("", NewSavePricingHandler(deps.Pricing))
	pricing.GET("/base", NewBasePricesHandler(deps.Pricing))
	pricing.GET("/customers/:id", NewCustomerPricesHandler(deps.Pricing))
	pricing.GET("/table", NewPriceTableHandler(deps.Pricing))

	api.GET("/products", NewListProductsHandler(deps.Catalog))
	api.POST("/products", NewCreateProductHandler(deps.Catalog))

	api.GET("/users", NewListUsersHandler(deps.Users))
	api.POST("/users", NewCreateUserHandler(deps.Users))
	api.DELETE("/users/:id", NewDeleteUserHandler(deps.Users))

	e.GET("/ws/quote/:id/chat", NewChatWebsocketHandler(deps.Hub, deps.Quotes, deps.SendBuffer))
	e.GET("/ws/notifications", NewNotificationsWebsocketHandler(deps.Hub, deps.Gate, deps.SendBuffer))
}

type healthStatus struct {
	Status       string `json:"status"`
	Clients      int    `json:"clients"`
	CacheEntries int    `json:"cacheEntries"`
}

func NewHealthHandler(hub *infrastructure.Hub, cache *usecase.QueryCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := healthStatus{Status: "ok"}
		if hub != nil {
			status.Clients = hub.Len()
		}
		if cache != nil {
			status.CacheEntries = cache.Len()
		}
		return c.JSON(http.StatusOK, status)
	}
}
