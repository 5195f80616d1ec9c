package transport

import (
	"strings"

	"github.com/labstack/echo/v4"

	"mealQuote/internal/modules/quotebuilder/application/usecase"
	quotes "mealQuote/internal/modules/quotes/domain"
)

// NewSubmitQuoteHandler exposes POST /api/quote/request. Failures still carry the failed-quote
// placeholder as data so the page always has something to render.
func NewSubmitQuoteHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form quotes.QuoteFormData
		if err := bindPayload(c, &form); err != nil {
			return respondError(c, err, quotes.FailedQuoteResponse())
		}
		resp, err := uc.Submit(c.Request().Context(), sessionID(c), form)
		if err != nil {
			return respondError(c, err, resp)
		}
		return respondOK(c, resp)
	}
}

func NewRetryQuoteHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp, err := uc.Retry(c.Request().Context(), sessionID(c))
		if err != nil {
			return respondError(c, err, resp)
		}
		return respondOK(c, resp)
	}
}

func NewEstimateHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form quotes.QuoteFormData
		if err := bindPayload(c, &form); err != nil {
			return respondError(c, err, nil)
		}
		estimate, err := uc.Estimate(form)
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, estimate)
	}
}

func NewLaborHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd quotes.LaborCommand
		if err := bindPayload(c, &cmd); err != nil {
			return respondError(c, err, nil)
		}
		summary, err := uc.Labor(cmd)
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, summary)
	}
}

func NewResizeDiningRoomsHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd quotes.ResizeDiningRoomsCommand
		if err := bindPayload(c, &cmd); err != nil {
			return respondError(c, err, nil)
		}
		rooms, err := uc.ResizeDiningRooms(cmd)
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, rooms)
	}
}

func NewEditCategoryPriceHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd quotes.EditCategoryPriceCommand
		if err := bindPayload(c, &cmd); err != nil {
			return respondError(c, err, nil)
		}
		categories, err := uc.EditCategoryPrice(cmd)
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, categories)
	}
}

type chatRequest struct {
	QuoteID  string `json:"quoteId"`
	Question string `json:"question"`
}

// NewChatHandler exposes POST /api/quote/chat. The question and quote id are read from the
// query string, or from a JSON body when the query has no question.
func NewChatHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := chatRequest{
			QuoteID:  c.QueryParam("quoteId"),
			Question: c.QueryParam("question"),
		}
		if strings.TrimSpace(req.Question) == "" {
			var body chatRequest
			if err := bindPayload(c, &body); err != nil {
				return respondError(c, err, nil)
			}
			req.Question = body.Question
			if strings.TrimSpace(req.QuoteID) == "" {
				req.QuoteID = body.QuoteID
			}
		}
		reply, err := uc.Chat(c.Request().Context(), req.QuoteID, req.Question)
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, reply)
	}
}

func NewClearChatHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := uc.Clear(c.Request().Context()); err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, map[string]bool{"cleared": true})
	}
}

func NewListQuotesHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := uc.List(c.Request().Context())
		if err != nil {
			return respondError(c, err, nil)
		}
		if list == nil {
			list = []quotes.SavedQuote{}
		}
		return respondOK(c, list)
	}
}

func NewSaveQuoteHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		var quote quotes.SavedQuote
		if err := bindPayload(c, &quote); err != nil {
			return respondError(c, err, nil)
		}
		saved, err := uc.Save(c.Request().Context(), quote)
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondCreated(c, saved)
	}
}

func NewGetQuoteHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		quote, err := uc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, quote)
	}
}

func NewDeleteQuoteHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := strings.TrimSpace(c.Param("id"))
		if err := uc.Delete(c.Request().Context(), id); err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, map[string]any{"id": id, "deleted": true})
	}
}

func NewQuoteHistoryHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		history, err := uc.History(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, err, nil)
		}
		if history == nil {
			history = []quotes.QuoteHistory{}
		}
		return respondOK(c, history)
	}
}

func NewPushToHubSpotHandler(uc *usecase.QuoteUseCase) echo.HandlerFunc {
	return func(c echo.Context) error {
		sync, err := uc.PushToHubSpot(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, err, nil)
		}
		return respondOK(c, sync)
	}
}
