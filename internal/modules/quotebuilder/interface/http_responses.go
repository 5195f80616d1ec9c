package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mealQuote/internal/modules/quotebuilder/application/port"
	"mealQuote/internal/modules/quotebuilder/application/usecase"
	"mealQuote/internal/modules/quotebuilder/domain"
	"mealQuote/internal/shared/auth"
	"mealQuote/internal/shared/httputil"
)

// HeaderSessionID identifies the browser session that Retry replays for.
const HeaderSessionID = "X-Session-ID"

// errorTable lists narrow sentinels before broad ones.
var errorTable = httputil.NewErrorTable(
	httputil.Outcome{Status: http.StatusInternalServerError, Message: "internal server error"},
	httputil.Rule{Target: usecase.ErrInvalidInput, Status: http.StatusBadRequest, ShowCause: true},
	httputil.Rule{Target: usecase.ErrNoPreviousRequest, Status: http.StatusConflict, Message: "no previous quote request to retry"},
	httputil.Rule{Target: usecase.ErrWrongPassword, Status: http.StatusUnauthorized, Message: "incorrect password"},
	httputil.Rule{Target: auth.ErrMissingToken, Status: http.StatusUnauthorized, Message: "pricing is locked"},
	httputil.Rule{Target: auth.ErrInvalidToken, Status: http.StatusUnauthorized, Message: "pricing session expired"},
	httputil.Rule{Target: port.ErrNotFound, Status: http.StatusNotFound, Message: "not found"},
	httputil.Rule{Target: port.ErrForbidden, Status: http.StatusForbidden, Message: "the quote service rejected the request"},
	httputil.Rule{Target: port.ErrUnsupported, Status: http.StatusNotImplemented, Message: "not supported"},
	httputil.Rule{Target: port.ErrUpstream, Status: http.StatusBadGateway, Message: "the quote service is unavailable"},
)

func respondOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, domain.OK(data, time.Now()))
}

func respondCreated(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, domain.Created(data, time.Now()))
}

// respondError writes a failure envelope for err. data is kept for callers with a fallback value.
func respondError(c echo.Context, err error, data any) error {
	outcome := errorTable.Resolve(err)
	var errs any
	var validation *usecase.ValidationError
	if errors.As(err, &validation) {
		errs = validation.Fields
	}

	attrs := []any{
		slog.String("path", c.Path()),
		slog.Int("status", outcome.Status),
		slog.String("requestId", requestID(c)),
		slog.Any("error", err),
	}
	if outcome.ServerFault() {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}
	return c.JSON(outcome.Status, domain.Failure(outcome.Status, outcome.Message, data, errs, time.Now()))
}

// bindPayload decodes the body and reports decode failures as invalid input.
func bindPayload(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return &usecase.ValidationError{Fields: map[string]string{"body": httpErrorMessage(httpErr)}}
		}
		return &usecase.ValidationError{Fields: map[string]string{"body": err.Error()}}
	}
	return nil
}

func httpErrorMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return http.StatusText(err.Code)
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// sessionID reads the X-Session-ID header. Requests without it are not remembered for Retry.
func sessionID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderSessionID))
}
