package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"QuoteDesk/internal/domain/models"
	"QuoteDesk/internal/usecase"
	xhttp "QuoteDesk/pkg/http"
	xlogger "QuoteDesk/pkg/logger"
)

// QuoteEchoHandler serves quote summaries over Echo.
type QuoteEchoHandler struct {
	logger *xlogger.Logger
	agg    *usecase.QuoteAggregator
}

func NewQuoteEchoHandler(logger *xlogger.Logger, agg *usecase.QuoteAggregator) *QuoteEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &QuoteEchoHandler{logger: logger, agg: agg}
}

func (h *QuoteEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stock", h.Stock)
	g.GET("/timeframes", h.Timeframes)
}

// Stock handles GET /api/stock?symbol=&timeframe=.
func (h *QuoteEchoHandler) Stock(c echo.Context) error {
	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.AppErrorResponse(c, verr)
	}

	res, err := h.agg.Summary(c.Request().Context(), req.Symbol, req.Timeframe)
	if err != nil {
		return xhttp.AppErrorResponse(c, mapQuoteError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, res)
}

// Timeframes handles GET /api/timeframes.
func (h *QuoteEchoHandler) Timeframes(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.agg.Timeframes())
}

func mapQuoteError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrMissingCredential):
		return xhttp.InternalError("Polygon API key not configured")
	case errors.Is(err, models.ErrNotFound):
		return xhttp.NotFoundError("Stock not found")
	default:
		return xhttp.NewAppError("ERR_UPSTREAM", "Failed to fetch stock data", http.StatusInternalServerError).
			WithError(err)
	}
}
