package api

import (
	"net/http"

	"TermPulse/internal/domain/models"
	"TermPulse/internal/service/ratelimit"
	"TermPulse/internal/usecase"
	xhttp "TermPulse/pkg/http"
	xlogger "TermPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig bounds analyze traffic per client IP.
type RateLimitConfig struct {
	Enabled      bool
	Capacity     float64
	RefillPerSec float64
}

// AnalysisHandler implements the Echo HTTP handlers for market analysis.
type AnalysisHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	limiter  *ratelimit.Limiter
	rl       RateLimitConfig
}

func NewAnalysisHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer, rl RateLimitConfig) *AnalysisHandler {
	return &AnalysisHandler{
		logger:   logger,
		analyzer: analyzer,
		limiter:  ratelimit.New(),
		rl:       rl,
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.Health)
	e.POST("/analyze", h.Analyze, h.rateLimit)

	g := e.Group("/api")
	g.GET("/term-structure", h.TermStructure)
	g.POST("/tickers", h.Tickers)
}

func (h *AnalysisHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.rl.Enabled && !h.limiter.Allow(c.RealIP(), h.rl.Capacity, h.rl.RefillPerSec) {
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded"))
		}
		return next(c)
	}
}

// Health reports service liveness.
func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": nowRFC3339(),
	})
}

// Analyze runs the exhaustion analysis for one contract pair.
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("analyze usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// TermStructure reports the futures curve for a comma separated ticker list.
func (h *AnalysisHandler) TermStructure(c echo.Context) error {
	req := &models.TermStructureRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	tickers := usecase.SplitTickers(req.Tickers)
	res, err := h.analyzer.TermStructure(c.Request().Context(), tickers)
	if err != nil {
		h.logger.Error("term structure usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Tickers reports current prices for a list of symbols.
func (h *AnalysisHandler) Tickers(c echo.Context) error {
	req := &models.TickersRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows := h.analyzer.Tickers(c.Request().Context(), req.Symbols)
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}
