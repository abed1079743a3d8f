package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	"github.com/yigiitcoskun/us-economic-insights/internal/service/breaker"
	icache "github.com/yigiitcoskun/us-economic-insights/internal/service/cache"
	"github.com/yigiitcoskun/us-economic-insights/internal/service/metrics"
	"github.com/yigiitcoskun/us-economic-insights/internal/service/ratelimit"
	"github.com/yigiitcoskun/us-economic-insights/internal/usecase"
	xhttp "github.com/yigiitcoskun/us-economic-insights/pkg/http"
	applogger "github.com/yigiitcoskun/us-economic-insights/pkg/logger"
)

// AnalysisService is what the handler needs from the analysis use case.
type AnalysisService interface {
	Run(ctx context.Context, p usecase.RunParams) (*models.Run, error)
	Indicator(ctx context.Context, code string, periods int, start, end string) (models.IndicatorSummary, error)
	Catalog() models.Catalog
}

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// AnalysisHandler serves the analysis API.
type AnalysisHandler struct {
	svc      AnalysisService
	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
	checks   map[string]HealthCheck
	l        *applogger.Logger
}

type HandlerOption func(*AnalysisHandler)

// WithCache caches /api/report payloads for ttl.
func WithCache(c icache.BytesCache, ttl time.Duration) HandlerOption {
	return func(h *AnalysisHandler) {
		h.cache = c
		h.cacheTTL = ttl
	}
}

// WithRateLimiter limits report and indicator requests per client IP.
func WithRateLimiter(rl *ratelimit.Limiter) HandlerOption {
	return func(h *AnalysisHandler) { h.rl = rl }
}

func WithHealthCheck(name string, check HealthCheck) HandlerOption {
	return func(h *AnalysisHandler) { h.checks[name] = check }
}

func NewAnalysisHandler(svc AnalysisService, opts ...HandlerOption) *AnalysisHandler {
	metrics.Register()
	h := &AnalysisHandler{
		svc:    svc,
		cache:  icache.Nop{},
		checks: make(map[string]HealthCheck),
		l:      applogger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetLogger injects a structured logger.
func (h *AnalysisHandler) SetLogger(l *applogger.Logger) {
	if l != nil {
		h.l = l
	}
}

func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/report", h.Report)
	g.GET("/indicators", h.Indicators)
	g.GET("/indicators/:code", h.Indicator)
	g.GET("/health", h.Health)
}

type reportPayload struct {
	Run    *models.Run `json:"run"`
	Report string      `json:"report"`
}

func (h *AnalysisHandler) Report(c echo.Context) error {
	const endpoint = "report"
	defer metrics.ObserveLatency(endpoint, time.Now())

	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, endpoint) {
		return tooManyRequests(c)
	}

	ctx := c.Request().Context()
	key := "report:" + req.Start + ":" + req.End
	payload, ok := h.cachedReport(ctx, key)
	metrics.IncCacheLookup(endpoint, ok)
	if !ok {
		run, err := h.svc.Run(ctx, usecase.RunParams{Start: req.Start, End: req.End})
		if err != nil {
			metrics.IncError(endpoint)
			h.l.Error("report usecase error", applogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.InternalError("analysis run failed").WithError(err))
		}
		payload = reportPayload{Run: run, Report: run.Report}
		h.storeReport(ctx, key, payload)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	if req.Format == "text" {
		return xhttp.TextResponse(c, payload.Report)
	}
	return xhttp.SuccessResponse(c, payload.Run)
}

func (h *AnalysisHandler) Indicators(c echo.Context) error {
	defer metrics.ObserveLatency("indicators", time.Now())
	entries := h.svc.Catalog().Entries()
	return xhttp.ListResponse(c, entries, int64(len(entries)))
}

func (h *AnalysisHandler) Indicator(c echo.Context) error {
	const endpoint = "indicator"
	defer metrics.ObserveLatency(endpoint, time.Now())

	req := &models.IndicatorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, endpoint) {
		return tooManyRequests(c)
	}

	sum, err := h.svc.Indicator(c.Request().Context(), req.Code, req.Periods, req.Start, req.End)
	if err != nil {
		metrics.IncError(endpoint)
		return xhttp.AppErrorResponse(c, h.mapIndicatorError(req.Code, err))
	}
	return xhttp.SuccessResponse(c, sum)
}

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *AnalysisHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	out := healthStatus{Status: "ok"}
	code := http.StatusOK
	if len(names) > 0 {
		out.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.l.Warn("health check failed", applogger.String("check", name), applogger.Error(err))
			out.Checks[name] = err.Error()
			out.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		out.Checks[name] = "ok"
	}
	return xhttp.DataResponse(c, code, out)
}

func (h *AnalysisHandler) mapIndicatorError(code string, err error) *xhttp.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnknownIndicator):
		return xhttp.NotFoundErrorf("indicator %s is not tracked", code).WithParam("code", code)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return xhttp.InternalError("request cancelled").WithError(err)
	case errors.Is(err, breaker.ErrOpen):
		h.l.Warn("indicator upstream unavailable", applogger.String("code", code), applogger.Error(err))
		return xhttp.BadGatewayError("data source temporarily unavailable").WithError(err)
	default:
		h.l.Error("indicator fetch error", applogger.String("code", code), applogger.Error(err))
		return xhttp.BadGatewayError("failed to fetch indicator data").WithError(err)
	}
}

func (h *AnalysisHandler) allow(c echo.Context, endpoint string) bool {
	if h.rl == nil {
		return true
	}
	if h.rl.Allow(c.RealIP() + ":" + endpoint) {
		return true
	}
	h.l.Warn("api rate_limited", applogger.String("endpoint", endpoint), applogger.String("remote", c.RealIP()))
	return false
}

func (h *AnalysisHandler) cachedReport(ctx context.Context, key string) (reportPayload, bool) {
	var p reportPayload
	b, ok, err := h.cache.GetBytes(ctx, key)
	if err != nil {
		h.l.Warn("report cache get failed", applogger.Error(err))
		return p, false
	}
	if !ok {
		return p, false
	}
	if err := json.Unmarshal(b, &p); err != nil || p.Run == nil {
		return reportPayload{}, false
	}
	return p, true
}

func (h *AnalysisHandler) storeReport(ctx context.Context, key string, p reportPayload) {
	if h.cacheTTL <= 0 {
		return
	}
	b, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := h.cache.SetBytes(ctx, key, b, h.cacheTTL); err != nil {
		h.l.Warn("report cache set failed", applogger.Error(err))
	}
}

func tooManyRequests(c echo.Context) error {
	return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError())
}
