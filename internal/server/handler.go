package server

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"DataRizzer/internal/logger"
	"DataRizzer/internal/model"
	"DataRizzer/internal/render"

	"github.com/labstack/echo/v4"
)

// Computer produces a report for a query. dashboard.Service implements it.
type Computer interface {
	Compute(ctx context.Context, q model.Query) (*model.Report, error)
}

// DashboardHandler serves the dashboard page and its JSON API.
type DashboardHandler struct {
	svc          Computer
	tickers      []string
	defaultYears int
	log          *logger.Logger
}

// NewDashboardHandler creates the handler. tickers feeds the page's ticker
// select; its first entry is shown when no ticker is given.
func NewDashboardHandler(svc Computer, tickers []string, defaultYears int, l *logger.Logger) *DashboardHandler {
	if defaultYears < model.MinLookbackYears || defaultYears > model.MaxLookbackYears {
		defaultYears = model.MinLookbackYears
	}
	return &DashboardHandler{
		svc:          svc,
		tickers:      tickers,
		defaultYears: defaultYears,
		log:          l.With(logger.String("component", "handler")),
	}
}

// RegisterRoutes implements Handler.
func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.page)
	e.GET("/healthz", h.health)

	api := e.Group("/api")
	api.GET("/tickers", h.listTickers)
	api.GET("/report", h.report)
}

type reportRequest struct {
	Ticker   string   `query:"ticker" validate:"required,max=16"`
	Overlays []string `query:"overlays"`
	Years    int      `query:"years" validate:"min=1,max=5"`

	fallbackTicker string
	fallbackYears  int
}

// SetDefaults is called by defaults.Set after binding.
func (r *reportRequest) SetDefaults() {
	if r.Ticker == "" {
		r.Ticker = r.fallbackTicker
	}
	if r.Years == 0 {
		r.Years = r.fallbackYears
	}
}

// query converts the request. noneWhenEmpty selects no overlay when the
// overlays parameter is absent, which is how an HTML form reports all
// checkboxes cleared.
func (r *reportRequest) query(noneWhenEmpty bool) (model.Query, error) {
	raw := strings.Join(r.Overlays, ",")
	if raw == "" && noneWhenEmpty {
		raw = "none"
	}
	overlays, err := model.ParseOverlays(raw)
	if err != nil {
		return model.Query{}, err
	}
	return model.Query{
		Ticker:        model.NormalizeTicker(r.Ticker),
		Overlays:      overlays,
		LookbackYears: r.Years,
	}, nil
}

func (h *DashboardHandler) report(c echo.Context) error {
	req := &reportRequest{fallbackYears: h.defaultYears}
	if verrs := ReadAndValidateRequest(c, req); verrs != nil {
		return BadRequestResponse(c, verrs)
	}
	q, err := req.query(false)
	if err != nil {
		return AppErrorResponse(c, err)
	}

	r, err := h.svc.Compute(c.Request().Context(), q)
	if err != nil {
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, NewReportDTO(r))
}

func (h *DashboardHandler) page(c echo.Context) error {
	req := &reportRequest{fallbackTicker: h.firstTicker(), fallbackYears: h.defaultYears}
	q := model.Query{
		Ticker:        req.fallbackTicker,
		Overlays:      append([]model.Overlay(nil), model.DefaultOverlays...),
		LookbackYears: h.defaultYears,
	}

	status := http.StatusOK
	var (
		report *model.Report
		errMsg string
	)
	if verrs := ReadAndValidateRequest(c, req); verrs != nil {
		status = http.StatusBadRequest
		errMsg = joinMessages(verrs)
	} else if parsed, err := req.query(c.QueryParams().Has("ticker")); err != nil {
		appErr := FromError(err)
		status, errMsg = appErr.Status, appErr.Message
	} else {
		q = parsed
		if report, err = h.svc.Compute(c.Request().Context(), q); err != nil {
			appErr := FromError(err)
			status, errMsg = appErr.Status, appErr.Message
			h.log.Warn("page report failed", logger.String("ticker", q.Ticker), logger.Error(err))
		}
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, render.NewPageView(h.tickerOptions(q.Ticker), q, report, errMsg)); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func (h *DashboardHandler) listTickers(c echo.Context) error {
	return SuccessResponse(c, h.tickers)
}

func (h *DashboardHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) firstTicker() string {
	if len(h.tickers) == 0 {
		return ""
	}
	return h.tickers[0]
}

// tickerOptions returns the configured tickers, with current prepended
// when it is not one of them.
func (h *DashboardHandler) tickerOptions(current string) []string {
	for _, t := range h.tickers {
		if t == current {
			return h.tickers
		}
	}
	if current == "" {
		return h.tickers
	}
	return append([]string{current}, h.tickers...)
}

func joinMessages(verrs []ValidationError) string {
	msgs := make([]string, 0, len(verrs))
	for _, v := range verrs {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}
