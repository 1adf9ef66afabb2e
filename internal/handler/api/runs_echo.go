package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"EdgeLab/internal/domain/models"
	"EdgeLab/internal/service/chart"
	xhttp "EdgeLab/pkg/http"
	xlogger "EdgeLab/pkg/logger"
)

// RunsEchoHandler serves the most recent run result: the numeric report,
// the raw equity series, and the rendered chart.
type RunsEchoHandler struct {
	logger *xlogger.Logger

	mu  sync.RWMutex
	run *models.RunResult
}

func NewRunsEchoHandler(logger *xlogger.Logger) *RunsEchoHandler {
	return &RunsEchoHandler{logger: logger}
}

// SetRun publishes a completed run to the handler.
func (h *RunsEchoHandler) SetRun(run *models.RunResult) {
	h.mu.Lock()
	h.run = run
	h.mu.Unlock()
}

func (h *RunsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/run", h.Run)
	g.GET("/equity", h.Equity)
	g.GET("/report", h.ReportText)
	e.GET("/chart", h.Chart)
	e.GET("/health", h.Health)
}

func (h *RunsEchoHandler) latest() *models.RunResult {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.run
}

func (h *RunsEchoHandler) Run(c echo.Context) error {
	run := h.latest()
	if run == nil {
		return xhttp.NotFoundResponse(c, "no completed run yet")
	}
	return xhttp.SuccessResponse(c, run)
}

func (h *RunsEchoHandler) Equity(c echo.Context) error {
	run := h.latest()
	if run == nil {
		return xhttp.NotFoundResponse(c, "no completed run yet")
	}
	return xhttp.SuccessResponse(c, run.Equity)
}

func (h *RunsEchoHandler) ReportText(c echo.Context) error {
	run := h.latest()
	if run == nil {
		return xhttp.NotFoundResponse(c, "no completed run yet")
	}
	return c.String(http.StatusOK, run.Report.Text)
}

func (h *RunsEchoHandler) Chart(c echo.Context) error {
	run := h.latest()
	if run == nil {
		return xhttp.NotFoundResponse(c, "no completed run yet")
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	if err := chart.Render(run, c.Response()); err != nil {
		h.logger.Error("chart render error", xlogger.Error(err))
		return err
	}
	return nil
}

func (h *RunsEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
