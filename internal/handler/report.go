package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/eventia/internal/report"
)

// ReportHandler exposes the read-only reporting endpoints.
type ReportHandler struct {
	Reports *report.Reporter
}

func NewReportHandler(reports *report.Reporter) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// EventReport handles GET /v1/reports/events/:id.
func (h *ReportHandler) EventReport(c echo.Context) error {
	rep, err := h.Reports.EventReport(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

// FinancialReport handles GET /v1/reports/events/:id/financial.
func (h *ReportHandler) FinancialReport(c echo.Context) error {
	rep, err := h.Reports.FinancialReport(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

// Dashboard handles GET /v1/reports/dashboard.
func (h *ReportHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Reports.Dashboard())
}
