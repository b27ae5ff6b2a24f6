package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwize/internal/errors"
	"spendwize/internal/reports"
	"spendwize/internal/services"
)

// ReportHandler serves the spending charts.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type rangeParams struct {
	Range string `form:"range" binding:"omitempty,report_range"`
}

// rangeQuery reads ?range=, defaulting to week.
func rangeQuery(c *gin.Context) (reports.Range, error) {
	var params rangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return "", apperrors.ErrInvalidRange
	}
	if params.Range == "" {
		return reports.RangeWeek, nil
	}
	return reports.Range(params.Range), nil
}

// GetExpenseSeries returns expenses bucketed over a trailing window
// @Summary     Expenses over time
// @Description Daily totals for week and month ranges, monthly totals for year. Every bucket in the window is present.
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       range query string false "week, month or year (default week)"
// @Success     200 {object} services.ExpenseSeries "Expense series"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/expenses-over-time [get]
func (h *ReportHandler) GetExpenseSeries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := rangeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.reportService.ExpenseSeries(c.Request.Context(), userID, r)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

// GetExpensesByCategory returns all-time expenses grouped by category
// @Summary     Expenses by category
// @Description All-time expense totals per category, in first-seen order, with chart colors
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} reports.Slice "Category breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/expenses-by-category [get]
func (h *ReportHandler) GetExpensesByCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	slices, err := h.reportService.ExpensesByCategory(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": slices})
}

// GetDashboard returns the series and the breakdown together
// @Summary     Dashboard
// @Description Expense series for the range plus the all-time category breakdown
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       range query string false "week, month or year (default week)"
// @Success     200 {object} services.Dashboard "Dashboard data"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	r, err := rangeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.reportService.Dashboard(c.Request.Context(), userID, r)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
