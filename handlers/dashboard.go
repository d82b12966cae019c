package handlers

import (
	"net/http"

	"securecheck-api/analytics"
	"securecheck-api/estimator"
	"securecheck-api/models"

	"github.com/gin-gonic/gin"
)

// DashboardTemplate is the name the page is registered under.
const DashboardTemplate = "dashboard.tmpl"

// DashboardHandler renders the HTML dashboard and its summary API. Every
// render works from a single snapshot.
type DashboardHandler struct {
	ledger      Ledger
	reports     *ReportsHandler
	predictions *PredictionHandler
}

func NewDashboardHandler(ledger Ledger, reports *ReportsHandler, predictions *PredictionHandler) *DashboardHandler {
	return &DashboardHandler{ledger: ledger, reports: reports, predictions: predictions}
}

// DashboardPage is the data handed to the dashboard template. A non-empty
// warning replaces the section it belongs to; the rest of the page stays.
type DashboardPage struct {
	Summary        *analytics.Summary
	SummaryWarning string

	Reports       []string
	Selected      string
	Report        *models.Table
	ReportEmpty   bool
	ReportWarning string

	Durations []string
	Genders   []string
	Races     []string
	Countries []string
	MinAge    int
	MaxAge    int

	Form              *PredictForm
	Prediction        *PredictionResponse
	PredictionWarning string
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics.Summarize(snap))
}

// Page renders the dashboard. ?report=NAME selects a report.
func (h *DashboardHandler) Page(c *gin.Context) {
	page, _ := h.page(c)
	h.renderReport(c, page, c.Query("report"))
	c.HTML(http.StatusOK, DashboardTemplate, page)
}

// Predict handles the dashboard's prediction form.
func (h *DashboardHandler) Predict(c *gin.Context) {
	page, snap := h.page(c)
	h.renderReport(c, page, c.PostForm("report"))

	var form PredictForm
	if err := c.ShouldBind(&form); err != nil {
		page.PredictionWarning = "Invalid prediction input: " + err.Error()
		c.HTML(http.StatusOK, DashboardTemplate, page)
		return
	}
	page.Form = &form

	req, err := form.Request()
	switch {
	case err != nil:
		page.PredictionWarning = err.Error()
	case snap == nil:
		page.PredictionWarning = page.SummaryWarning
	default:
		resp, err := h.predictions.predict(req, snap)
		if err != nil {
			page.PredictionWarning = err.Error()
		} else {
			page.Prediction = &resp
		}
	}
	c.HTML(http.StatusOK, DashboardTemplate, page)
}

// page loads the snapshot once and fills the sections that depend on it.
// snap is nil when the ledger could not be read.
func (h *DashboardHandler) page(c *gin.Context) (*DashboardPage, *models.Snapshot) {
	page := &DashboardPage{
		Reports:   h.reports.catalog.Names(),
		Durations: []string{},
		Genders:   estimator.Genders,
		Races:     DriverRaces,
		Countries: Countries,
		MinAge:    estimator.MinDriverAge,
		MaxAge:    estimator.MaxDriverAge,
	}

	snap, err := h.ledger.Snapshot(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		page.SummaryWarning = "Could not load traffic stop data: " + err.Error()
		return page, nil
	}
	summary := analytics.Summarize(snap)
	page.Summary = &summary
	page.Durations = summary.StopDurations
	return page, snap
}

func (h *DashboardHandler) renderReport(c *gin.Context, page *DashboardPage, name string) {
	if name == "" {
		return
	}
	page.Selected = name
	tbl, _, err := h.reports.run(c.Request.Context(), name)
	if err != nil {
		_ = c.Error(err)
		page.ReportWarning = "Report failed: " + err.Error()
		return
	}
	page.Report = tbl
	page.ReportEmpty = tbl.Len() == 0
}
