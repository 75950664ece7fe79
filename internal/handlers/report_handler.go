package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/period"
	"fintrack/internal/services"
)

// ReportHandler handles period reports and their exports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) summary(c *gin.Context) (*services.Summary, error) {
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not be before start_date")
	}
	return h.reportService.Summary(start, end, c.Query("category"))
}

func reportFilename(s *services.Summary, ext string) string {
	return fmt.Sprintf("report_%s_%s.%s", s.StartDate.Format(period.DateLayout), s.EndDate.Format(period.DateLayout), ext)
}

// GetSummary aggregates gains and expenses between two dates.
// @Summary     Period summary
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string true  "First day (YYYY-MM-DD)"
// @Param       end_date   query string true  "Last day (YYYY-MM-DD)"
// @Param       category   query string false "Restrict to one category"
// @Success     200 {object} services.Summary
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	s, err := h.summary(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": s})
}

// ExportCSV streams the period summary as CSV.
// @Summary     Export summary as CSV
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       start_date query string true  "First day (YYYY-MM-DD)"
// @Param       end_date   query string true  "Last day (YYYY-MM-DD)"
// @Param       category   query string false "Restrict to one category"
// @Success     200 {file} file
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/export/csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	h.export(c, "csv", "text/csv; charset=utf-8", h.reportService.ExportCSV)
}

// ExportPDF renders the period summary as a PDF document.
// @Summary     Export summary as PDF
// @Tags        reports
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       start_date query string true  "First day (YYYY-MM-DD)"
// @Param       end_date   query string true  "Last day (YYYY-MM-DD)"
// @Param       category   query string false "Restrict to one category"
// @Success     200 {file} file
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /reports/export/pdf [get]
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	h.export(c, "pdf", "application/pdf", h.reportService.ExportPDF)
}

// export renders into a buffer first so a failed render still gets a JSON error.
func (h *ReportHandler) export(c *gin.Context, ext, contentType string, render func(*services.Summary, io.Writer) error) {
	s, err := h.summary(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render(s, &buf); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, reportFilename(s, ext)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
