package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/IAmPiHi/StockSystem/internal/apierror"
	"github.com/IAmPiHi/StockSystem/internal/dto"
	"github.com/IAmPiHi/StockSystem/internal/report"
	"github.com/IAmPiHi/StockSystem/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc service.ReportService
	now func() time.Time
}

// NewReportsHandler wires the reports surface. A nil now falls back to
// time.Now; tests inject a frozen clock.
func NewReportsHandler(svc service.ReportService, now func() time.Time) *ReportsHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportsHandler{svc: svc, now: now}
}

// Dashboard godoc
// @Summary Reports dashboard: recent sales, rollups and artifact history
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/reports/dashboard [get]
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GenerateDaily exports the daily snapshot for the requested date, or for
// today when the body omits one.
func (h *ReportsHandler) GenerateDaily(c *gin.Context) {
	var req dto.GenerateDailyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	date := h.now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid date, expected YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	name, err := h.svc.GenerateDaily(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ArtifactResponse{Artifact: name})
}

// GenerateMonthly exports the monthly document for the requested year/month.
func (h *ReportsHandler) GenerateMonthly(c *gin.Context) {
	var req dto.GenerateMonthlyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	name, err := h.svc.GenerateMonthly(c.Request.Context(), req.Year, time.Month(req.Month))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ArtifactResponse{Artifact: name})
}

func (h *ReportsHandler) ListArtifacts(c *gin.Context) {
	names, err := h.svc.ListArtifacts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": names})
}

// ReadArtifact streams a stored report back with a content type matching its
// kind: JSON for daily snapshots, HTML for monthly documents.
func (h *ReportsHandler) ReadArtifact(c *gin.Context) {
	name := c.Param("name")

	art, err := h.svc.ReadArtifact(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, report.ErrArtifactNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("artifact not found"))
			return
		}
		writeServiceError(c, err)
		return
	}

	contentType := "text/html; charset=utf-8"
	if art.Kind == report.KindData {
		contentType = "application/json"
	}
	c.Data(http.StatusOK, contentType, art.Content)
}
