package handler

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/travelrecap/timeline-backend-go/internal/engine"
	"github.com/travelrecap/timeline-backend-go/internal/observability"
	"github.com/travelrecap/timeline-backend-go/internal/repository"
	"github.com/travelrecap/timeline-backend-go/internal/service"
	"github.com/travelrecap/timeline-backend-go/pkg/response"
)

// maxExportBytes caps uploaded export size (exports of multi-year histories
// run to a few hundred MB)
const maxExportBytes = 512 << 20

// TimelineHandler handles HTTP requests for timeline analysis
type TimelineHandler struct {
	analysisService *service.AnalysisService
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(analysisService *service.AnalysisService) *TimelineHandler {
	return &TimelineHandler{
		analysisService: analysisService,
	}
}

// Analyze handles POST /api/v1/timeline/analyze
// The request body is the raw export JSON; an optional ?year= query filters
// the analysis to one calendar year.
func (h *TimelineHandler) Analyze(c *gin.Context) {
	year := 0
	if yearStr := c.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(c, "Invalid year parameter")
			return
		}
		year = parsed
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxExportBytes))
	if err != nil {
		response.BadRequest(c, "Failed to read request body")
		return
	}

	start := time.Now()
	result, err := h.analysisService.Analyze(c.Request.Context(), raw, year)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidExport) {
			observability.ObserveAnalyze("invalid_input", time.Since(start))
			response.BadRequest(c, "Export is not a valid JSON object")
			return
		}
		observability.ObserveAnalyze("error", time.Since(start))
		response.InternalError(c, err.Error())
		return
	}

	observability.ObserveAnalyze("ok", time.Since(start))
	observability.AddSkippedSegments(result.SkippedSegments)
	response.Success(c, result)
}

// GetRun handles GET /api/v1/timeline/runs/:id
func (h *TimelineHandler) GetRun(c *gin.Context) {
	run, err := h.analysisService.GetRun(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			response.NotFound(c, "Run not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, run)
}

// ListRuns handles GET /api/v1/timeline/runs
func (h *TimelineHandler) ListRuns(c *gin.Context) {
	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			response.BadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	runs, err := h.analysisService.ListRuns(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, runs)
}

// DeleteRun handles DELETE /api/v1/timeline/runs/:id
func (h *TimelineHandler) DeleteRun(c *gin.Context) {
	if err := h.analysisService.DeleteRun(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			response.NotFound(c, "Run not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, nil)
}
