package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trustlabel/internal/csvexport"
	"trustlabel/internal/domain"
	"trustlabel/internal/service"
)

// AnalysisHandler handles report parsing and compliance validation endpoints.
type AnalysisHandler struct {
	errorResponder
	svc service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(svc service.AnalysisService, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{errorResponder: errorResponder{logger: logger}, svc: svc}
}

// ParseReportRequest is the body of a parse request.
type ParseReportRequest struct {
	Name      string `json:"name"`
	MediaType string `json:"media_type"`
	Text      string `json:"text"`
}

func (r ParseReportRequest) document() domain.RawDocument {
	return domain.RawDocument{Name: r.Name, MediaType: r.MediaType, Text: r.Text}
}

// ParseBatchRequest is the body of a batch parse request.
type ParseBatchRequest struct {
	Documents []ParseReportRequest `json:"documents"`
}

// AnalysesRequest is the body of batch validate and export requests.
type AnalysesRequest struct {
	Analyses []domain.ProductAnalysis `json:"analyses"`
}

// ParseReport handles POST /api/v1/reports/parse
func (h *AnalysisHandler) ParseReport(c *gin.Context) {
	var req ParseReportRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.svc.ParseReport(c.Request.Context(), req.document())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// ParseBatch handles POST /api/v1/reports/parse/batch
func (h *AnalysisHandler) ParseBatch(c *gin.Context) {
	var req ParseBatchRequest
	if !bindJSON(c, &req) {
		return
	}
	docs := make([]domain.RawDocument, len(req.Documents))
	for i := range req.Documents {
		docs[i] = req.Documents[i].document()
	}
	items, err := h.svc.ParseBatch(c.Request.Context(), docs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondOK(c, items)
}

// Validate handles POST /api/v1/analyses/validate
func (h *AnalysisHandler) Validate(c *gin.Context) {
	var req domain.ProductAnalysis
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.svc.ValidateAnalysis(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ValidateBatch handles POST /api/v1/analyses/validate/batch
func (h *AnalysisHandler) ValidateBatch(c *gin.Context) {
	var req AnalysesRequest
	if !bindJSON(c, &req) {
		return
	}
	items, err := h.svc.ValidateBatch(c.Request.Context(), req.Analyses)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondOK(c, items)
}

// Export handles POST /api/v1/analyses/export?format=csv|xlsx
func (h *AnalysisHandler) Export(c *gin.Context) {
	format, err := csvexport.ParseFormat(c.Query("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req AnalysesRequest
	if !bindJSON(c, &req) {
		return
	}

	// Buffer so a failure mid-export can still produce an error envelope.
	var buf bytes.Buffer
	if err := h.svc.ExportAnalyses(c.Request.Context(), req.Analyses, format, &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	name := "analysis"
	if len(req.Analyses) == 1 && req.Analyses[0].ProductName != "" {
		name = req.Analyses[0].ProductName
	}
	filename := csvexport.BuildFilename(name, format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, csvexport.ContentType(format), buf.Bytes())
}
