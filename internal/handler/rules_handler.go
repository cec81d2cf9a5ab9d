package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trustlabel/internal/service"
)

// RulesHandler lists the codified regulatory rules.
type RulesHandler struct {
	errorResponder
	svc service.AnalysisService
}

// NewRulesHandler creates a new RulesHandler.
func NewRulesHandler(svc service.AnalysisService, logger *zap.Logger) *RulesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RulesHandler{errorResponder: errorResponder{logger: logger}, svc: svc}
}

// List handles GET /api/v1/rules?category=...
func (h *RulesHandler) List(c *gin.Context) {
	rules, err := h.svc.ListRules(c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	RespondOK(c, rules)
}
