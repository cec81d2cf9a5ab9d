package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustlabel/internal/domain"
	"trustlabel/internal/handler"
	"trustlabel/mocks"
)

func TestRulesHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewRulesHandler(mockSvc, nil)

	max := 0.5
	rules := []domain.ValidationRule{{Key: "lead", Parameter: "Lead (Pb)", Limits: domain.Limits{Max: &max}, Category: domain.CategoryHeavyMetal}}
	mockSvc.On("ListRules", "heavy_metal").Return(rules, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/rules?category=heavy_metal", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "lead", data[0].(map[string]interface{})["key"])
	mockSvc.AssertExpectations(t)
}

func TestRulesHandler_List_UnknownCategory(t *testing.T) {
	mockSvc := new(mocks.MockAnalysisService)
	h := handler.NewRulesHandler(mockSvc, nil)
	mockSvc.On("ListRules", "radionuclide").Return(nil, domain.ErrUnknownCategory)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/rules?category=radionuclide", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "UNKNOWN_CATEGORY", decodeResponse(t, w).Error.Code)
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(1, 3)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)

	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","vocabulary_version":1,"limits_version":3}`, w.Body.String())
}

func TestMapDomainError_BodyTooLarge(t *testing.T) {
	status, code, _ := handler.MapDomainError(&http.MaxBytesError{Limit: 10})
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, "BODY_TOO_LARGE", code)
}
