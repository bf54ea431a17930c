package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ImprimirComandas/imprimircomandas-sub001/pkg/apperrors"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &HealthHandlers{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Health(c)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", resp["status"])
	}

	if resp["service"] != "comandas-service" {
		t.Errorf("Expected service 'comandas-service', got %v", resp["service"])
	}
}

func TestHandleError_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleError(c, apperrors.ErrNotFound)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestHandleError_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleError(c, apperrors.NewValidationError("bairro", "selecione o bairro para entrega"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["error"] != "selecione o bairro para entrega" {
		t.Errorf("Unexpected error message: %v", resp["error"])
	}

	if resp["field"] != "bairro" {
		t.Errorf("Expected field 'bairro', got %v", resp["field"])
	}
}

func TestHandleError_Internal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleError(c, errors.New("connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func previewRequest(t *testing.T, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/settlement/preview", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	h := &Handlers{}
	h.PreviewSettlement(c)

	return w
}

func TestPreviewSettlement_Cash(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := previewRequest(t, map[string]interface{}{
		"total":           45.0,
		"forma_pagamento": "dinheiro",
		"quantiapaga":     50.0,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["valid"] != true {
		t.Errorf("Expected valid result, got %v", resp)
	}

	if resp["troco"] != 5.0 {
		t.Errorf("Expected troco 5, got %v", resp["troco"])
	}
}

func TestPreviewSettlement_CashInsufficient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := previewRequest(t, map[string]interface{}{
		"total":           45.0,
		"forma_pagamento": "dinheiro",
		"quantiapaga":     40.0,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["valid"] != false {
		t.Errorf("Expected invalid result, got %v", resp)
	}
}

func TestPreviewSettlement_Split(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := previewRequest(t, map[string]interface{}{
		"total":           100.0,
		"forma_pagamento": "misto",
		"valor_cartao":    40.0,
		"valor_dinheiro":  50.0,
		"valor_pix":       30.0,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["valid"] != true {
		t.Errorf("Expected valid result, got %v", resp)
	}

	if resp["troco"] != 20.0 {
		t.Errorf("Expected troco 20, got %v", resp["troco"])
	}
}

func TestPreviewSettlement_Pix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := previewRequest(t, map[string]interface{}{
		"total":           30.0,
		"forma_pagamento": "pix",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
}

func TestPreviewSettlement_NoMethod(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := previewRequest(t, map[string]interface{}{
		"total": 30.0,
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}
