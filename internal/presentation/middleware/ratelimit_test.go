package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnalysisRateLimiter_RejectsOverBudget(t *testing.T) {
	handler := AnalysisRateLimiter(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/intelligence", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/intelligence", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 once the budget is spent, got %d", second.Code)
	}
}

func TestAnalysisRateLimiter_BudgetIsPerEndpoint(t *testing.T) {
	handler := AnalysisRateLimiter(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	intel := httptest.NewRecorder()
	handler.ServeHTTP(intel, httptest.NewRequest(http.MethodPost, "/api/v1/intelligence", nil))
	if intel.Code != http.StatusOK {
		t.Fatalf("expected intelligence request to pass, got %d", intel.Code)
	}

	report := httptest.NewRecorder()
	handler.ServeHTTP(report, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))
	if report.Code != http.StatusOK {
		t.Errorf("expected a different endpoint to have its own budget, got %d", report.Code)
	}
}
