package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const sampleAnalyseRequest = `{
  "statement": {
    "broker": {"name": "demo"},
    "cashFlows": [
      {"date": "2018-07-28", "amount": {"currency": "USD", "amount": "600000"}},
      {"date": "2019-01-28", "amount": {"currency": "USD", "amount": "-621486.34"}}
    ],
    "stockBuys": [],
    "stockSells": [],
    "dividends": [],
    "idleCashInterest": [],
    "taxDeductions": [],
    "corporateActions": [],
    "openPositions": {},
    "cashAssets": {"USD": "0"}
  },
  "reportingCurrencies": ["USD"],
  "taxCountry": "RU",
  "taxRatePercent": "13"
}`

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter()
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "\"status\":\"ok\"") {
		t.Fatalf("expected status ok in body, got %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}

func TestPostAnalyseRejectsMalformedJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/analyse", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostAnalyseAcceptsSampleStatement(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/analyse", strings.NewReader(sampleAnalyseRequest))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "\"report\"") {
		t.Fatalf("expected report field in body, got %s", rec.Body.String())
	}
}
