// Package httpapi exposes the analyse pipeline over HTTP, grounded on
// jiangshenghai57-andy-warhol/main.go's gin service shape: a tiny set of
// gin.H-described JSON endpoints, a request-scoped worker (here a single
// synchronous call rather than a pool, since one analyse pass is already
// bounded by the statement size), and structured request logging.
package httpapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/performance"
	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/avoronin/yieldscope/internal/infrastructure/fx"
	"github.com/avoronin/yieldscope/internal/infrastructure/statementio"
	"github.com/avoronin/yieldscope/internal/infrastructure/taxrules"
	"github.com/avoronin/yieldscope/internal/shared/logging"
	"github.com/shopspring/decimal"
)

// analyseRequest is the POST /analyse body: a broker statement document
// (statementio's shape) plus the reporting currencies to solve for.
type analyseRequest struct {
	Statement                       rawStatement `json:"statement"`
	ReportingCurrencies             []string     `json:"reportingCurrencies"`
	TaxCountry                      string       `json:"taxCountry"`
	TaxRatePercent                  string       `json:"taxRatePercent"`
	TaxPaymentMonth                 int          `json:"taxPaymentMonth"`
	TaxPaymentDay                   int          `json:"taxPaymentDay"`
	ApplyLongTermOwnershipDeduction bool         `json:"applyLongTermOwnershipDeduction"`
}

// rawStatement lets the handler hand the embedded JSON object straight to
// statementio.Load without re-decoding it a second time.
type rawStatement struct {
	raw []byte
}

func (r *rawStatement) UnmarshalJSON(b []byte) error {
	r.raw = append([]byte(nil), b...)
	return nil
}

// NewRouter builds the gin engine: requestID middleware assigns every
// request a google/uuid ID, echoed back in the response and every log line
// for that request.
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware())

	r.GET("/healthz", getHealth)
	r.POST("/analyse", postAnalyse)

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("requestID", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "yieldscope",
		"status":  "ok",
		"time":    time.Now().Format(time.RFC3339),
	})
}

func postAnalyse(c *gin.Context) {
	requestID, _ := c.Get("requestID")

	var req analyseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.Warn("analyse request rejected", "requestID", requestID, "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON", "requestID": requestID})
		return
	}

	stmt, err := statementio.Load(bytes.NewReader(req.Statement.raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "requestID": requestID})
		return
	}

	rate, err := decimal.NewFromString(req.TaxRatePercent)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid taxRatePercent", "requestID": requestID})
		return
	}

	paymentMonth, paymentDay := req.TaxPaymentMonth, req.TaxPaymentDay
	if paymentMonth == 0 {
		paymentMonth = 4
	}
	if paymentDay == 0 {
		paymentDay = 30
	}

	portfolio := statement.PortfolioConfig{
		TaxCountry:                      req.TaxCountry,
		TaxPaymentDay:                   taxrules.FixedDayNextYear{Month: paymentMonth, Day: paymentDay},
		Jurisdiction:                    taxrules.FlatJurisdiction{Rate: rate.Div(decimal.NewFromInt(100))},
		ApplyLongTermOwnershipDeduction: req.ApplyLongTermOwnershipDeduction,
	}

	currencies := req.ReportingCurrencies
	if len(currencies) == 0 {
		currencies = []string{"USD"}
	}

	report, err := performance.Analyse(stmt, portfolio, currencies, fx.NewStaticConverter(), calendar.FromTime(time.Now()))
	if err != nil {
		logging.Warn("analyse failed", "requestID", requestID, "error", err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "requestID": requestID})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report, "requestID": requestID})
}
