package statementio

import (
	"strings"
	"testing"
)

const sampleDocument = `{
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
}`

func TestLoadSampleDocument(t *testing.T) {
	stmt, err := Load(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stmt.Broker.Name != "demo" {
		t.Errorf("expected broker name demo, got %s", stmt.Broker.Name)
	}
	if len(stmt.CashFlows) != 2 {
		t.Fatalf("expected 2 cash flows, got %d", len(stmt.CashFlows))
	}
	if stmt.CashFlows[0].Amount.Currency != "USD" {
		t.Errorf("expected USD currency, got %s", stmt.CashFlows[0].Amount.Currency)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader(`{"unknownField": true}`))
	if err == nil {
		t.Fatal("expected an error for unknown field")
	}
}
