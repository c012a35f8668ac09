// Package statementio loads a statement.BrokerStatement from the generic
// JSON document shape spec.md §6 assumes as its input boundary: broker-specific
// parsing (CSV/XML/XLS, as original_source/src/broker_statement/* does per
// broker) is out of scope, but a reader for an already-normalized JSON
// export is the minimum the core needs to ever run against real data.
//
// Grounded on original_source/src/broker_statement/mod.rs's BrokerStatement
// struct shape (cash flows, trades, dividends, idle cash interest, tax
// deductions, corporate actions, open positions) and on
// nezdemkovski-folio212's trading212 package's JSON-decoding conventions
// (strict decoding via json.Decoder.DisallowUnknownFields).
package statementio

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/avoronin/yieldscope/internal/infrastructure/fx"
	"github.com/shopspring/decimal"
)

type document struct {
	Broker           brokerDoc         `json:"broker"`
	CashFlows        []cashFlowDoc     `json:"cashFlows"`
	StockBuys        []stockBuyDoc     `json:"stockBuys"`
	StockSells       []stockSellDoc    `json:"stockSells"`
	Dividends        []dividendDoc     `json:"dividends"`
	IdleCashInterest []idleCashDoc     `json:"idleCashInterest"`
	TaxDeductions    []taxDeductionDoc `json:"taxDeductions"`
	CorporateActions []corpActionDoc   `json:"corporateActions"`
	OpenPositions    map[string]string `json:"openPositions"`
	CashAssets       map[string]string `json:"cashAssets"`
	DepositCommissionPercent string    `json:"depositCommissionPercent,omitempty"`
}

type brokerDoc struct {
	Name string `json:"name"`
}

type cashDoc struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

type cashFlowDoc struct {
	Date   string  `json:"date"`
	Amount cashDoc `json:"amount"`
}

type stockBuyDoc struct {
	Symbol         string  `json:"symbol"`
	Quantity       string  `json:"quantity"`
	Price          cashDoc `json:"price"`
	Commission     cashDoc `json:"commission"`
	ConclusionDate string  `json:"conclusionDate"`
	ExecutionDate  string  `json:"executionDate"`
}

type stockSellDoc struct {
	Symbol         string  `json:"symbol"`
	Quantity       string  `json:"quantity"`
	Price          cashDoc `json:"price"`
	Commission     cashDoc `json:"commission"`
	ConclusionDate string  `json:"conclusionDate"`
	ExecutionDate  string  `json:"executionDate"`
	AcquisitionCost cashDoc `json:"acquisitionCost"`
	LongTermOwnershipYears int `json:"longTermOwnershipYears,omitempty"`
}

type dividendDoc struct {
	Issuer  string  `json:"issuer"`
	Date    string  `json:"date"`
	Amount  cashDoc `json:"amount"`
	PaidTax cashDoc `json:"paidTax"`
}

type idleCashDoc struct {
	Date    string  `json:"date"`
	Amount  cashDoc `json:"amount"`
	PaidTax cashDoc `json:"paidTax"`
}

type taxDeductionDoc struct {
	Name   string  `json:"name"`
	Date   string  `json:"date"`
	Amount cashDoc `json:"amount"`
}

type corpActionDoc struct {
	Symbol    string `json:"symbol"`
	Date      string `json:"date"`
	NewSymbol string `json:"newSymbol,omitempty"`
	Ratio     string `json:"ratio"`
}

// Load decodes a generic JSON broker statement document into a
// statement.BrokerStatement.
func Load(r io.Reader) (*statement.BrokerStatement, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode broker statement document: %w", err)
	}

	stmt := &statement.BrokerStatement{
		Broker: statement.BrokerMetadata{Name: doc.Broker.Name},
	}

	if doc.DepositCommissionPercent != "" {
		pct, err := decimal.NewFromString(doc.DepositCommissionPercent)
		if err != nil {
			return nil, fmt.Errorf("invalid depositCommissionPercent: %w", err)
		}
		stmt.Broker.DepositCommission = func(deposit statement.Cash) statement.Cash {
			return statement.NewCash(deposit.Currency, deposit.Amount.Mul(pct).Div(decimal.NewFromInt(100)))
		}
	}

	for _, cf := range doc.CashFlows {
		date, err := parseDate(cf.Date)
		if err != nil {
			return nil, err
		}
		amount, err := parseCash(cf.Amount)
		if err != nil {
			return nil, err
		}
		stmt.CashFlows = append(stmt.CashFlows, statement.CashFlow{Date: date, Amount: amount})
	}

	for _, b := range doc.StockBuys {
		buy, err := parseStockBuy(b)
		if err != nil {
			return nil, err
		}
		stmt.StockBuys = append(stmt.StockBuys, buy)
	}

	for _, s := range doc.StockSells {
		sell, err := parseStockSell(s)
		if err != nil {
			return nil, err
		}
		stmt.StockSells = append(stmt.StockSells, sell)
	}

	for _, d := range doc.Dividends {
		date, err := parseDate(d.Date)
		if err != nil {
			return nil, err
		}
		amount, err := parseCash(d.Amount)
		if err != nil {
			return nil, err
		}
		paidTax, err := parseCash(d.PaidTax)
		if err != nil {
			return nil, err
		}
		stmt.Dividends = append(stmt.Dividends, statement.Dividend{Issuer: d.Issuer, Date: date, Amount: amount, PaidTax: paidTax})
	}

	for _, i := range doc.IdleCashInterest {
		date, err := parseDate(i.Date)
		if err != nil {
			return nil, err
		}
		amount, err := parseCash(i.Amount)
		if err != nil {
			return nil, err
		}
		paidTax, err := parseCash(i.PaidTax)
		if err != nil {
			return nil, err
		}
		stmt.IdleCashInterest = append(stmt.IdleCashInterest, statement.IdleCashInterest{Date: date, Amount: amount, PaidTax: paidTax})
	}

	for _, t := range doc.TaxDeductions {
		date, err := parseDate(t.Date)
		if err != nil {
			return nil, err
		}
		amount, err := parseCash(t.Amount)
		if err != nil {
			return nil, err
		}
		stmt.TaxDeductions = append(stmt.TaxDeductions, statement.TaxDeduction{Name: t.Name, Date: date, Amount: amount})
	}

	for _, a := range doc.CorporateActions {
		date, err := parseDate(a.Date)
		if err != nil {
			return nil, err
		}
		ratio, err := decimal.NewFromString(a.Ratio)
		if err != nil {
			return nil, fmt.Errorf("invalid corporate action ratio %q: %w", a.Ratio, err)
		}
		stmt.CorporateActions = append(stmt.CorporateActions, statement.CorporateAction{
			Symbol: a.Symbol, Date: date, NewSymbol: a.NewSymbol, Ratio: ratio,
		})
	}

	if len(doc.OpenPositions) > 0 {
		stmt.OpenPositions = make(map[string]decimal.Decimal, len(doc.OpenPositions))
		for symbol, qty := range doc.OpenPositions {
			q, err := decimal.NewFromString(qty)
			if err != nil {
				return nil, fmt.Errorf("invalid open position quantity for %s: %w", symbol, err)
			}
			stmt.OpenPositions[symbol] = q
		}
	}

	if len(doc.CashAssets) > 0 {
		assets := make(fx.MultiCurrencyCash, len(doc.CashAssets))
		for currency, amount := range doc.CashAssets {
			a, err := decimal.NewFromString(amount)
			if err != nil {
				return nil, fmt.Errorf("invalid cash asset amount for %s: %w", currency, err)
			}
			assets[currency] = a
		}
		stmt.CashAssets = assets
	}

	return stmt, nil
}

func parseDate(s string) (calendar.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return calendar.FromTime(t), nil
}

func parseCash(c cashDoc) (statement.Cash, error) {
	amount, err := decimal.NewFromString(c.Amount)
	if err != nil {
		return statement.Cash{}, fmt.Errorf("invalid amount %q for %s: %w", c.Amount, c.Currency, err)
	}
	return statement.NewCash(c.Currency, amount), nil
}

func parseStockBuy(b stockBuyDoc) (statement.StockBuy, error) {
	conclusion, err := parseDate(b.ConclusionDate)
	if err != nil {
		return statement.StockBuy{}, err
	}
	execution, err := parseDate(b.ExecutionDate)
	if err != nil {
		return statement.StockBuy{}, err
	}
	qty, err := decimal.NewFromString(b.Quantity)
	if err != nil {
		return statement.StockBuy{}, fmt.Errorf("invalid quantity %q for %s: %w", b.Quantity, b.Symbol, err)
	}
	price, err := parseCash(b.Price)
	if err != nil {
		return statement.StockBuy{}, err
	}
	commission, err := parseCash(b.Commission)
	if err != nil {
		return statement.StockBuy{}, err
	}
	return statement.StockBuy{
		Symbol: b.Symbol, Quantity: qty, Price: price, Commission: commission,
		ConclusionDate: conclusion, ExecutionDate: execution,
	}, nil
}

func parseStockSell(s stockSellDoc) (statement.StockSell, error) {
	conclusion, err := parseDate(s.ConclusionDate)
	if err != nil {
		return statement.StockSell{}, err
	}
	execution, err := parseDate(s.ExecutionDate)
	if err != nil {
		return statement.StockSell{}, err
	}
	qty, err := decimal.NewFromString(s.Quantity)
	if err != nil {
		return statement.StockSell{}, fmt.Errorf("invalid quantity %q for %s: %w", s.Quantity, s.Symbol, err)
	}
	price, err := parseCash(s.Price)
	if err != nil {
		return statement.StockSell{}, err
	}
	commission, err := parseCash(s.Commission)
	if err != nil {
		return statement.StockSell{}, err
	}
	acquisitionCost, err := parseCash(s.AcquisitionCost)
	if err != nil {
		return statement.StockSell{}, err
	}

	proceeds := price.Amount.Mul(qty).Sub(commission.Amount)
	localProfit := statement.NewCash(price.Currency, proceeds.Sub(acquisitionCost.Amount))

	return statement.StockSell{
		Symbol: s.Symbol, Quantity: qty, Price: price, Commission: commission,
		ConclusionDate: conclusion, ExecutionDate: execution,
		Profit: documentProfitCalculator{
			local:    localProfit,
			years:    s.LongTermOwnershipYears,
			eligible: s.LongTermOwnershipYears >= 3,
		},
	}, nil
}

// documentProfitCalculator is the statement.ProfitCalculator backing a sell
// parsed from a document: profit and long-term-ownership eligibility are
// precomputed by whatever produced the JSON (a broker-specific cost-basis
// tracker upstream of this package), matching spec.md §6's framing of
// ProfitCalculator as an external collaborator the core never implements.
type documentProfitCalculator struct {
	local    statement.Cash
	years    int
	eligible bool
}

func (c documentProfitCalculator) LocalProfit() statement.Cash { return c.local }

func (c documentProfitCalculator) LongTermOwnershipDeductible() (statement.Cash, int, bool) {
	if !c.eligible || !c.local.Amount.IsPositive() {
		return statement.Cash{}, 0, false
	}
	return c.local, c.years, true
}
