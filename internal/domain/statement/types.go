// Package statement defines the external data model the core consumes from
// "external collaborators" (spec.md §6): a fully parsed broker statement,
// portfolio configuration, and the shared error kinds surfaced by the core.
package statement

import (
	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

// Cash is an (ISO currency code, exact decimal amount) pair. All arithmetic
// in the core operates on Cash values or bare decimal.Decimal amounts
// already converted to a single reporting currency; floating point never
// appears in a value path.
type Cash struct {
	Currency string
	Amount   decimal.Decimal
}

func NewCash(currency string, amount decimal.Decimal) Cash {
	return Cash{Currency: currency, Amount: amount}
}

// CashFlow is a dated deposit (positive) or withdrawal (negative).
type CashFlow struct {
	Date   calendar.Date
	Amount Cash
}

// StockBuy is a single buy lot.
type StockBuy struct {
	Symbol         string
	Quantity       decimal.Decimal
	Price          Cash
	Commission     Cash
	ConclusionDate calendar.Date
	ExecutionDate  calendar.Date
}

// ProfitCalculator computes the locally taxable profit and the long-term
// ownership deduction (if any) for a single sell.
type ProfitCalculator interface {
	// LocalProfit returns the tax-jurisdiction profit for this sell,
	// already net of acquisition cost.
	LocalProfit() Cash
	// LongTermOwnershipDeductible reports the portion of LocalProfit (if
	// any) eligible for a long-term-ownership deduction, and the number of
	// full years the position was held. ok is false when no deduction
	// applies (e.g. held under the jurisdiction's minimum holding period).
	LongTermOwnershipDeductible() (profit Cash, years int, ok bool)
}

// StockSell is a single sell lot, carrying the jurisdiction-specific profit
// calculator needed to derive the tax on this sale.
type StockSell struct {
	Symbol         string
	Quantity       decimal.Decimal
	Price          Cash
	Commission     Cash
	ConclusionDate calendar.Date
	ExecutionDate  calendar.Date
	Profit         ProfitCalculator
}

// Dividend is a dividend or coupon payment, net of any tax withheld at
// source by the broker.
type Dividend struct {
	Issuer  string
	Date    calendar.Date
	Amount  Cash
	PaidTax Cash
}

// IdleCashInterest is interest paid on uninvested cash held by the broker.
type IdleCashInterest struct {
	Date    calendar.Date
	Amount  Cash
	PaidTax Cash
}

// TaxDeduction is a portfolio-level tax deduction (e.g. an individual
// investment account contribution deduction, or a long-term-ownership
// deduction applied as a direct cash credit rather than a tax reduction).
type TaxDeduction struct {
	Name   string
	Date   calendar.Date
	Amount Cash
}

// CorporateAction reduces a split or reverse split to a quantity
// adjustment applied to the lot stream before C3 runs. A Ratio of 2 on a
// split doubles the held quantity without any cash flow. NewSymbol marks a
// spin-off; this type has no field for the new symbol's share ratio, so a
// spin-off is recorded here but not resolved into a lot by
// cashflow.ApplyCorporateActions — see its doc comment.
type CorporateAction struct {
	Symbol    string
	Date      calendar.Date
	NewSymbol string // empty unless this is a spin-off
	Ratio     decimal.Decimal
}

// CashAssets is the multi-currency cash account backing a portfolio.
type CashAssets interface {
	// TotalAssets converts every currency's balance to the given reporting
	// currency using conv and sums them.
	TotalAssets(currency string, conv Converter) (decimal.Decimal, error)
}

// Converter is the FX conversion capability the core depends on as a narrow
// interface (spec.md §9 "ownership of external data"); concrete backings
// (HTTP, a persistent cache, an in-memory fixture) live in
// internal/infrastructure and are never referenced by name from the core.
type Converter interface {
	// ConvertTo converts cash to the target currency as of date (historical
	// rate). Returns ErrFxUnavailable when no rate is known.
	ConvertTo(date calendar.Date, cash Cash, target string) (decimal.Decimal, error)
}

// BrokerMetadata describes broker-level configuration that affects cash
// flow reduction, such as a per-deposit commission.
type BrokerMetadata struct {
	Name              string
	DepositCommission func(deposit Cash) Cash
}

// BrokerStatement is the fully parsed input the core consumes. Building one
// from a specific broker's export format is out of the core's scope
// (spec.md §1); internal/infrastructure/statementio provides a generic
// JSON-document loader for statements already in this shape.
type BrokerStatement struct {
	Broker            BrokerMetadata
	CashFlows         []CashFlow
	StockBuys         []StockBuy
	StockSells        []StockSell
	Dividends         []Dividend
	IdleCashInterest  []IdleCashInterest
	TaxDeductions     []TaxDeduction
	CorporateActions  []CorporateAction
	OpenPositions     map[string]decimal.Decimal
	CashAssets        CashAssets
}

// TaxPaymentDayRule maps an income-event date to the date its accrued tax
// becomes due, per jurisdiction.
type TaxPaymentDayRule interface {
	TaxPaymentDate(eventDate calendar.Date) calendar.Date
}

// Jurisdiction supplies the flat tax rate applied to taxable profit for a
// given tax year. Anything more elaborate (progressive brackets,
// income-kind-specific rates) is the tax code proper, which spec.md §1
// treats as an external collaborator; the core only needs a rate to turn
// profit into a cash flow.
type Jurisdiction interface {
	TaxRate(year int) decimal.Decimal
}

// PortfolioConfig is caller-supplied configuration the core never persists
// or mutates.
type PortfolioConfig struct {
	TaxCountry                      string
	TaxPaymentDay                   TaxPaymentDayRule
	Jurisdiction                    Jurisdiction
	TaxDeductions                   []TaxDeduction
	ApplyLongTermOwnershipDeduction bool
}
