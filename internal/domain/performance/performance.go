// Package performance implements the performance analyser (C6): the driver
// that orchestrates C3 (open-position periods), C4 (cash-flow reduction),
// and C5 (rate solving) per instrument and per portfolio, for each
// requested reporting currency.
//
// Grounded on
// original_source/src/analyse/performance.rs::PortfolioPerformanceAnalyser,
// with the fetch→derive→render orchestration shape carried over from
// nezdemkovski-folio212's internal/domain/portfolio/service.go.
package performance

import (
	"sort"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/cashflow"
	"github.com/avoronin/yieldscope/internal/domain/deposit"
	"github.com/avoronin/yieldscope/internal/domain/position"
	"github.com/avoronin/yieldscope/internal/domain/ratesolver"
	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/avoronin/yieldscope/internal/shared/logging"
	"github.com/shopspring/decimal"
)

const precisionTolerance = "0.01"

// Row is a single line of a performance report: an instrument, or the
// portfolio summary.
type Row struct {
	Name            string
	Investments     decimal.Decimal
	Returned        decimal.Decimal
	Profit          decimal.Decimal
	DurationDays    int64
	Duration        string
	InterestPercent decimal.Decimal
}

// CurrencyReport is the per-reporting-currency table: an instrument row per
// instrument plus one portfolio summary row.
type CurrencyReport struct {
	Currency    string
	Instruments []Row
	Portfolio   Row
}

// Report is the top-level C6 output, one CurrencyReport per requested
// reporting currency.
type Report struct {
	Currencies []CurrencyReport
}

// Analyse is the core's top-level entry point (spec.md §6): analyse(statement,
// portfolio_config, reporting_currencies, today) -> PerformanceReport.
func Analyse(
	stmt *statement.BrokerStatement,
	portfolio statement.PortfolioConfig,
	reportingCurrencies []string,
	converter statement.Converter,
	today calendar.Date,
) (*Report, error) {
	if err := checkOpenPositions(stmt); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, currency := range reportingCurrencies {
		cr, err := analyseCurrency(stmt, portfolio, currency, converter, today)
		if err != nil {
			return nil, err
		}
		report.Currencies = append(report.Currencies, *cr)
	}
	return report, nil
}

func checkOpenPositions(stmt *statement.BrokerStatement) error {
	var open []string
	for symbol, qty := range stmt.OpenPositions {
		if !qty.IsZero() {
			open = append(open, symbol)
		}
	}
	if len(open) > 0 {
		sort.Strings(open)
		return &statement.ErrOpenPositions{Symbols: open}
	}
	return nil
}

func analyseCurrency(
	stmt *statement.BrokerStatement,
	portfolio statement.PortfolioConfig,
	currency string,
	converter statement.Converter,
	today calendar.Date,
) (*CurrencyReport, error) {
	symbols := instrumentSymbols(stmt)

	periodsBySymbol := make(map[string][]position.Period, len(symbols))
	for _, symbol := range symbols {
		lots := cashflow.BuildLots(stmt, symbol)
		lots = cashflow.ApplyCorporateActions(lots, symbol, stmt.CorporateActions)
		periods, err := position.BuildPeriods(symbol, lots)
		if err != nil {
			return nil, err
		}
		periodsBySymbol[symbol] = periods
	}

	reduced, err := cashflow.Reduce(stmt, cashflow.Config{
		ReportingCurrency: currency,
		Converter:         converter,
		Portfolio:         portfolio,
		Today:             today,
	})
	if err != nil {
		return nil, err
	}

	cr := &CurrencyReport{Currency: currency}

	for _, symbol := range symbols {
		row, err := analyseInstrument(symbol, reduced.Instruments[symbol], periodsBySymbol[symbol], reduced.LastSellVolume[symbol])
		if err != nil {
			return nil, err
		}
		cr.Instruments = append(cr.Instruments, row)
	}

	portfolioRow, err := analysePortfolio(stmt, reduced.Portfolio, currency, converter, today)
	if err != nil {
		return nil, err
	}
	cr.Portfolio = portfolioRow

	return cr, nil
}

func instrumentSymbols(stmt *statement.BrokerStatement) []string {
	seen := make(map[string]bool)
	var symbols []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			symbols = append(symbols, s)
		}
	}
	for _, b := range stmt.StockBuys {
		add(b.Symbol)
	}
	for _, s := range stmt.StockSells {
		add(s.Symbol)
	}
	for _, d := range stmt.Dividends {
		add(d.Issuer)
	}
	sort.Strings(symbols)
	return symbols
}

func analyseInstrument(symbol string, transactions []deposit.Transaction, periods []position.Period, lastSellVolume decimal.Decimal) (Row, error) {
	sorted := sortedTransactions(transactions)
	depositPeriods := toDepositPeriods(periods)

	result := ratesolver.Solve(sorted, depositPeriods, decimal.Zero)

	if err := checkPrecision(symbol, lastSellVolume, result.Difference); err != nil {
		return Row{}, err
	}
	logging.Precision(symbol, precisionRatio(lastSellVolume, result.Difference))

	return buildRow(symbol, sorted, depositPeriods, result.Interest), nil
}

func analysePortfolio(stmt *statement.BrokerStatement, transactions []deposit.Transaction, currency string, converter statement.Converter, today calendar.Date) (Row, error) {
	if len(transactions) == 0 {
		return Row{}, &statement.ErrNoActivity{Scope: "portfolio"}
	}

	sorted := sortedTransactions(transactions)
	firstDate := sorted[0].Date
	activityPeriod := deposit.InterestPeriod{Start: firstDate, End: today}

	currentAssets := decimal.Zero
	if stmt.CashAssets != nil {
		var err error
		currentAssets, err = stmt.CashAssets.TotalAssets(currency, converter)
		if err != nil {
			return Row{}, err
		}
	}

	result := ratesolver.Solve(sorted, []deposit.InterestPeriod{activityPeriod}, currentAssets)

	if err := checkPrecision("portfolio", currentAssets, result.Difference); err != nil {
		return Row{}, err
	}
	logging.Precision("portfolio", precisionRatio(currentAssets, result.Difference))

	return buildRow("", sorted, []deposit.InterestPeriod{activityPeriod}, result.Interest), nil
}

func sortedTransactions(transactions []deposit.Transaction) []deposit.Transaction {
	sorted := make([]deposit.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

func toDepositPeriods(periods []position.Period) []deposit.InterestPeriod {
	out := make([]deposit.InterestPeriod, len(periods))
	for i, p := range periods {
		out[i] = deposit.InterestPeriod{Start: p.Start, End: p.End}
	}
	return out
}

func precisionRatio(scale, difference decimal.Decimal) decimal.Decimal {
	if scale.IsZero() {
		return difference.Abs()
	}
	return difference.Abs().Div(scale.Abs())
}

func checkPrecision(scope string, scale, difference decimal.Decimal) error {
	tolerance, _ := decimal.NewFromString(precisionTolerance)
	ratio := precisionRatio(scale, difference)
	if ratio.GreaterThanOrEqual(tolerance) {
		return &statement.ErrLowPrecision{Scope: scope, Precision: ratio}
	}
	return nil
}

func buildRow(name string, transactions []deposit.Transaction, periods []deposit.InterestPeriod, interest decimal.Decimal) Row {
	invested := decimal.Zero
	returned := decimal.Zero
	for _, tx := range transactions {
		if tx.Amount.IsPositive() {
			invested = invested.Add(tx.Amount)
		} else {
			returned = returned.Add(tx.Amount.Abs())
		}
	}

	var days int64
	for _, p := range periods {
		days += int64(p.Start.DaysUntil(p.End))
	}

	return Row{
		Name:            name,
		Investments:     invested.Round(0),
		Returned:        returned.Round(0),
		Profit:          returned.Sub(invested).Round(0),
		DurationDays:    days,
		Duration:        formatDuration(days),
		InterestPercent: interest.Round(2),
	}
}

// formatDuration follows spec.md §4.6: days >= 365 -> "X.Yy" (divided by
// 365); days >= 30 -> "X.Ym" (divided by 30); else "X.Yd", one decimal.
func formatDuration(days int64) string {
	d := decimal.NewFromInt(days)
	switch {
	case days >= 365:
		return d.Div(decimal.NewFromInt(365)).StringFixed(1) + "y"
	case days >= 30:
		return d.Div(decimal.NewFromInt(30)).StringFixed(1) + "m"
	default:
		return d.StringFixed(1) + "d"
	}
}
