// Package cashflow implements the event-to-cashflow reducer (C4): it turns
// a BrokerStatement's typed events into per-instrument and per-portfolio
// Transaction lists in a single reporting currency.
//
// Grounded on
// original_source/src/analyse/performance.rs::process_deposits_and_withdrawals/
// process_positions/process_dividends/process_interest/process_tax_deductions,
// and original_source/src/broker_statement/taxes.rs for the tax-accrual shape.
package cashflow

import (
	"fmt"
	"sort"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/deposit"
	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/shopspring/decimal"
)

// Config controls reduction policy beyond what PortfolioConfig carries.
type Config struct {
	ReportingCurrency string
	Converter         statement.Converter
	Portfolio         statement.PortfolioConfig
	// Today is the conversion-date ceiling for future tax payments (spec.md
	// §4.4's FX conversion policy): a payment due after Today converts at
	// Today instead of predicting a future rate.
	Today calendar.Date
}

// Result is the C4 output: one transaction list per instrument plus the
// portfolio-wide list, and each instrument's last closing sell volume (used
// by C6 for the per-instrument precision check).
type Result struct {
	Instruments    map[string][]deposit.Transaction
	LastSellVolume map[string]decimal.Decimal
	Portfolio      []deposit.Transaction
}

// taxBucket accumulates local-currency taxable profit for one (symbol,
// year) pair, the unit the original's per-symbol NetTaxCalculator groups
// by.
type taxBucket struct {
	symbol   string
	year     int
	currency string
	profit   decimal.Decimal
	lastDate calendar.Date
}

// portfolioTaxBucket accumulates local-currency taxable profit across every
// instrument for one (year, currency) pair: the original's second,
// portfolio-wide NetTaxCalculator (`taxes` in process_positions, distinct
// from the per-symbol `stock_taxes` map), which nets gains and losses
// across symbols rather than within a single one. A year with offsetting
// profit/loss across two instruments can therefore owe less portfolio-scope
// tax than the sum of the two instruments' own tax pushes.
type portfolioTaxBucket struct {
	year     int
	currency string
	profit   decimal.Decimal
	lastDate calendar.Date
}

// Reduce runs C4 over the whole statement.
func Reduce(stmt *statement.BrokerStatement, cfg Config) (*Result, error) {
	res := &Result{
		Instruments:    make(map[string][]deposit.Transaction),
		LastSellVolume: make(map[string]decimal.Decimal),
	}

	ensure := func(symbol string) {
		if _, ok := res.Instruments[symbol]; !ok {
			res.Instruments[symbol] = nil
		}
	}

	// Deposits / withdrawals: portfolio-only.
	for _, cf := range stmt.CashFlows {
		amount := cf.Amount
		if amount.Amount.IsPositive() && stmt.Broker.DepositCommission != nil {
			commission := stmt.Broker.DepositCommission(amount)
			amount.Amount = amount.Amount.Add(commission.Amount)
		}
		converted, err := cfg.Converter.ConvertTo(cf.Date, amount, cfg.ReportingCurrency)
		if err != nil {
			return nil, err
		}
		res.Portfolio = append(res.Portfolio, deposit.Transaction{Date: cf.Date, Amount: converted})
	}

	// Stock buys: instrument-only, +(price*qty + commission) at conclusion.
	for _, buy := range stmt.StockBuys {
		ensure(buy.Symbol)
		gross := buy.Price.Amount.Mul(buy.Quantity)
		grossCash := statement.NewCash(buy.Price.Currency, gross)
		convertedGross, err := cfg.Converter.ConvertTo(buy.ConclusionDate, grossCash, cfg.ReportingCurrency)
		if err != nil {
			return nil, err
		}
		convertedCommission, err := cfg.Converter.ConvertTo(buy.ConclusionDate, buy.Commission, cfg.ReportingCurrency)
		if err != nil {
			return nil, err
		}
		amount := convertedGross.Add(convertedCommission)
		res.Instruments[buy.Symbol] = append(res.Instruments[buy.Symbol], deposit.Transaction{Date: buy.ConclusionDate, Amount: amount})
	}

	taxBuckets := make(map[string]*taxBucket)                   // key: symbol + "#" + year
	portfolioTaxBuckets := make(map[string]*portfolioTaxBucket) // key: year + "#" + currency

	addSymbolTax := func(symbol string, year int, currency string, profit decimal.Decimal, date calendar.Date) {
		key := fmt.Sprintf("%s#%d", symbol, year)
		b, ok := taxBuckets[key]
		if !ok {
			b = &taxBucket{symbol: symbol, year: year, currency: currency}
			taxBuckets[key] = b
		}
		b.profit = b.profit.Add(profit)
		if date.After(b.lastDate) {
			b.lastDate = date
		}
	}

	addPortfolioTax := func(year int, currency string, profit decimal.Decimal, date calendar.Date) {
		key := fmt.Sprintf("%d#%s", year, currency)
		b, ok := portfolioTaxBuckets[key]
		if !ok {
			b = &portfolioTaxBucket{year: year, currency: currency}
			portfolioTaxBuckets[key] = b
		}
		b.profit = b.profit.Add(profit)
		if date.After(b.lastDate) {
			b.lastDate = date
		}
	}

	// Stock sells: -(price*qty) at execution, +commission at conclusion,
	// and accrue taxable local profit for the year.
	for _, sell := range stmt.StockSells {
		ensure(sell.Symbol)
		proceeds := sell.Price.Amount.Mul(sell.Quantity)
		proceedsCash := statement.NewCash(sell.Price.Currency, proceeds)
		convertedProceeds, err := cfg.Converter.ConvertTo(sell.ExecutionDate, proceedsCash, cfg.ReportingCurrency)
		if err != nil {
			return nil, err
		}
		res.Instruments[sell.Symbol] = append(res.Instruments[sell.Symbol], deposit.Transaction{
			Date: sell.ExecutionDate, Amount: convertedProceeds.Neg(),
		})
		res.LastSellVolume[sell.Symbol] = proceeds

		convertedCommission, err := cfg.Converter.ConvertTo(sell.ConclusionDate, sell.Commission, cfg.ReportingCurrency)
		if err != nil {
			return nil, err
		}
		res.Instruments[sell.Symbol] = append(res.Instruments[sell.Symbol], deposit.Transaction{
			Date: sell.ConclusionDate, Amount: convertedCommission,
		})

		if sell.Profit != nil {
			localProfit := sell.Profit.LocalProfit()
			profitAmount := localProfit.Amount
			if cfg.Portfolio.ApplyLongTermOwnershipDeduction {
				if deductible, _, ok := sell.Profit.LongTermOwnershipDeductible(); ok {
					profitAmount = profitAmount.Sub(deductible.Amount)
				}
			}
			year := sell.ConclusionDate.Year()
			addSymbolTax(sell.Symbol, year, localProfit.Currency, profitAmount, sell.ConclusionDate)
			addPortfolioTax(year, localProfit.Currency, profitAmount, sell.ConclusionDate)
		}
	}

	// Settle the per-symbol tax buckets: one transaction per (symbol, year),
	// booked to that instrument only.
	if cfg.Portfolio.Jurisdiction != nil && cfg.Portfolio.TaxPaymentDay != nil {
		keys := make([]string, 0, len(taxBuckets))
		for k := range taxBuckets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b := taxBuckets[k]
			if !b.profit.IsPositive() {
				continue
			}
			rate := cfg.Portfolio.Jurisdiction.TaxRate(b.year)
			tax := b.profit.Mul(rate)
			if !tax.IsPositive() {
				continue
			}
			paymentDate := cfg.Portfolio.TaxPaymentDay.TaxPaymentDate(b.lastDate)
			convertDate := calendar.Min(cfg.Today, paymentDate)
			converted, err := cfg.Converter.ConvertTo(convertDate, statement.NewCash(b.currency, tax), cfg.ReportingCurrency)
			if err != nil {
				return nil, err
			}
			res.Instruments[b.symbol] = append(res.Instruments[b.symbol], deposit.Transaction{Date: paymentDate, Amount: converted})
		}
	}

	// Settle the portfolio-wide tax buckets: one transaction per year,
	// netting gains and losses across every instrument before taxing,
	// booked to the portfolio only.
	if cfg.Portfolio.Jurisdiction != nil && cfg.Portfolio.TaxPaymentDay != nil {
		keys := make([]string, 0, len(portfolioTaxBuckets))
		for k := range portfolioTaxBuckets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b := portfolioTaxBuckets[k]
			if !b.profit.IsPositive() {
				continue
			}
			rate := cfg.Portfolio.Jurisdiction.TaxRate(b.year)
			tax := b.profit.Mul(rate)
			if !tax.IsPositive() {
				continue
			}
			paymentDate := cfg.Portfolio.TaxPaymentDay.TaxPaymentDate(b.lastDate)
			convertDate := calendar.Min(cfg.Today, paymentDate)
			converted, err := cfg.Converter.ConvertTo(convertDate, statement.NewCash(b.currency, tax), cfg.ReportingCurrency)
			if err != nil {
				return nil, err
			}
			res.Portfolio = append(res.Portfolio, deposit.Transaction{Date: paymentDate, Amount: converted})
		}
	}

	// Dividends: instrument -(amount - paidTax) at payment date, plus a
	// residual tax transaction (instrument AND portfolio) when the local
	// rate exceeds what was withheld at source.
	for _, div := range stmt.Dividends {
		ensure(div.Issuer)
		net := div.Amount.Amount.Sub(div.PaidTax.Amount)
		netCash := statement.NewCash(div.Amount.Currency, net)
		convertedNet, err := cfg.Converter.ConvertTo(div.Date, netCash, cfg.ReportingCurrency)
		if err != nil {
			return nil, err
		}
		res.Instruments[div.Issuer] = append(res.Instruments[div.Issuer], deposit.Transaction{
			Date: div.Date, Amount: convertedNet.Neg(),
		})

		if cfg.Portfolio.Jurisdiction != nil && cfg.Portfolio.TaxPaymentDay != nil {
			year := div.Date.Year()
			rate := cfg.Portfolio.Jurisdiction.TaxRate(year)
			due := div.Amount.Amount.Mul(rate)
			residual := due.Sub(div.PaidTax.Amount)
			if residual.IsPositive() {
				paymentDate := cfg.Portfolio.TaxPaymentDay.TaxPaymentDate(div.Date)
				convertDate := calendar.Min(cfg.Today, paymentDate)
				converted, err := cfg.Converter.ConvertTo(convertDate, statement.NewCash(div.Amount.Currency, residual), cfg.ReportingCurrency)
				if err != nil {
					return nil, err
				}
				tx := deposit.Transaction{Date: paymentDate, Amount: converted}
				res.Instruments[div.Issuer] = append(res.Instruments[div.Issuer], tx)
				res.Portfolio = append(res.Portfolio, tx)
			}
		}
	}

	// Idle cash interest: portfolio-only residual tax.
	if cfg.Portfolio.Jurisdiction != nil && cfg.Portfolio.TaxPaymentDay != nil {
		for _, interest := range stmt.IdleCashInterest {
			year := interest.Date.Year()
			rate := cfg.Portfolio.Jurisdiction.TaxRate(year)
			due := interest.Amount.Amount.Mul(rate)
			residual := due.Sub(interest.PaidTax.Amount)
			if residual.IsPositive() {
				paymentDate := cfg.Portfolio.TaxPaymentDay.TaxPaymentDate(interest.Date)
				convertDate := calendar.Min(cfg.Today, paymentDate)
				converted, err := cfg.Converter.ConvertTo(convertDate, statement.NewCash(interest.Amount.Currency, residual), cfg.ReportingCurrency)
				if err != nil {
					return nil, err
				}
				res.Portfolio = append(res.Portfolio, deposit.Transaction{Date: paymentDate, Amount: converted})
			}
		}
	}

	// Tax deductions: portfolio-only, -deduction on its date.
	for _, ded := range stmt.TaxDeductions {
		converted, err := cfg.Converter.ConvertTo(ded.Date, ded.Amount, cfg.ReportingCurrency)
		if err != nil {
			return nil, err
		}
		res.Portfolio = append(res.Portfolio, deposit.Transaction{Date: ded.Date, Amount: converted.Neg()})
	}

	return res, nil
}
