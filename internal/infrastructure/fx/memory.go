package fx

import (
	"time"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/shopspring/decimal"
)

// StaticConverter is a fixed-rate statement.Converter, date-independent.
// Useful for demos and for statements that only ever touch one reporting
// currency (where no conversion is ever actually exercised).
type StaticConverter struct {
	Rates map[string]decimal.Decimal // key: "FROM/TO"
}

func NewStaticConverter() *StaticConverter {
	return &StaticConverter{Rates: make(map[string]decimal.Decimal)}
}

func (c *StaticConverter) Set(from, to string, rate decimal.Decimal) {
	c.Rates[from+"/"+to] = rate
}

func (c *StaticConverter) ConvertTo(date calendar.Date, cash statement.Cash, target string) (decimal.Decimal, error) {
	if cash.Currency == target {
		return cash.Amount, nil
	}
	rate, ok := c.Rates[cash.Currency+"/"+target]
	if !ok {
		return decimal.Decimal{}, &statement.ErrFxUnavailable{From: cash.Currency, To: target, Date: date}
	}
	return cash.Amount.Mul(rate), nil
}

// MultiCurrencyCash is the simplest statement.CashAssets: a fixed set of
// per-currency balances summed through a Converter.
type MultiCurrencyCash map[string]decimal.Decimal

func (c MultiCurrencyCash) TotalAssets(currency string, conv statement.Converter) (decimal.Decimal, error) {
	total := decimal.Zero
	for cur, amount := range c {
		if cur == currency {
			total = total.Add(amount)
			continue
		}
		converted, err := conv.ConvertTo(calendar.FromTime(time.Now()), statement.NewCash(cur, amount), currency)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(converted)
	}
	return total, nil
}
