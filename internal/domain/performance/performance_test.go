package performance

import (
	"errors"
	"testing"
	"time"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) calendar.Date { return calendar.NewDate(y, m, d) }

type identityConverter struct{}

func (identityConverter) ConvertTo(_ calendar.Date, cash statement.Cash, _ string) (decimal.Decimal, error) {
	return cash.Amount, nil
}

type fixedCashAssets struct{ total decimal.Decimal }

func (f fixedCashAssets) TotalAssets(_ string, _ statement.Converter) (decimal.Decimal, error) {
	return f.total, nil
}

// TestSingleCashDepositFullyWithdrawn is spec.md §8 scenario 1: deposit
// +600,000 on 2018-07-28; sellout produces exactly 621,486.34 on
// 2019-01-28. Expected interest ~= 7.00%.
func TestSingleCashDepositFullyWithdrawn(t *testing.T) {
	stmt := &statement.BrokerStatement{
		CashFlows: []statement.CashFlow{
			{Date: date(2018, time.July, 28), Amount: statement.NewCash("USD", decimal.NewFromInt(600000))},
			{Date: date(2019, time.January, 28), Amount: statement.NewCash("USD", decimal.NewFromFloat(-621486.34))},
		},
		CashAssets: fixedCashAssets{total: decimal.Zero},
	}
	portfolio := statement.PortfolioConfig{}

	report, err := Analyse(stmt, portfolio, []string{"USD"}, identityConverter{}, date(2019, time.January, 28))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := report.Currencies[0].Portfolio
	want := decimal.NewFromFloat(7.00)
	diff := row.InterestPercent.Sub(want).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.1)) {
		t.Errorf("expected interest near 7.00%%, got %s", row.InterestPercent)
	}
}

// TestInstrumentBoughtAndHeldOneDay is spec.md §8 scenario 2. The cash that
// funds the buy and leaves with the sell is recorded as cash flows, so the
// portfolio pass has activity to solve for.
func TestInstrumentBoughtAndHeldOneDay(t *testing.T) {
	stmt := &statement.BrokerStatement{
		CashFlows: []statement.CashFlow{
			{Date: date(2020, time.January, 1), Amount: statement.NewCash("USD", decimal.NewFromInt(100))},
			{Date: date(2020, time.January, 2), Amount: statement.NewCash("USD", decimal.NewFromInt(-101))},
		},
		StockBuys: []statement.StockBuy{{
			Symbol:         "ACME",
			Quantity:       decimal.NewFromInt(1),
			Price:          statement.NewCash("USD", decimal.NewFromInt(100)),
			Commission:     statement.NewCash("USD", decimal.Zero),
			ConclusionDate: date(2020, time.January, 1),
			ExecutionDate:  date(2020, time.January, 1),
		}},
		StockSells: []statement.StockSell{{
			Symbol:         "ACME",
			Quantity:       decimal.NewFromInt(1),
			Price:          statement.NewCash("USD", decimal.NewFromInt(101)),
			Commission:     statement.NewCash("USD", decimal.Zero),
			ConclusionDate: date(2020, time.January, 2),
			ExecutionDate:  date(2020, time.January, 2),
		}},
		CashAssets: fixedCashAssets{total: decimal.Zero},
	}
	portfolio := statement.PortfolioConfig{}

	report, err := Analyse(stmt, portfolio, []string{"USD"}, identityConverter{}, date(2020, time.January, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instruments := report.Currencies[0].Instruments
	if len(instruments) != 1 {
		t.Fatalf("expected 1 instrument row, got %d", len(instruments))
	}
	if instruments[0].DurationDays != 1 {
		t.Errorf("expected duration 1 day, got %d", instruments[0].DurationDays)
	}
}

// TestOpenPositionsPrecondition checks that analysis refuses to run while a
// symbol still carries an open position.
func TestOpenPositionsPrecondition(t *testing.T) {
	stmt := &statement.BrokerStatement{
		OpenPositions: map[string]decimal.Decimal{"ACME": decimal.NewFromInt(5)},
	}
	_, err := Analyse(stmt, statement.PortfolioConfig{}, []string{"USD"}, identityConverter{}, date(2024, time.January, 1))
	var openErr *statement.ErrOpenPositions
	if !errors.As(err, &openErr) {
		t.Fatalf("expected ErrOpenPositions, got %v", err)
	}
}

// TestNoActivity checks the portfolio pass rejects an empty transaction
// stream.
func TestNoActivity(t *testing.T) {
	stmt := &statement.BrokerStatement{
		CashAssets: fixedCashAssets{total: decimal.Zero},
	}
	_, err := Analyse(stmt, statement.PortfolioConfig{}, []string{"USD"}, identityConverter{}, date(2024, time.January, 1))
	var noActivity *statement.ErrNoActivity
	if !errors.As(err, &noActivity) {
		t.Fatalf("expected ErrNoActivity, got %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		days int64
		want string
	}{
		{10, "10.0d"},
		{45, "1.5m"},
		{400, "1.1y"},
	}
	for _, c := range cases {
		if got := formatDuration(c.days); got != c.want {
			t.Errorf("formatDuration(%d): got %s, want %s", c.days, got, c.want)
		}
	}
}
