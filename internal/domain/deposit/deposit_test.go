package deposit

import (
	"testing"
	"time"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func date(y int, m time.Month, day int) calendar.Date {
	return calendar.NewDate(y, m, day)
}

// TestRealDeposit is the literal fixture from spec.md §8: start 2018-07-28,
// initial 600,000, rate 7%, monthly capitalization on the 28th.
func TestRealDeposit(t *testing.T) {
	start := date(2018, time.July, 28)
	initial := d("600000")
	interest := d("7")

	expected := []struct {
		end     calendar.Date
		balance string
	}{
		{date(2018, time.August, 28), "603567.12"},
		{date(2018, time.September, 28), "607155.45"},
		{date(2018, time.October, 28), "610648.68"},
		{date(2018, time.November, 28), "614279.11"},
		{date(2018, time.December, 28), "617813.32"},
		{date(2019, time.January, 28), "621486.34"},
	}

	for _, c := range expected {
		got := Emulate(start, initial, nil, c.end, interest, nil)
		want := d(c.balance)
		if !got.Round(2).Equal(want) {
			t.Errorf("emulate to %s: got %s, want %s", c.end, got.Round(2), want)
		}
	}
}

// TestContributionProperty is the literal fixture from spec.md §8: start
// 2019-01-31, initial 190,000, rate 7%, with contributions.
func TestContributionProperty(t *testing.T) {
	start := date(2019, time.January, 31)
	initial := d("190000")
	interest := d("7")
	txs := []Transaction{
		{Date: date(2019, time.February, 5), Amount: d("60000")},
		{Date: date(2019, time.February, 21), Amount: d("50000")},
	}

	expected := []struct {
		end     calendar.Date
		balance string
	}{
		{date(2019, time.February, 28), "301352.05"},
		{date(2019, time.March, 31), "303143.65"},
		{date(2019, time.April, 30), "304887.77"},
		{date(2019, time.May, 31), "306700.39"},
		{date(2019, time.June, 30), "308464.97"},
		{date(2019, time.July, 31), "310298.85"},
	}

	for _, c := range expected {
		got := Emulate(start, initial, txs, c.end, interest, nil)
		want := d(c.balance)
		if !got.Round(2).Equal(want) {
			t.Errorf("emulate to %s: got %s, want %s", c.end, got.Round(2), want)
		}
	}
}

// TestPeriodGapProperty is the literal fixture from spec.md §8: the single
// cash deposit scenario (start 2018-07-28, 600,000 @ 7%) reaches 621,486.34
// by 2019-01-28, the end of its only interest period. Closing most of it
// with -321,486.34 that same day, then a withdrawal/deposit pair the two
// following days while outside any interest period, must leave exactly
// 150,000 on 2019-01-31 with no interest accrued on the gap transactions:
// 621,486.34 - 321,486.34 - 200,000 + 50,000 = 150,000.
func TestPeriodGapProperty(t *testing.T) {
	start := date(2018, time.July, 28)
	initial := d("600000")
	interest := d("7")
	periods := []InterestPeriod{{Start: start, End: date(2019, time.January, 28)}}

	txs := []Transaction{
		// Close most of the deposit at the end of its interest period.
		{Date: date(2019, time.January, 28), Amount: d("-321486.34")},
		// Gap: withdrawal then deposit while outside any interest period.
		{Date: date(2019, time.January, 29), Amount: d("-200000")},
		{Date: date(2019, time.January, 30), Amount: d("50000")},
	}

	got := Emulate(start, initial, txs, date(2019, time.January, 31), interest, periods)
	want := d("150000")
	if !got.Round(2).Equal(want) {
		t.Errorf("got %s, want %s", got.Round(2), want)
	}
}

// TestJointDeposits checks two separate interest periods with a no-interest
// gap between them, per spec.md §8's "period gap property".
func TestJointDeposits(t *testing.T) {
	periods := []InterestPeriod{
		{Start: date(2018, time.July, 28), End: date(2019, time.January, 28)},
		{Start: date(2019, time.February, 1), End: date(2019, time.August, 1)},
	}
	txs := []Transaction{
		{Date: date(2018, time.July, 28), Amount: d("600000")},
		{Date: date(2019, time.January, 28), Amount: d("-621486.34")},
		{Date: date(2019, time.February, 1), Amount: d("621486.34")},
	}

	got := Emulate(date(2018, time.July, 28), decimal.Zero, txs, date(2019, time.August, 1), d("7"), periods)
	// Over two periods covering the same duration split at the same rate,
	// the terminal balance should still reflect ~7% compounding; we assert
	// it recovers the expected order of magnitude rather than a literal
	// digit-for-digit figure absent from the original fixtures.
	if got.LessThan(d("600000")) {
		t.Errorf("expected growth over two joint periods, got %s", got)
	}
}

func TestSplitEquivalence(t *testing.T) {
	start := date(2020, time.January, 1)
	end := date(2020, time.December, 31)
	interest := d("5")
	x := d("123456.78")

	txAtStart := []Transaction{{Date: start, Amount: x}}

	a := Emulate(start, x, nil, end, interest, nil)
	b := Emulate(start, decimal.Zero, txAtStart, end, interest, nil)

	if !a.Round(8).Equal(b.Round(8)) {
		t.Errorf("split equivalence violated: %s != %s", a, b)
	}
}

func TestIdempotence(t *testing.T) {
	start := date(2021, time.March, 15)
	end := date(2021, time.September, 15)
	interest := d("4.5")
	txs := []Transaction{{Date: date(2021, time.May, 1), Amount: d("1000")}}

	a := Emulate(start, d("500"), txs, end, interest, nil)
	b := Emulate(start, d("500"), txs, end, interest, nil)
	if !a.Equal(b) {
		t.Errorf("emulate is not idempotent: %s != %s", a, b)
	}
}
