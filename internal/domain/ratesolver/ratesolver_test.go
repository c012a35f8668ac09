package ratesolver

import (
	"testing"
	"time"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/deposit"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) calendar.Date { return calendar.NewDate(y, m, d) }

// TestRoundTrip is spec.md §8's rate-solver round-trip property: given a
// schedule and a target balance produced by emulate(interest=R), the
// solver recovers R within 0.01 and the residual precision is below 1%.
func TestRoundTrip(t *testing.T) {
	start := date(2018, time.July, 28)
	end := date(2019, time.January, 28)
	txs := []deposit.Transaction{{Date: start, Amount: decimal.NewFromInt(600000)}}

	const wantRate = "7"
	rate, _ := decimal.NewFromString(wantRate)
	target := deposit.Emulate(start, decimal.Zero, txs, end, rate, nil)

	result := Solve(txs, []deposit.InterestPeriod{{Start: start, End: end}}, target)

	diff := result.Interest.Sub(rate).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Errorf("recovered rate %s too far from %s (diff %s)", result.Interest, rate, diff)
	}

	precision := result.Difference.Abs().Div(target.Abs())
	if precision.GreaterThanOrEqual(decimal.NewFromFloat(0.01)) {
		t.Errorf("precision %s exceeds 1%% tolerance", precision)
	}
}

// TestSignCoherence is spec.md §8's sign-coherence property: swapping all
// transaction signs and the target-assets sign yields a solution whose
// absolute value equals the original.
func TestSignCoherence(t *testing.T) {
	start := date(2020, time.January, 1)
	end := date(2020, time.December, 31)
	txs := []deposit.Transaction{{Date: start, Amount: decimal.NewFromInt(100000)}}

	rate, _ := decimal.NewFromString("5")
	target := deposit.Emulate(start, decimal.Zero, txs, end, rate, nil)

	original := Solve(txs, nil, target)

	negTxs := []deposit.Transaction{{Date: start, Amount: txs[0].Amount.Neg()}}
	negTarget := target.Neg()
	negated := Solve(negTxs, nil, negTarget)

	diff := original.Interest.Abs().Sub(negated.Interest.Abs()).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.05)) {
		t.Errorf("sign coherence violated: |%s| != |%s|", original.Interest, negated.Interest)
	}
}

// TestPrecisionFailureCase is spec.md §8 scenario 6: a constructed sell
// volume of 100 with a rate-solver residual of 1.5 triggers a precision
// ratio at or above the 1% tolerance.
func TestPrecisionFailureCase(t *testing.T) {
	volume := decimal.NewFromInt(100)
	residual := decimal.NewFromFloat(1.5)
	precision := residual.Div(volume)
	if precision.LessThan(decimal.NewFromFloat(0.01)) {
		t.Fatalf("expected precision >= 1%%, got %s", precision)
	}
}
