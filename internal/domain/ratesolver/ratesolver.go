// Package ratesolver implements the rate solver (C5): a coarse-to-fine
// grid-descent search for the constant annual interest rate whose emulated
// terminal balance matches an observed target.
//
// Grounded on
// original_source/src/analyse/performance.rs::compare_to_bank_deposit.
package ratesolver

import (
	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/deposit"
	"github.com/shopspring/decimal"
)

var steps = []string{"1", "0.1", "0.01"}

// Result is the solver's output: the interest rate found and the residual
// absolute difference between the emulated and observed terminal assets.
type Result struct {
	Interest   decimal.Decimal
	Difference decimal.Decimal
}

// Solve searches interest ∈ ℝ minimizing
// |currentAssets - emulate(0, transactions, [minDate, maxDate], interest, periods)|
// via coarse-to-fine grid descent over step sizes {1, 0.1, 0.01}.
//
// minDate/maxDate are the union of the earliest/latest dates among
// transactions and periods, per spec.md §4.5.
func Solve(transactions []deposit.Transaction, periods []deposit.InterestPeriod, currentAssets decimal.Decimal) Result {
	minDate, maxDate := bounds(transactions, periods)

	objective := func(interest decimal.Decimal) decimal.Decimal {
		emulated := deposit.Emulate(minDate, decimal.Zero, transactions, maxDate, interest, periods)
		return currentAssets.Sub(emulated).Abs()
	}

	interest := decimal.Zero
	current := objective(interest)

	for _, s := range steps {
		step, err := decimal.NewFromString(s)
		if err != nil {
			panic(err)
		}

		down := objective(interest.Sub(step))
		up := objective(interest.Add(step))

		if current.LessThanOrEqual(down) && current.LessThanOrEqual(up) {
			continue // middle is the local minimum at this resolution
		}

		direction := step.Neg()
		best := down
		if up.LessThan(down) {
			direction = step
			best = up
		}

		candidate := interest.Add(direction)
		for best.LessThan(current) {
			interest = candidate
			current = best
			candidate = interest.Add(direction)
			best = objective(candidate)
		}
	}

	return Result{Interest: interest, Difference: current}
}

func bounds(transactions []deposit.Transaction, periods []deposit.InterestPeriod) (calendar.Date, calendar.Date) {
	var min, max calendar.Date
	first := true

	consider := func(d calendar.Date) {
		if first {
			min, max = d, d
			first = false
			return
		}
		min = calendar.Min(min, d)
		max = calendar.Max(max, d)
	}

	for _, tx := range transactions {
		consider(tx.Date)
	}
	for _, p := range periods {
		consider(p.Start)
		consider(p.End)
	}

	return min, max
}
