// Package position implements the open-position-period builder (C3):
// FIFO-lot accounting that turns a stream of signed buy/sell lots into a
// list of disjoint date intervals during which a non-zero long position was
// held.
//
// Grounded on
// original_source/src/analyse/performance.rs::calculate_open_position_periods.
package position

import (
	"fmt"
	"sort"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

// Lot is a single buy or sell execution. Buys carry a positive Quantity,
// sells a negative one.
type Lot struct {
	ConclusionDate calendar.Date
	ExecutionDate  calendar.Date
	Quantity       decimal.Decimal
}

// Period is a closed [Start, End] interval during which the instrument was
// held in a non-zero long position.
type Period struct {
	Start calendar.Date
	End   calendar.Date
}

// ErrNegativeBalance is returned when sells exceed buys for an instrument,
// i.e. the running share balance goes strictly negative. Short positions
// are not modeled.
type ErrNegativeBalance struct {
	Symbol string
	Date   calendar.Date
}

func (e *ErrNegativeBalance) Error() string {
	return fmt.Sprintf("negative balance for %s on %s: sells exceed buys", e.Symbol, e.Date)
}

// ErrUnsoldPositions is returned when a symbol still carries a non-zero
// balance at the end of the lot stream: the caller must simulate a sellout
// before invoking the period builder.
type ErrUnsoldPositions struct {
	Symbol string
}

func (e *ErrUnsoldPositions) Error() string {
	return fmt.Sprintf("unsold positions for %s: sellout simulation expected before analysis", e.Symbol)
}

type group struct {
	executionDate  calendar.Date
	conclusionDate calendar.Date
	quantity       decimal.Decimal
}

// BuildPeriods runs the C3 algorithm for a single instrument's lot stream
// and returns its ordered, disjoint open-position periods.
//
// 1. Lots are grouped by execution date; a group's quantity is the sum of
//    its lots' signed quantities, and its conclusion date is the minimum of
//    the conclusion dates of its BUY lots (sells never pull it earlier).
// 2. Groups are traversed in execution-date order, maintaining a running
//    share balance. A period opens on the conclusion date of the group that
//    first moves the balance away from zero, not its execution date: T+2
//    settlement means the position is economically open from the trade's
//    conclusion, per calculate_open_position_periods in the original source.
// 3. When the running balance returns to zero, a period closes; adjacent or
//    overlapping periods are merged. The close compares the closing group's
//    execution date against the opening group's conclusion date (not its
//    own), matching the original's `execution_date == start_date` check.
// 4. A strictly negative balance fails with ErrNegativeBalance.
// 5. A non-zero balance remaining after the last group fails with
//    ErrUnsoldPositions.
func BuildPeriods(symbol string, lots []Lot) ([]Period, error) {
	groups := groupByExecutionDate(lots)

	var periods []Period
	var openStart *calendar.Date
	balance := decimal.Zero

	for _, g := range groups {
		wasZero := balance.IsZero()
		balance = balance.Add(g.quantity)

		if wasZero && !balance.IsZero() {
			start := g.conclusionDate
			openStart = &start
		}

		if balance.IsNegative() {
			return nil, &ErrNegativeBalance{Symbol: symbol, Date: g.executionDate}
		}

		if balance.IsZero() && openStart != nil {
			end := g.executionDate
			if end.Equal(*openStart) {
				end = openStart.AddDays(1)
			}
			period := Period{Start: *openStart, End: end}
			if len(periods) > 0 && !period.Start.After(periods[len(periods)-1].End) {
				periods[len(periods)-1].End = calendar.Max(periods[len(periods)-1].End, period.End)
			} else {
				periods = append(periods, period)
			}
			openStart = nil
		}
	}

	if !balance.IsZero() {
		return nil, &ErrUnsoldPositions{Symbol: symbol}
	}

	return periods, nil
}

func groupByExecutionDate(lots []Lot) []group {
	byDate := make(map[calendar.Date]*group)
	hasBuy := make(map[calendar.Date]bool)
	var order []calendar.Date

	for _, lot := range lots {
		g, ok := byDate[lot.ExecutionDate]
		if !ok {
			g = &group{executionDate: lot.ExecutionDate, conclusionDate: lot.ConclusionDate, quantity: decimal.Zero}
			byDate[lot.ExecutionDate] = g
			order = append(order, lot.ExecutionDate)
		}
		g.quantity = g.quantity.Add(lot.Quantity)
		if lot.Quantity.IsPositive() && (!hasBuy[lot.ExecutionDate] || lot.ConclusionDate.Before(g.conclusionDate)) {
			g.conclusionDate = lot.ConclusionDate
			hasBuy[lot.ExecutionDate] = true
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	groups := make([]group, len(order))
	for i, date := range order {
		groups[i] = *byDate[date]
	}
	return groups
}
