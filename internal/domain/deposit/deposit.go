// Package deposit implements the deposit emulator (C2): a deterministic
// simulator of a monthly-capitalization bank deposit over an arbitrary
// sequence of dated cash flows and arbitrary active interest periods.
//
// Grounded on original_source/src/analyse/deposit_emulator.rs.
package deposit

import (
	"sort"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

// Transaction is a signed, dated cash flow. Positive means the investor put
// money in; negative means the investor took money out.
type Transaction struct {
	Date   calendar.Date
	Amount decimal.Decimal
}

// InterestPeriod is a closed [Start, End] interval during which the deposit earns interest. Start must be strictly before
// End.
type InterestPeriod struct {
	Start calendar.Date
	End   calendar.Date
}

// activePeriod is the emulator-internal view of an InterestPeriod currently
// being simulated.
type activePeriod struct {
	start                 calendar.Date
	end                   calendar.Date
	nextCapitalizationDay int
	nextCapitalization    calendar.Date
}

var (
	daysPerYear  = decimal.NewFromInt(365)
	hundred      = decimal.NewFromInt(100)
	zero         = decimal.Zero
)

// Emulator is the pure simulator described by spec component C2. Instances
// are single-use: Emulate constructs one per call and discards it.
type Emulator struct {
	cursor         calendar.Date
	remaining      []InterestPeriod // consumed from the tail, as a stack
	active         *activePeriod
	dailyInterest  decimal.Decimal
	assets         decimal.Decimal
	accumulated    decimal.Decimal
}

// Emulate runs the deposit emulator and returns the terminal balance.
//
// annualInterestPercent is divided by 100 and by 365 to produce a daily
// rate. If customPeriods is nil, a single period [startDate, endDate] is
// installed unless startDate == endDate, in which case no interest accrues
// at all.
func Emulate(
	startDate calendar.Date,
	startAssets decimal.Decimal,
	transactions []Transaction,
	endDate calendar.Date,
	annualInterestPercent decimal.Decimal,
	customPeriods []InterestPeriod,
) decimal.Decimal {
	e := &Emulator{
		cursor:        startDate,
		assets:        startAssets,
		accumulated:   zero,
		dailyInterest: annualInterestPercent.Div(hundred).Div(daysPerYear),
	}

	var periods []InterestPeriod
	if customPeriods != nil {
		periods = append(periods, customPeriods...)
	} else if !startDate.Equal(endDate) {
		periods = []InterestPeriod{{Start: startDate, End: endDate}}
	}
	// Reverse-consume convention (spec.md §9): periods arrive in
	// chronological order but are stored reversed so that popping from the
	// tail yields the earliest period first, without scanning.
	e.remaining = make([]InterestPeriod, len(periods))
	for i, p := range periods {
		e.remaining[len(periods)-1-i] = p
	}

	e.selectPeriod()

	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for _, tx := range sorted {
		e.processTo(tx.Date)
		e.assets = e.assets.Add(tx.Amount)
	}
	e.processTo(endDate)

	return e.assets
}

// selectPeriod pops the next period off the stack and installs it as active
// if the cursor has already reached its start date.
func (e *Emulator) selectPeriod() {
	if e.active != nil {
		return
	}
	if len(e.remaining) == 0 {
		return
	}
	next := e.remaining[len(e.remaining)-1]
	if e.cursor.Before(next.Start) {
		return
	}
	e.remaining = e.remaining[:len(e.remaining)-1]
	day := next.Start.Day()
	firstCap, err := calendar.NextCapitalizationDate(next.Start, day)
	if err != nil {
		panic(err)
	}
	if firstCap.After(next.End) {
		firstCap = next.End
	}
	e.active = &activePeriod{
		start:                 next.Start,
		end:                   next.End,
		nextCapitalizationDay: day,
		nextCapitalization:    firstCap,
	}
}

func (e *Emulator) peekNextPeriodStart() (calendar.Date, bool) {
	if len(e.remaining) == 0 {
		return calendar.Date{}, false
	}
	return e.remaining[len(e.remaining)-1].Start, true
}

// processTo advances the cursor to date, accruing and capitalizing interest
// along the way according to the C2 state machine.
func (e *Emulator) processTo(date calendar.Date) {
	if date.Before(e.cursor) {
		panic("deposit: cursor moved backward, transactions must be processed in date order")
	}
	for e.cursor.Before(date) {
		if e.active != nil {
			e.stepInsidePeriod(date)
		} else {
			e.stepOutsidePeriod(date)
		}
	}
}

func (e *Emulator) stepInsidePeriod(target calendar.Date) {
	p := e.active
	if !target.Before(p.nextCapitalization) {
		e.accumulateTo(p.nextCapitalization)
		if e.cursor.Equal(p.end) {
			e.closePeriod()
		} else {
			e.capitalize()
		}
		return
	}
	e.accumulateTo(target)
}

func (e *Emulator) stepOutsidePeriod(target calendar.Date) {
	if start, ok := e.peekNextPeriodStart(); ok && !target.Before(start) {
		e.cursor = start
		e.selectPeriod()
		return
	}
	e.cursor = target
}

// accumulateTo accrues interest on strictly positive balances from the
// cursor to date and advances the cursor.
func (e *Emulator) accumulateTo(date calendar.Date) {
	if date.Before(e.cursor) {
		panic("deposit: cursor moved backward, transactions must be processed in date order")
	}
	if e.assets.IsPositive() {
		days := decimal.NewFromInt(int64(e.cursor.DaysUntil(date)))
		income := e.assets.Mul(e.dailyInterest).Mul(days)
		e.accumulated = e.accumulated.Add(income)
	}
	e.cursor = date
}

func (e *Emulator) capitalize() {
	p := e.active
	e.assets = e.assets.Add(e.accumulated)
	e.accumulated = zero
	next, err := calendar.NextCapitalizationDate(p.nextCapitalization, p.nextCapitalizationDay)
	if err != nil {
		panic(err)
	}
	if next.After(p.end) {
		next = p.end
	}
	p.nextCapitalization = next
}

func (e *Emulator) closePeriod() {
	e.assets = e.assets.Add(e.accumulated)
	e.accumulated = zero
	e.active = nil
	e.selectPeriod()
}
