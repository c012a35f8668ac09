package statement

import (
	"fmt"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

// ErrOpenPositions is returned when analysis is invoked while positions
// remain open. The caller must run a sellout simulation first; this is a
// contract violation, not a data error.
type ErrOpenPositions struct {
	Symbols []string
}

func (e *ErrOpenPositions) Error() string {
	return fmt.Sprintf("open positions remain for %v: run sellout simulation before analysis", e.Symbols)
}

// ErrLowPrecision is returned when the rate solver could not match the
// observed terminal assets within the 1% precision floor (spec.md §4.5).
type ErrLowPrecision struct {
	Scope     string
	Precision decimal.Decimal
}

func (e *ErrLowPrecision) Error() string {
	return fmt.Sprintf("%s: emulation precision %s%% exceeds the 1%% tolerance", e.Scope, e.Precision.Mul(decimal.NewFromInt(100)))
}

// ErrNoActivity is returned when a portfolio has no transactions at all, so
// no equivalent rate can be computed.
type ErrNoActivity struct {
	Scope string
}

func (e *ErrNoActivity) Error() string {
	return fmt.Sprintf("%s: no activity, cannot compute a rate", e.Scope)
}

// ErrFxUnavailable is propagated from a Converter when a required
// historical rate is missing.
type ErrFxUnavailable struct {
	From string
	To   string
	Date calendar.Date
}

func (e *ErrFxUnavailable) Error() string {
	return fmt.Sprintf("no %s/%s rate available for %s", e.From, e.To, e.Date)
}
