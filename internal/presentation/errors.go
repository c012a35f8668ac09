package presentation

import (
	"errors"
	"fmt"

	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/avoronin/yieldscope/internal/infrastructure/fx"
)

// HumanizeDomainError renders a core error as operator-facing guidance,
// grounded on nezdemkovski-folio212's internal/presentation/errors.go
// (HumanizeDomainError/HumanizeAccountError), generalized from
// Trading212-specific HTTP/permission errors to the core's own error kinds
// and the FX provider's HTTPError.
func HumanizeDomainError(err error) string {
	var openPositions *statement.ErrOpenPositions
	var lowPrecision *statement.ErrLowPrecision
	var noActivity *statement.ErrNoActivity
	var fxUnavailable *statement.ErrFxUnavailable
	var httpErr *fx.HTTPError

	switch {
	case errors.As(err, &openPositions):
		return fmt.Sprintf("%s - close them in the broker statement before running 'yieldscope analyse'", err.Error())
	case errors.As(err, &lowPrecision):
		return fmt.Sprintf("%s - the cash-flow reduction may be missing a transaction", err.Error())
	case errors.As(err, &noActivity):
		return err.Error()
	case errors.As(err, &fxUnavailable):
		return fmt.Sprintf("%s - check the FX provider covers this pair and date", err.Error())
	case errors.As(err, &httpErr):
		return fmt.Sprintf("FX provider request failed: %s", httpErr.Error())
	default:
		return err.Error()
	}
}
