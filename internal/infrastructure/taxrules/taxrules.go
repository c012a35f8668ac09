// Package taxrules provides concrete statement.Jurisdiction and
// statement.TaxPaymentDayRule implementations for the tax jurisdictions this
// CLI ships support for out of the box.
//
// Grounded on original_source/src/analyse/performance.rs's
// portfolio.tax_payment_day.get(date)/NetTaxCalculator::new(country, ...)
// collaborators, and original_source/src/broker_statement/taxes.rs's
// year-bucketed withholding accounting.
package taxrules

import (
	"time"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

// FlatJurisdiction applies a single flat tax rate to every year, the
// simplest case allowed by statement.Jurisdiction.
type FlatJurisdiction struct {
	Rate decimal.Decimal
}

func (j FlatJurisdiction) TaxRate(_ int) decimal.Decimal {
	return j.Rate
}

// FixedDayNextYear is a TaxPaymentDayRule that always falls due on a fixed
// month/day of the year after the taxable event, the shape of Russia's
// personal income tax deadline (30 April of the following year) that the
// core was originally built against.
type FixedDayNextYear struct {
	Month int
	Day   int
}

// RussianPersonalIncomeTax is the 30 April next-year deadline.
var RussianPersonalIncomeTax = FixedDayNextYear{Month: 4, Day: 30}

func (r FixedDayNextYear) TaxPaymentDate(eventDate calendar.Date) calendar.Date {
	return calendar.NewDate(eventDate.Year()+1, monthOf(r.Month), r.Day)
}

func monthOf(m int) time.Month {
	if m < 1 {
		m = 1
	}
	if m > 12 {
		m = 12
	}
	return time.Month(m)
}
