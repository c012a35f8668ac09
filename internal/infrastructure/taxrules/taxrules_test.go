package taxrules

import (
	"testing"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/shopspring/decimal"
)

func TestFlatJurisdictionRateIsConstantAcrossYears(t *testing.T) {
	j := FlatJurisdiction{Rate: decimal.NewFromFloat(0.13)}

	if !j.TaxRate(2020).Equal(j.Rate) {
		t.Fatalf("expected flat rate for 2020, got %s", j.TaxRate(2020))
	}
	if !j.TaxRate(2024).Equal(j.Rate) {
		t.Fatalf("expected flat rate for 2024, got %s", j.TaxRate(2024))
	}
}

func TestFixedDayNextYearRollsIntoFollowingYear(t *testing.T) {
	rule := RussianPersonalIncomeTax
	event := calendar.NewDate(2023, 11, 15)

	got := rule.TaxPaymentDate(event)
	want := calendar.NewDate(2024, 4, 30)

	if !got.Equal(want) {
		t.Fatalf("expected payment date %s, got %s", want, got)
	}
}

func TestMonthOfClampsOutOfRangeValues(t *testing.T) {
	rule := FixedDayNextYear{Month: 0, Day: 1}
	got := rule.TaxPaymentDate(calendar.NewDate(2023, 1, 1))
	if got.Month() != 1 {
		m := int(got.Month())
		t.Fatalf("expected month clamped to 1, got %d", m)
	}

	rule = FixedDayNextYear{Month: 15, Day: 1}
	got = rule.TaxPaymentDate(calendar.NewDate(2023, 1, 1))
	if got.Month() != 12 {
		m := int(got.Month())
		t.Fatalf("expected month clamped to 12, got %d", m)
	}
}
