package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/avoronin/yieldscope/internal/domain/performance"
)

// RenderReport renders a performance.Report as a plain-text table, one
// section per reporting currency, columns in the fixed order spec.md §4.6
// names: Instrument, Investments, Profit, Result, Duration, Interest.
//
// Grounded on nezdemkovski-folio212's internal/presentation/portfolio.go
// (RenderPortfolioText), generalized from the Trading212 portfolio shape to
// the equivalent-interest-rate performance report.
func RenderReport(report *performance.Report) string {
	var s strings.Builder
	for i, cr := range report.Currencies {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(renderCurrencyReport(cr))
	}
	return s.String()
}

// WriteReport writes RenderReport's output to w.
func WriteReport(report *performance.Report, w io.Writer) error {
	_, err := w.Write([]byte(RenderReport(report)))
	return err
}

func renderCurrencyReport(cr performance.CurrencyReport) string {
	var s strings.Builder

	s.WriteString(fmt.Sprintf("Performance (%s)\n", cr.Currency))
	s.WriteString(fmt.Sprintf("  %-12s %14s %14s %14s %10s %10s\n",
		"Instrument", "Investments", "Profit", "Result", "Duration", "Interest"))

	for _, row := range cr.Instruments {
		s.WriteString(renderRow(row))
	}

	s.WriteString(fmt.Sprintf("  %-12s %14s %14s %14s %10s %10s\n",
		"(portfolio)",
		cr.Portfolio.Investments.StringFixed(0),
		cr.Portfolio.Profit.StringFixed(0),
		cr.Portfolio.Returned.StringFixed(0),
		cr.Portfolio.Duration,
		cr.Portfolio.InterestPercent.StringFixed(2)+"%"))

	return s.String()
}

func renderRow(row performance.Row) string {
	return fmt.Sprintf("  %-12s %14s %14s %14s %10s %10s\n",
		row.Name,
		row.Investments.StringFixed(0),
		row.Profit.StringFixed(0),
		row.Returned.StringFixed(0),
		row.Duration,
		row.InterestPercent.StringFixed(2)+"%")
}
