// Package run drives a single performance-analysis pass with progress
// reporting, for the CLI's spinner-driven "analyse" command.
//
// Grounded on nezdemkovski-folio212's internal/domain/run/manager.go: the
// same stage-list/ctx.Done()-gated shape, repurposed to run the real
// pipeline instead of a sleep. The whole C3->C4->C5->C6 pipeline is one
// performance.Analyse call and is recorded as a single stage.
package run

import (
	"context"
	"time"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/performance"
	"github.com/avoronin/yieldscope/internal/domain/statement"
)

// Manager runs one analysis pass against a loaded broker statement.
type Manager struct {
	Statement           *statement.BrokerStatement
	Portfolio           statement.PortfolioConfig
	ReportingCurrencies []string
	Converter           statement.Converter
	Today               calendar.Date
}

// Result is the outcome of a single Run, including the stage names
// completed along the way (surfaced by the TUI as a progress summary).
type Result struct {
	Report    *performance.Report
	Completed []string
	Duration  time.Duration
}

func NewManager(stmt *statement.BrokerStatement, portfolio statement.PortfolioConfig, currencies []string, converter statement.Converter, today calendar.Date) *Manager {
	return &Manager{
		Statement:           stmt,
		Portfolio:           portfolio,
		ReportingCurrencies: currencies,
		Converter:           converter,
		Today:               today,
	}
}

func (m *Manager) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	completed := make([]string, 0, 3)

	if err := checkDone(ctx); err != nil {
		return nil, err
	}
	completed = append(completed, "Broker statement loaded")

	if err := checkDone(ctx); err != nil {
		return nil, err
	}
	report, err := performance.Analyse(m.Statement, m.Portfolio, m.ReportingCurrencies, m.Converter, m.Today)
	if err != nil {
		return nil, err
	}
	completed = append(completed, "Open-position periods built, cash flows reduced, rates solved")

	if err := checkDone(ctx); err != nil {
		return nil, err
	}
	completed = append(completed, "Report rendered")

	return &Result{
		Report:    report,
		Completed: completed,
		Duration:  time.Since(start),
	}, nil
}

func checkDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
