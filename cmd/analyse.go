package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/run"
	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/avoronin/yieldscope/internal/infrastructure/fx"
	"github.com/avoronin/yieldscope/internal/infrastructure/statementio"
	"github.com/avoronin/yieldscope/internal/infrastructure/taxrules"
	"github.com/avoronin/yieldscope/internal/presentation"
)

var analyseCmd = &cobra.Command{
	Use:   "analyse [statement.json]",
	Short: "Analyse a broker statement",
	Long:  "Reduces a broker statement to a cash-flow timeline and solves for the equivalent bank-deposit rate per instrument and for the portfolio as a whole.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open statement: %w", err)
		}
		defer f.Close()

		stmt, err := statementio.Load(f)
		if err != nil {
			return err
		}

		ratePercent, err := decimal.NewFromString(cfg.TaxRatePercent)
		if err != nil {
			return fmt.Errorf("invalid tax_rate_percent %q: %w", cfg.TaxRatePercent, err)
		}
		rate := ratePercent.Div(decimal.NewFromInt(100))

		portfolio := statement.PortfolioConfig{
			TaxCountry:                      cfg.TaxCountry,
			TaxPaymentDay:                   taxrules.FixedDayNextYear{Month: cfg.TaxPaymentMonth, Day: cfg.TaxPaymentDay},
			Jurisdiction:                    taxrules.FlatJurisdiction{Rate: rate},
			ApplyLongTermOwnershipDeduction: cfg.ApplyLongTermOwnershipDeduction,
		}

		converter := fx.NewStaticConverter()
		manager := run.NewManager(stmt, portfolio, cfg.ReportingCurrencies, converter, calendar.FromTime(time.Now()))

		if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
			result, err := manager.Run(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(presentation.RenderRunCompletion(result))
			return nil
		}

		p := tea.NewProgram(presentation.NewRunModel(manager))
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		if m, ok := finalModel.(presentation.RunModel); ok {
			if m.Error() != nil {
				return m.Error()
			}
			if result := m.Result(); result != nil {
				fmt.Println(presentation.RenderRunCompletion(result))
			}
		}

		return nil
	},
}
