package presentation

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/avoronin/yieldscope/internal/infrastructure/config"
	"github.com/avoronin/yieldscope/internal/infrastructure/secrets"
	"github.com/avoronin/yieldscope/internal/shared/ui"
	"github.com/avoronin/yieldscope/internal/shared/validation"
)

// InitModel drives the interactive setup wizard: tax jurisdiction, tax
// payment day, reporting currencies, the long-term-ownership deduction flag,
// and (optionally) an FX-provider API key stored via the OS keyring.
//
// Grounded on nezdemkovski-folio212's internal/presentation/init.go (the
// huh.Form + bubbletea shape), generalized from Trading212 account
// credentials to portfolio tax configuration.
type InitModel struct {
	form *huh.Form

	taxCountry          string
	taxPaymentMonth     string
	taxPaymentDay       string
	taxRatePercent      string
	reportingCurrencies string
	applyLTO            bool
	fxProviderAPIKey    string
	hasSavedKey         bool
	cancelled           bool

	width          int
	height         int
	err            error
	cfg            *config.Config
	layout         ui.Layout
	secretSource   secrets.Source
	secretInsecure bool
}

func NewInitModel() *InitModel {
	m := &InitModel{
		taxCountry:          "RU",
		taxPaymentMonth:     "4",
		taxPaymentDay:       "30",
		taxRatePercent:      "13",
		reportingCurrencies: "USD",
		layout:              ui.NewLayout(80, 24),
	}

	if cfg, err := config.Load(); err == nil && cfg != nil {
		if strings.TrimSpace(cfg.TaxCountry) != "" {
			m.taxCountry = cfg.TaxCountry
		}
		if cfg.TaxPaymentMonth != 0 {
			m.taxPaymentMonth = strconv.Itoa(cfg.TaxPaymentMonth)
		}
		if cfg.TaxPaymentDay != 0 {
			m.taxPaymentDay = strconv.Itoa(cfg.TaxPaymentDay)
		}
		if strings.TrimSpace(cfg.TaxRatePercent) != "" {
			m.taxRatePercent = cfg.TaxRatePercent
		}
		if len(cfg.ReportingCurrencies) > 0 {
			m.reportingCurrencies = strings.Join(cfg.ReportingCurrencies, ",")
		}
		m.applyLTO = cfg.ApplyLongTermOwnershipDeduction
	}

	if key, _, _ := secrets.Get(secrets.KeyFxProviderAPIKey); strings.TrimSpace(key) != "" {
		m.hasSavedKey = true
	}

	keyPlaceholder := ""
	if m.hasSavedKey {
		keyPlaceholder = "leave blank to keep existing"
	}

	confirm := true

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tax country (ISO code)").
				Value(&m.taxCountry),
			huh.NewInput().
				Title("Tax payment month (1-12)").
				Value(&m.taxPaymentMonth),
			huh.NewInput().
				Title("Tax payment day of month").
				Value(&m.taxPaymentDay),
			huh.NewInput().
				Title("Flat tax rate (percent)").
				Value(&m.taxRatePercent),
			huh.NewInput().
				Title("Reporting currencies (comma-separated)").
				Value(&m.reportingCurrencies),
			huh.NewConfirm().
				Title("Apply long-term ownership deduction?").
				Value(&m.applyLTO).
				Affirmative("Yes").
				Negative("No"),
			huh.NewInput().
				Title("FX provider API key (optional)").
				Value(&m.fxProviderAPIKey).
				EchoMode(huh.EchoModePassword).
				Placeholder(keyPlaceholder),
			huh.NewConfirm().
				Title("Proceed?").
				Value(&confirm).
				Affirmative("OK").
				Negative("Cancel").
				Validate(func(v bool) error {
					if !v {
						m.cancelled = true
						return nil
					}
					return validation.ValidateNonEmpty("tax country", strings.TrimSpace(m.taxCountry))
				}),
		),
	).WithTheme(huh.ThemeBase()).
		WithShowHelp(true)

	return m
}

func (m *InitModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *InitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.UpdateDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.cancelled {
			m.err = fmt.Errorf("init cancelled by user")
			return m, tea.Quit
		}

		month, err := strconv.Atoi(strings.TrimSpace(m.taxPaymentMonth))
		if err != nil || month < 1 || month > 12 {
			m.err = fmt.Errorf("invalid tax payment month %q (expected 1-12)", m.taxPaymentMonth)
			return m, tea.Quit
		}
		day, err := strconv.Atoi(strings.TrimSpace(m.taxPaymentDay))
		if err != nil || day < 1 || day > 31 {
			m.err = fmt.Errorf("invalid tax payment day %q (expected 1-31)", m.taxPaymentDay)
			return m, tea.Quit
		}

		var currencies []string
		for _, c := range strings.Split(m.reportingCurrencies, ",") {
			if c = strings.TrimSpace(c); c != "" {
				currencies = append(currencies, strings.ToUpper(c))
			}
		}
		if len(currencies) == 0 {
			m.err = fmt.Errorf("at least one reporting currency is required")
			return m, tea.Quit
		}

		c := config.Default()
		c.TaxCountry = strings.ToUpper(strings.TrimSpace(m.taxCountry))
		c.TaxPaymentMonth = month
		c.TaxPaymentDay = day
		c.TaxRatePercent = strings.TrimSpace(m.taxRatePercent)
		c.ReportingCurrencies = currencies
		c.ApplyLongTermOwnershipDeduction = m.applyLTO

		if err := config.Save(c); err != nil {
			m.err = err
			return m, tea.Quit
		}

		key := strings.TrimSpace(m.fxProviderAPIKey)
		if key != "" {
			source, insecure, err := secrets.Set(secrets.KeyFxProviderAPIKey, key)
			if err != nil {
				m.err = fmt.Errorf("failed to save FX provider API key: %w", err)
				return m, tea.Quit
			}
			m.secretSource = source
			m.secretInsecure = insecure
		}

		m.cfg = c
		return m, tea.Quit
	}

	return m, cmd
}

func (m *InitModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{
		m.layout.RenderLogo(),
		m.layout.RenderSubtitle("Analyse your portfolio's equivalent bank-deposit rate from the terminal."),
		m.layout.RenderBody(m.form.View()),
	}

	return m.layout.RenderCentered(sections...)
}

func (m *InitModel) Error() error {
	return m.err
}

func (m *InitModel) Config() *config.Config {
	return m.cfg
}

func (m *InitModel) SecretSource() secrets.Source {
	return m.secretSource
}

func RenderInitCompletion(cfg *config.Config, secretSource secrets.Source) string {
	var s strings.Builder

	s.WriteString(ui.SuccessStyle.Render(ui.SymbolDone) + " " + ui.Title.Render("Initialization Complete"))
	s.WriteString("\n\n")

	if cfg != nil {
		s.WriteString(ui.SectionHeader("Config"))
		s.WriteString("\n")
		s.WriteString(ui.Bullet(fmt.Sprintf("tax country: %s", cfg.TaxCountry)))
		s.WriteString("\n")
		s.WriteString(ui.Bullet(fmt.Sprintf("tax payment date: %02d-%02d of the following year", cfg.TaxPaymentMonth, cfg.TaxPaymentDay)))
		s.WriteString("\n")
		s.WriteString(ui.Bullet(fmt.Sprintf("tax rate: %s%%", cfg.TaxRatePercent)))
		s.WriteString("\n")
		s.WriteString(ui.Bullet(fmt.Sprintf("reporting currencies: %s", strings.Join(cfg.ReportingCurrencies, ", "))))
		s.WriteString("\n")
		s.WriteString(ui.Bullet(fmt.Sprintf("long-term ownership deduction: %v", cfg.ApplyLongTermOwnershipDeduction)))
		s.WriteString("\n")
	}

	if secretSource != secrets.SourceNone {
		s.WriteString("\n")
		s.WriteString(ui.SectionHeader("Secrets"))
		s.WriteString("\n")
		switch secretSource {
		case secrets.SourceKeyring:
			s.WriteString(ui.Bullet("FX provider API key stored securely in OS keyring"))
		case secrets.SourceFile:
			s.WriteString(ui.WarningStyle.Render(ui.SymbolWarning) + " " + ui.WarningStyle.Render("FX provider API key stored in config file (insecure)"))
			s.WriteString("\n")
			s.WriteString(ui.Meta.Render("  Consider using an environment variable for servers:"))
			s.WriteString("\n")
			s.WriteString(ui.Meta.Render("  export YIELDSCOPE_FX_PROVIDER_API_KEY=your-key"))
		case secrets.SourceEnv:
			s.WriteString(ui.Bullet("FX provider API key loaded from environment variable"))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(ui.Meta.Render("Next steps:") + "\n")
	s.WriteString(ui.Bullet("yieldscope analyse <statement.json>  - Analyse a broker statement") + "\n")

	return ui.Container.Render(s.String())
}
