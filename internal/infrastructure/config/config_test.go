package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg = nil
	return home
}

func TestDefaultIsValid(t *testing.T) {
	withTempHome(t)

	if err := Save(Default()); err != nil {
		t.Fatalf("expected default config to save cleanly, got %v", err)
	}
}

func TestSaveRejectsMissingTaxCountry(t *testing.T) {
	withTempHome(t)

	c := Default()
	c.TaxCountry = ""

	if err := Save(c); err == nil {
		t.Fatal("expected an error for empty tax country")
	}
}

func TestSaveRejectsNoReportingCurrencies(t *testing.T) {
	withTempHome(t)

	c := Default()
	c.ReportingCurrencies = nil

	if err := Save(c); err == nil {
		t.Fatal("expected an error for empty reporting currencies")
	}
}

func TestSavePersistsToConfigDir(t *testing.T) {
	home := withTempHome(t)

	c := Default()
	c.TaxCountry = "US"
	if err := Save(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(home, ".yieldscope", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}
