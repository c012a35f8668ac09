package cmd

import (
	"fmt"

	"github.com/avoronin/yieldscope/internal/infrastructure/config"
	"github.com/avoronin/yieldscope/internal/shared/ui"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "yieldscope",
	Short: "Investment portfolio performance analyzer",
	Long:  "Reduces a broker statement to a cash-flow timeline and infers the equivalent bank-deposit interest rate it's equivalent to.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("configuration not found. Please run 'yieldscope init' first: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.ExitWithError("Command failed", err)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(analyseCmd)
	rootCmd.AddCommand(selloutCmd)
	rootCmd.AddCommand(serveCmd)
}

func GetConfig() *config.Config {
	return cfg
}
