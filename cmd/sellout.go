package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrSellSimulationUnavailable is returned by 'sellout': sell-order
// simulation (choosing which lots to sell to clear an open position before
// an analyse pass) is explicitly out of the core's scope (spec.md §1). The
// command exists so the gap is discoverable rather than silently missing.
var ErrSellSimulationUnavailable = errors.New("sell simulation is not implemented; close positions in your broker statement before running 'yieldscope analyse'")

var selloutCmd = &cobra.Command{
	Use:   "sellout <statement.json> <symbol> [qty]",
	Short: "Simulate selling an open position (unavailable)",
	Long:  "Sell-order simulation is out of scope for this tool; this command exists to surface that as a discoverable error rather than a missing command.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("%w (symbol: %s)", ErrSellSimulationUnavailable, args[1])
	},
}
