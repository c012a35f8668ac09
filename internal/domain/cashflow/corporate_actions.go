package cashflow

import (
	"github.com/avoronin/yieldscope/internal/domain/position"
	"github.com/avoronin/yieldscope/internal/domain/statement"
)

// BuildLots projects a symbol's buys and sells out of a statement into the
// position.Lot stream C3 consumes.
func BuildLots(stmt *statement.BrokerStatement, symbol string) []position.Lot {
	var lots []position.Lot
	for _, b := range stmt.StockBuys {
		if b.Symbol != symbol {
			continue
		}
		lots = append(lots, position.Lot{
			ConclusionDate: b.ConclusionDate,
			ExecutionDate:  b.ExecutionDate,
			Quantity:       b.Quantity,
		})
	}
	for _, s := range stmt.StockSells {
		if s.Symbol != symbol {
			continue
		}
		lots = append(lots, position.Lot{
			ConclusionDate: s.ConclusionDate,
			ExecutionDate:  s.ExecutionDate,
			Quantity:       s.Quantity.Neg(),
		})
	}
	return lots
}

// ApplyCorporateActions rescales a symbol's lot quantities for splits and
// reverse splits that occurred on or after each lot's execution date,
// supplementing spec.md's C3 input (which assumes pre-adjusted lots) with
// the step that produces them (see original_source's
// broker_statement/{open,ib}/corporate_actions.rs).
//
// Spin-offs (actions with a NewSymbol) are not resolved into a lot here:
// they open a position in a different instrument, and statement.CorporateAction
// carries no share-ratio field for "shares received in NewSymbol per share
// held in Symbol" to compute that lot's quantity from. They are recorded on
// the statement and left for a broker-specific parser (an external
// collaborator, spec.md §1) to expand into an explicit StockBuy on the new
// symbol once it has that ratio.
func ApplyCorporateActions(lots []position.Lot, symbol string, actions []statement.CorporateAction) []position.Lot {
	adjusted := make([]position.Lot, len(lots))
	copy(adjusted, lots)

	for _, action := range actions {
		if action.Symbol != symbol || action.NewSymbol != "" {
			continue
		}
		for i := range adjusted {
			if !adjusted[i].ExecutionDate.After(action.Date) {
				adjusted[i].Quantity = adjusted[i].Quantity.Mul(action.Ratio)
			}
		}
	}

	return adjusted
}
