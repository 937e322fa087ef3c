package command

import (
	"github.com/sandevgo/finadvisor/internal/core"
)

// NewCommands builds the chat commands. quotes may be nil when market data is
// disabled.
func NewCommands(currency string, quotes QuoteLookup) []core.Command {
	cmds := []core.Command{
		NewSIPCommand(currency),
		NewLumpSumCommand(currency),
		NewEMICommand(currency),
		NewBudgetCommand(currency),
		NewRiskCommand(),
	}
	if quotes != nil {
		cmds = append(cmds, NewQuoteCommand(quotes))
	}
	return cmds
}
