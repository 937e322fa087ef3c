package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/finadvisor/internal/core"
)

type HelpCommand struct {
	router    *Router
	formatter *ResponseFormatter
}

func newHelpCommand(router *Router) *HelpCommand {
	return &HelpCommand{router: router, formatter: NewResponseFormatter()}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List available commands" }

func (c *HelpCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	var items []string
	for _, cmd := range c.router.ListCommands() {
		items = append(items, fmt.Sprintf("`%s` %s", usageOf(cmd), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info(core.AppName),
		c.formatter.List(items),
		c.formatter.Tip("anything that is not a command is answered by the advisor, e.g. \"5000 per month at 12% for 10 years, is that enough to retire?\""),
	), nil
}
