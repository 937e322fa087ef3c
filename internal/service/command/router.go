package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/finadvisor/internal/core"
)

type Router struct {
	commands  map[string]core.Command
	formatter *ResponseFormatter
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands:  make(map[string]core.Command),
		formatter: NewResponseFormatter(),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	help := newHelpCommand(c)
	c.commands[help.Name()] = help
	return c
}

func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return "", false
	}
	// Telegram appends the bot name in groups: /sip@finadvisor_bot
	name, _, _ := strings.Cut(strings.TrimPrefix(parts[0], "/"), "@")
	name = strings.ToLower(name)
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s. Try /help", name), true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		var invalid *core.InvalidInputError
		if errors.As(err, &invalid) {
			return c.formatter.Combine(c.formatter.Error(name, err), c.formatter.Usage(usageOf(cmd))), true
		}
		return c.formatter.Error(name, err), true
	}
	return result, true
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

type usager interface {
	Usage() string
}

func usageOf(cmd core.Command) string {
	if u, ok := cmd.(usager); ok {
		return u.Usage()
	}
	return "/" + cmd.Name()
}
