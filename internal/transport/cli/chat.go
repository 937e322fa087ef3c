package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/sandevgo/finadvisor/internal/service/ui"
	"github.com/sandevgo/finadvisor/pkg/log"
)

const sessionID = "cli-local"

type Advisor interface {
	Advise(ctx context.Context, q advisor.Query) (*advisor.Response, error)
}

// Chat is a line based advisory session on a terminal. Lines starting with a
// slash go to the command router, "profile <name>" pins a risk profile for
// the rest of the session and anything else is asked to the advisor.
type Chat struct {
	advisor  Advisor
	router   core.CmdRouter
	rl       *readline.Instance
	readLine func() (string, error)
	out      io.Writer
	profile  *risk.Profile
}

// NewChat opens the terminal. Typed lines are kept in input_history under
// runtimePath.
func NewChat(adv Advisor, router core.CmdRouter, runtimePath string) (*Chat, error) {
	if err := os.MkdirAll(runtimePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &Chat{
		advisor:  adv,
		router:   router,
		rl:       rl,
		readLine: rl.Readline,
		out:      rl.Stdout(),
	}, nil
}

func (c *Chat) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started. Type 'exit' to quit, /help for commands.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := c.readLine()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}
		c.handle(ctx, line)
	}
}

func (c *Chat) handle(ctx context.Context, line string) {
	if name, ok := strings.CutPrefix(line, "profile "); ok {
		p, err := risk.ParseProfile(strings.TrimSpace(name))
		if err != nil {
			fmt.Fprintln(c.out, ui.ErrorStyle.Render(err.Error()))
			return
		}
		c.profile = &p
		fmt.Fprintf(c.out, "answers now assume a %s profile\n", p)
		return
	}

	if out, handled := c.router.Execute(ctx, sessionID, line); handled {
		fmt.Fprintln(c.out, out)
		return
	}

	resp, err := c.advisor.Advise(ctx, advisor.Query{Text: line, Profile: c.profile})
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("advisory query rejected")
		fmt.Fprintln(c.out, ui.ErrorStyle.Render("Error: "+err.Error()))
		return
	}
	fmt.Fprintln(c.out, Render(resp))
}

func (c *Chat) Shutdown(ctx context.Context) error {
	if c.rl != nil {
		return c.rl.Close()
	}
	return nil
}

// Render prints a response for a terminal.
func Render(resp *advisor.Response) string {
	var sb strings.Builder
	sb.WriteString(resp.Narrative)
	sb.WriteString("\n")

	if resp.Profile != nil && len(resp.Allocation) > 0 {
		sb.WriteString("\n" + ui.TitleStyle.Render(fmt.Sprintf("Suggested allocation (%s)", resp.Profile)) + "\n")
		for _, a := range resp.Allocation {
			fmt.Fprintf(&sb, "  %3s%%  %s\n", a.Percent, a.AssetClass)
		}
	}
	if len(resp.CitedChunks) > 0 {
		sb.WriteString("\n" + ui.DescStyle.Render("sources: "+strings.Join(resp.CitedChunks, ", ")) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
