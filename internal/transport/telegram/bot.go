package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/finadvisor/internal/config"
	"github.com/sandevgo/finadvisor/internal/core"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/sandevgo/finadvisor/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Advisor interface {
	Advise(ctx context.Context, q advisor.Query) (*advisor.Response, error)
}

type Bot struct {
	bot     *tele.Bot
	advisor Advisor
	router  core.CmdRouter
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	adv Advisor,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		advisor: adv,
		router:  router,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Only the owner may talk to the bot; everyone else is ignored.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	_ = c.Notify(tele.Typing)

	if out, handled := b.router.Execute(ctx, sessionID, c.Text()); handled {
		return b.sender.sendMarkdown(ctx, c.Chat(), out)
	}

	resp, err := b.advisor.Advise(ctx, advisor.Query{Text: c.Text()})
	if err != nil {
		logger.Warn().Err(err).Msg("advisory query rejected")
		return c.Send(fmt.Sprintf("⚠️ %v", err))
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), renderResponse(resp))
}
