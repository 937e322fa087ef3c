package telegram

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/finadvisor/pkg/conv"
	"github.com/sandevgo/finadvisor/pkg/log"
	tele "gopkg.in/telebot.v3"
)

// Telegram rejects messages over 4096 characters.
const maxTelegramMsgLen = 4000

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown renders md as Telegram HTML and sends it in as many messages
// as the length limit requires.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string) error {
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	for i, part := range splitHTML(html, maxTelegramMsgLen) {
		if _, err := s.bot.Send(to, part, tele.ModeHTML, tele.NoPreview); err != nil {
			log.FromCtx(ctx).Error().Err(err).Int("part", i).Int("len", len(part)).Msg("failed to send telegram message")
			return err
		}
	}
	return nil
}

// splitHTML cuts text into pieces of at most maxLen bytes. A piece ends at
// a newline when one falls in its last two thirds, and never inside a rune.
func splitHTML(text string, maxLen int) []string {
	var parts []string
	for len(text) > maxLen {
		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		parts = append(parts, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
