package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/sandevgo/finadvisor/internal/service/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdvisor struct {
	queries []advisor.Query
	err     error
}

func (s *stubAdvisor) Advise(ctx context.Context, q advisor.Query) (*advisor.Response, error) {
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	return &advisor.Response{
		Intent:      advisor.RetrievalOnly,
		Narrative:   "Keep six months of expenses aside.",
		CitedChunks: []string{"doc_2"},
	}, nil
}

type typed struct {
	line string
	err  error
}

// scripted replays typed lines and reports io.EOF once they run out.
func scripted(queue ...typed) func() (string, error) {
	return func() (string, error) {
		if len(queue) == 0 {
			return "", io.EOF
		}
		next := queue[0]
		queue = queue[1:]
		return next.line, next.err
	}
}

func lines(in ...string) []typed {
	out := make([]typed, 0, len(in))
	for _, l := range in {
		out = append(out, typed{line: l})
	}
	return out
}

func newTestChat(adv Advisor, input ...typed) (*Chat, *bytes.Buffer) {
	var out bytes.Buffer
	return &Chat{
		advisor:  adv,
		router:   command.New(command.NewCommands("INR", nil)),
		readLine: scripted(input...),
		out:      &out,
	}, &out
}

func runChat(t *testing.T, adv Advisor, input ...typed) string {
	t.Helper()
	chat, out := newTestChat(adv, input...)
	require.NoError(t, chat.Start(context.Background()))
	return out.String()
}

func TestChat_AsksAdvisorWithPinnedProfile(t *testing.T) {
	adv := &stubAdvisor{}
	out := runChat(t, adv, lines("profile moderate", "how big should my emergency fund be?", "exit", "never read")...)

	require.Len(t, adv.queries, 1)
	assert.Equal(t, "how big should my emergency fund be?", adv.queries[0].Text)
	require.NotNil(t, adv.queries[0].Profile)
	assert.Equal(t, risk.Moderate, *adv.queries[0].Profile)

	assert.Contains(t, out, "Moderate profile")
	assert.Contains(t, out, "Keep six months of expenses aside.")
	assert.Contains(t, out, "doc_2")
}

func TestChat_CommandsBypassAdvisor(t *testing.T) {
	adv := &stubAdvisor{}
	out := runChat(t, adv, lines("/emi 1lakh 12 12")...)

	assert.Empty(t, adv.queries)
	assert.Contains(t, out, "INR 8,884.88")
}

func TestChat_ErrorsDoNotEndSession(t *testing.T) {
	adv := &stubAdvisor{err: errors.New("question is empty")}
	out := runChat(t, adv, lines("first", "profile reckless", "second")...)

	assert.Len(t, adv.queries, 2)
	assert.Contains(t, out, "question is empty")
	assert.Contains(t, out, "unknown risk profile")
}

func TestChat_Interrupt(t *testing.T) {
	adv := &stubAdvisor{}
	// ^C with a half typed line only clears it, ^C on an empty line quits
	runChat(t, adv,
		typed{line: "half typed", err: readline.ErrInterrupt},
		typed{line: "asked"},
		typed{err: readline.ErrInterrupt},
		typed{line: "never read"},
	)

	require.Len(t, adv.queries, 1)
	assert.Equal(t, "asked", adv.queries[0].Text)
}

func TestChat_ReadErrorEndsSession(t *testing.T) {
	chat, _ := newTestChat(&stubAdvisor{}, typed{err: errors.New("tty gone")})
	assert.EqualError(t, chat.Start(context.Background()), "tty gone")
}

func TestChat_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adv := &stubAdvisor{}
	chat, _ := newTestChat(adv, lines("never read")...)
	assert.ErrorIs(t, chat.Start(ctx), context.Canceled)
	assert.Empty(t, adv.queries)
}

func TestRender(t *testing.T) {
	p := risk.Conservative
	out := Render(&advisor.Response{
		Narrative:  "Stay mostly in debt funds.",
		Profile:    &p,
		Allocation: p.Allocation(),
	})
	assert.True(t, strings.HasPrefix(out, "Stay mostly in debt funds."))
	assert.Contains(t, out, "Suggested allocation (Conservative)")
	assert.NotContains(t, out, "sources:")
}
