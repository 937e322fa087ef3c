package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sandevgo/finadvisor/internal/risk"
	"github.com/sandevgo/finadvisor/internal/service/advisor"
	"github.com/stretchr/testify/assert"
)

func TestSplitHTML(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitHTML("short", 10))
	assert.Empty(t, splitHTML("", 10))

	text := strings.Repeat("line of text\n", 20)
	parts := splitHTML(text, 50)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 50)
		assert.False(t, strings.HasPrefix(p, "\n"))
	}
	assert.Equal(t, strings.Count(text, "line of text"), strings.Count(strings.Join(parts, ""), "line of text"))
}

func TestSplitHTML_KeepsRunesWhole(t *testing.T) {
	text := strings.Repeat("₹", 30)
	for _, p := range splitHTML(text, 10) {
		assert.True(t, utf8.ValidString(p))
		assert.LessOrEqual(t, len(p), 10)
	}
}

func TestRenderResponse(t *testing.T) {
	p := risk.Moderate
	resp := &advisor.Response{
		ID:          uuid.New(),
		Narrative:   "Stay invested.",
		Profile:     &p,
		Allocation:  p.Allocation(),
		CitedChunks: []string{"doc_0", "doc_4"},
	}
	out := renderResponse(resp)
	assert.True(t, strings.HasPrefix(out, "Stay invested."))
	assert.Contains(t, out, "Suggested allocation (Moderate)")
	assert.Contains(t, out, "- 45% Diversified equity")
	assert.Contains(t, out, "Sources: doc_0, doc_4")
}
