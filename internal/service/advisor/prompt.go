package advisor

import (
	"fmt"
	"os"
	"strings"

	"github.com/sandevgo/finadvisor/internal/core"
)

const DefaultSystemPrompt = `You are a helpful financial advisor.
Use the provided context and computed figures to answer the question accurately.
Never change the computed figures; quote them as given.
If the context does not contain relevant information, give general, prudent financial guidance.
Keep responses concise and practical.`

// LoadSystemPrompt returns the file content at path, or the default
// instructions when the file is missing or empty.
func LoadSystemPrompt(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return DefaultSystemPrompt
	}
	if s := strings.TrimSpace(string(content)); s != "" {
		return s
	}
	return DefaultSystemPrompt
}

// BuildPrompt lays out the system instructions followed by a user turn with
// the computed figures, the numbered context passages and the question.
func BuildPrompt(systemPrompt, question, figures string, chunks []core.ScoredChunk) []core.Message {
	var b strings.Builder

	if figures != "" {
		b.WriteString("Computed figures:\n")
		b.WriteString(figures)
		b.WriteString("\n\n")
	}

	b.WriteString("Context:\n")
	if len(chunks) == 0 {
		b.WriteString("(no relevant passages found)\n")
	}
	for i, c := range chunks {
		fmt.Fprintf(&b, "[%d] ", i+1)
		if src := c.Chunk.Source(); src != "" {
			fmt.Fprintf(&b, "(%s) ", src)
		}
		b.WriteString(strings.TrimSpace(c.Chunk.Text))
		b.WriteString("\n")
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)

	return []core.Message{
		{Role: core.RoleSystem, Content: systemPrompt},
		{Role: core.RoleUser, Content: b.String()},
	}
}

// selectContext keeps the highest ranked chunks that fit into maxTokens.
// It stops at the first chunk that would overflow and reports truncation.
func selectContext(chunks []core.ScoredChunk, maxTokens int) ([]core.ScoredChunk, bool) {
	used := 0
	for i, c := range chunks {
		n := chunkTokens(c.Chunk)
		if used+n > maxTokens {
			return chunks[:i], true
		}
		used += n
	}
	return chunks, false
}

// chunkTokens uses the count stored at ingestion, falling back to the
// usual four characters per token estimate.
func chunkTokens(c core.KnowledgeChunk) int {
	if c.TokenCount > 0 {
		return c.TokenCount
	}
	return (len(c.Text) + 3) / 4
}
