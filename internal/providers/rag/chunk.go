package rag

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const tokenEncoding = "cl100k_base"

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

type Chunk struct {
	Text      string
	TokenSize int
	Index     int
}

type ChunkerConfig struct {
	MaxTokens     int
	OverlapTokens int
}

// DefaultChunkerConfig keeps passages small enough that three of them fit
// the default prompt context budget.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxTokens:     300,
		OverlapTokens: 40,
	}
}

func (c ChunkerConfig) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.OverlapTokens < 0 || c.OverlapTokens >= c.MaxTokens {
		return fmt.Errorf("overlap tokens must be in [0, %d), got %d", c.MaxTokens, c.OverlapTokens)
	}
	return nil
}

// ChunkText splits text into sentence-aligned chunks of at most MaxTokens.
// Consecutive chunks share roughly OverlapTokens of trailing sentences.
func ChunkText(text string, cfg ChunkerConfig) ([]Chunk, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	enc, err := tokenizer()
	if err != nil {
		return nil, err
	}
	count := func(s string) int {
		if s == "" {
			return 0
		}
		return len(enc.Encode(s, nil, nil))
	}

	sentences := splitSentences(text)

	var (
		chunks  []Chunk
		buf     strings.Builder
		bufToks int
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text:      strings.TrimSpace(buf.String()),
			TokenSize: bufToks,
			Index:     len(chunks),
		})
		buf.Reset()
		bufToks = 0
	}

	for i, sentence := range sentences {
		sentToks := count(sentence)

		// Oversized sentence: hard split on token boundaries.
		if sentToks > cfg.MaxTokens {
			flush()
			tokens := enc.Encode(sentence, nil, nil)
			for start := 0; start < len(tokens); start += cfg.MaxTokens {
				end := min(start+cfg.MaxTokens, len(tokens))
				chunks = append(chunks, Chunk{
					Text:      strings.TrimSpace(enc.Decode(tokens[start:end])),
					TokenSize: end - start,
					Index:     len(chunks),
				})
			}
			continue
		}

		if bufToks+sentToks > cfg.MaxTokens && buf.Len() > 0 {
			flush()
			overlap := overlapFrom(sentences, i, cfg.OverlapTokens, count)
			if count(overlap)+sentToks <= cfg.MaxTokens {
				buf.WriteString(overlap)
				bufToks = count(overlap)
			}
		}

		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(sentence)
		bufToks += sentToks
	}
	flush()

	return chunks, nil
}

// CountTokens returns the cl100k_base token count of text.
func CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	enc, err := tokenizer()
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

func tokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		// ranks are embedded in the binary, nothing is downloaded
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
		tk, tkErr = tiktoken.GetEncoding(tokenEncoding)
		if tkErr != nil {
			tkErr = fmt.Errorf("failed to load tokenizer %s: %w", tokenEncoding, tkErr)
		}
	})
	return tk, tkErr
}

var sentenceEnders = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true, '．': true, '…': true,
}

// splitSentences splits paragraphs into sentences on terminal punctuation
// followed by whitespace, end of text or a CJK rune.
func splitSentences(text string) []string {
	var sentences []string

	for _, para := range splitParagraphs(text) {
		var current strings.Builder
		runes := []rune(para)

		for i, r := range runes {
			current.WriteRune(r)
			if !sentenceEnders[r] {
				continue
			}
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) || isCJK(runes[i+1]) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 && text != "" {
		return []string{text}
	}
	return sentences
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		// soft wraps
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func overlapFrom(sentences []string, currentIdx, targetTokens int, count func(string) int) string {
	if currentIdx == 0 || targetTokens == 0 {
		return ""
	}

	var overlap []string
	tokens := 0
	for i := currentIdx - 1; i >= 0 && tokens < targetTokens; i-- {
		overlap = append([]string{sentences[i]}, overlap...)
		tokens += count(sentences[i])
	}
	return strings.Join(overlap, " ")
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
