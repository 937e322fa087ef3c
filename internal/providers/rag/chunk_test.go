package rag

import (
	"testing"
)

func requireTokenizer(t *testing.T) {
	t.Helper()
	if _, err := tokenizer(); err != nil {
		t.Fatalf("tokenizer unavailable: %v", err)
	}
}

func TestCountTokens_EmbeddedRanks(t *testing.T) {
	n, err := CountTokens("hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 tokens, got %d", n)
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t   "} {
		chunks, err := ChunkText(text, DefaultChunkerConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if chunks != nil {
			t.Errorf("expected nil chunks for %q, got %v", text, chunks)
		}
	}
}

func TestChunkText_InvalidConfig(t *testing.T) {
	_, err := ChunkText("Some text.", ChunkerConfig{MaxTokens: 0})
	if err == nil {
		t.Fatal("expected error for zero max tokens")
	}
	_, err = ChunkText("Some text.", ChunkerConfig{MaxTokens: 10, OverlapTokens: 10})
	if err == nil {
		t.Fatal("expected error for overlap >= max tokens")
	}
}

func TestChunkText(t *testing.T) {
	requireTokenizer(t)

	tests := []struct {
		name           string
		text           string
		cfg            ChunkerConfig
		expectedChunks []string
	}{
		{
			name:           "Single sentence fits",
			text:           "Start a SIP early.",
			cfg:            ChunkerConfig{MaxTokens: 20},
			expectedChunks: []string{"Start a SIP early."},
		},
		{
			name:           "Two sentences fit in one chunk",
			text:           "Hello world. How are you?",
			cfg:            ChunkerConfig{MaxTokens: 10},
			expectedChunks: []string{"Hello world. How are you?"},
		},
		{
			name: "Split by sentence (No Overlap)",
			text: "First sentence. Second sentence.",
			// "First sentence." is 3 tokens: [First][ sentence][.]
			cfg: ChunkerConfig{MaxTokens: 3},
			expectedChunks: []string{
				"First sentence.",
				"Second sentence.",
			},
		},
		{
			name: "Split by sentence (With Overlap)",
			text: "Sentence one. Sentence two. Sentence three.",
			cfg:  ChunkerConfig{MaxTokens: 6, OverlapTokens: 3},
			expectedChunks: []string{
				"Sentence one. Sentence two.",
				"Sentence two. Sentence three.",
			},
		},
		{
			name:           "Paragraph handling",
			text:           "Para one.\n\nPara two.",
			cfg:            ChunkerConfig{MaxTokens: 10},
			expectedChunks: []string{"Para one. Para two."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := ChunkText(tt.text, tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(chunks) != len(tt.expectedChunks) {
				t.Errorf("Expected %d chunks, got %d", len(tt.expectedChunks), len(chunks))
				for i, c := range chunks {
					t.Logf("Chunk %d: %q (Tokens: %d)", i, c.Text, c.TokenSize)
				}
				return
			}

			for i, chunk := range chunks {
				if chunk.Text != tt.expectedChunks[i] {
					t.Errorf("Chunk %d mismatch.\nExpected: %q\nGot:      %q", i, tt.expectedChunks[i], chunk.Text)
				}
				if chunk.Index != i {
					t.Errorf("Chunk %d has index %d", i, chunk.Index)
				}
			}
		})
	}
}

func TestChunkText_LongSentenceRespectsLimit(t *testing.T) {
	requireTokenizer(t)

	chunks, err := ChunkText("http://very.long.url/that/exceeds/max/tokens", ChunkerConfig{MaxTokens: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected the URL to be split, got %d chunk(s)", len(chunks))
	}
	for i, c := range chunks {
		if c.TokenSize > 5 {
			t.Errorf("chunk %d has %d tokens", i, c.TokenSize)
		}
	}
}

func TestCountTokens(t *testing.T) {
	requireTokenizer(t)

	tests := []struct {
		text string
		want int
	}{
		{"Hello", 1},
		{"Hello world", 2},
		// [Hello][,][ world][!]
		{"Hello, world!", 4},
		{"", 0},
	}

	for _, tt := range tests {
		got, err := CountTokens(tt.text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("CountTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	text := "Invest regularly. Is 12% realistic? Review yearly."
	sentences := splitSentences(text)

	expected := []string{
		"Invest regularly.",
		"Is 12% realistic?",
		"Review yearly.",
	}

	if len(sentences) != len(expected) {
		t.Fatalf("Expected %d sentences, got %d", len(expected), len(sentences))
	}
	for i, s := range sentences {
		if s != expected[i] {
			t.Errorf("Sentence %d mismatch. Got %q, want %q", i, s, expected[i])
		}
	}
}

func TestSplitSentences_DecimalsStayIntact(t *testing.T) {
	sentences := splitSentences("Inflation is 5.5 percent. Plan for it.")
	if len(sentences) != 2 || sentences[0] != "Inflation is 5.5 percent." {
		t.Errorf("unexpected split: %q", sentences)
	}
}
