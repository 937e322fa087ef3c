package core

import "context"

// AIProvider is a chat-completion backend.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

// Generator turns a prepared prompt into advisory narrative.
type Generator interface {
	Generate(ctx context.Context, prompt []Message) (string, error)
}

// QueryEncoder embeds a search query into the knowledge vector space.
type QueryEncoder interface {
	EncodeQuery(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeRetriever returns at most k chunks ranked by descending similarity.
// An empty result means no relevant context and is not an error.
type KnowledgeRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]ScoredChunk, error)
}
