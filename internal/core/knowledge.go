package core

// Metadata keys understood by the ingestion pipeline.
const (
	MetaSource   = "source"
	MetaCategory = "category"
	MetaTopic    = "topic"
)

// KnowledgeChunk is a passage of the knowledge base together with its embedding.
type KnowledgeChunk struct {
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Embedding  []float32         `json:"-"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	TokenCount int               `json:"token_count"`
}

func (c KnowledgeChunk) Source() string {
	return c.Metadata[MetaSource]
}

type ScoredChunk struct {
	Chunk      KnowledgeChunk `json:"chunk"`
	Similarity float64        `json:"similarity"`
}
