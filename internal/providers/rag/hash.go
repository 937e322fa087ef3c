package rag

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const DefaultHashDims = 256

// HashEncoder is a deterministic local encoder based on feature hashing of
// lower-cased word unigrams and bigrams. Queries and passages share the same
// space, so it needs no model and no network.
type HashEncoder struct {
	dims int
}

func NewHashEncoder(dims int) *HashEncoder {
	if dims <= 0 {
		dims = DefaultHashDims
	}
	return &HashEncoder{dims: dims}
}

func (h *HashEncoder) Dims() int { return h.dims }

func (h *HashEncoder) EncodeQuery(ctx context.Context, text string) ([]float32, error) {
	return h.encode(ctx, text)
}

func (h *HashEncoder) EncodePassage(ctx context.Context, text string) ([]float32, error) {
	return h.encode(ctx, text)
}

func (h *HashEncoder) Shutdown() error { return nil }

func (h *HashEncoder) encode(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, h.dims)
	words := tokenize(text)
	for i, w := range words {
		h.add(vec, w, 1)
		if i > 0 {
			h.add(vec, words[i-1]+" "+w, 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec, nil
}

func (h *HashEncoder) add(vec []float32, feature string, weight float32) {
	f := fnv.New64a()
	f.Write([]byte(feature))
	sum := f.Sum64()

	idx := int(sum % uint64(h.dims))
	// The top bit decides the sign to reduce collision bias.
	if sum>>63 == 1 {
		weight = -weight
	}
	vec[idx] += weight
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "of": true,
	"to": true, "in": true, "and": true, "or": true, "for": true, "on": true,
	"it": true, "my": true, "i": true, "what": true, "how": true, "do": true,
	"should": true, "with": true, "be": true, "can": true, "me": true,
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if !stopWords[f] {
			out = append(out, f)
		}
	}
	return out
}
