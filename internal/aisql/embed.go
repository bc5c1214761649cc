package aisql

import (
	"context"
	"fmt"
	"log"
	"math"
)

const EmbedSchemaVersion = 1

// embeddingDims pins the expected vector dimension per model. A mismatch
// means the remote contract changed and stored vectors are no longer
// comparable.
var embeddingDims = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// EmbedText returns one fixed-dimension vector per input text. All vectors
// come from a single provider call.
func (c *Client) EmbedText(ctx context.Context, model string, texts []string) (Result[[][]float32], Usage) {
	requestID := newRequestID()
	if model == "" {
		model = c.defaults.EmbedModel
	}
	if len(texts) == 0 {
		return failure[[][]float32](requestID, fmt.Errorf("no texts to embed")), Usage{}
	}

	vectors, usage, err := c.embedder.Embed(ctx, model, texts)
	if err != nil {
		return failure[[][]float32](requestID, &ServiceError{Function: FuncEmbed, Err: err}), usage
	}

	if want, ok := embeddingDims[model]; ok {
		for i, v := range vectors {
			if len(v) != want {
				return failure[[][]float32](requestID,
					fmt.Errorf("embedding %d has %d dims, model %s pins %d", i, len(v), model, want)), usage
			}
		}
	}

	log.Printf("aisql embed request=%s model=%s texts=%d status=Success", requestID, model, len(texts))
	return success(requestID, vectors), usage
}

// Similarity embeds both texts in one call and returns their cosine
// similarity in [-1, 1].
func (c *Client) Similarity(ctx context.Context, model, a, b string) (Result[float64], Usage) {
	vecs, usage := c.EmbedText(ctx, model, []string{a, b})
	if vecs.Status() != StatusSuccess {
		return recast[float64](vecs), usage
	}

	pair, _ := vecs.Value()
	score, err := Cosine(pair[0], pair[1])
	if err != nil {
		return failure[float64](vecs.RequestID(), err), usage
	}
	return success(vecs.RequestID(), score), usage
}

// Cosine computes cosine similarity between two vectors of equal length.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty vectors")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
