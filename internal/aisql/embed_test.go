package aisql

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float32
		want    float64
		wantErr bool
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "length mismatch", a: []float32{1}, b: []float32{1, 2}, wantErr: true},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 2}, wantErr: true},
		{name: "empty", a: nil, b: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %f", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("cosine = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestEmbedTextPinnedDimensionMismatch(t *testing.T) {
	stub := &stubEmbedder{vectors: [][]float32{{1, 2, 3}}}
	client := newTestClient(nil, stub, nil)

	result, _ := client.EmbedText(context.Background(), "text-embedding-3-small", []string{"hello"})

	if result.Status() != StatusError {
		t.Fatalf("expected Error for dimension mismatch, got %s", result.Status())
	}
}

func TestEmbedTextUnpinnedModelAcceptsAnyDims(t *testing.T) {
	stub := &stubEmbedder{vectors: [][]float32{{1, 2, 3}}}
	client := newTestClient(nil, stub, nil)

	result, _ := client.EmbedText(context.Background(), "experimental-model", []string{"hello"})

	if result.Status() != StatusSuccess {
		t.Fatalf("expected Success, got %s (err=%v)", result.Status(), result.Err())
	}
}

func TestSimilaritySingleProviderCall(t *testing.T) {
	stub := &stubEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}}
	client := newTestClient(nil, stub, nil)

	result, _ := client.Similarity(context.Background(), "experimental-model", "a", "b")

	if result.Status() != StatusSuccess {
		t.Fatalf("expected Success, got %s (err=%v)", result.Status(), result.Err())
	}
	score, _ := result.Value()
	if math.Abs(score) > 1e-9 {
		t.Fatalf("expected orthogonal score 0, got %f", score)
	}
	if stub.calls != 1 {
		t.Fatalf("expected both texts embedded in one call, got %d calls", stub.calls)
	}
}

func TestSimilarityServiceError(t *testing.T) {
	boom := errors.New("embeddings endpoint down")
	stub := &stubEmbedder{err: boom}
	client := newTestClient(nil, stub, nil)

	result, _ := client.Similarity(context.Background(), "m", "a", "b")

	if result.Status() != StatusError {
		t.Fatalf("expected Error, got %s", result.Status())
	}
	if !errors.Is(result.Err(), boom) {
		t.Fatalf("expected original error preserved, got %v", result.Err())
	}
}
