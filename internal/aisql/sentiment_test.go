package aisql

import (
	"context"
	"strings"
	"testing"
)

func TestSentimentSuccessNestedField(t *testing.T) {
	stub := &stubCompleter{text: `{"categories":[{"name":"overall","sentiment":"positive"}]}`}
	client := newTestClient(stub, nil, nil)

	result, _ := client.Sentiment(context.Background(), "great!", nil, Options{})

	if result.Status() != StatusSuccess {
		t.Fatalf("expected Success, got %s (err=%v)", result.Status(), result.Err())
	}
	v, _ := result.Value()
	if v.Overall() != "positive" {
		t.Fatalf("expected overall=positive, got %q", v.Overall())
	}
}

func TestSentimentFiltered(t *testing.T) {
	stub := &stubCompleter{filtered: true}
	client := newTestClient(stub, nil, nil)

	result, _ := client.Sentiment(context.Background(), "X", nil, Options{})

	if result.Status() != StatusFiltered {
		t.Fatalf("expected Filtered, got %s", result.Status())
	}
	if _, ok := result.Value(); ok {
		t.Fatal("filtered result must not expose a value")
	}
}

func TestParseSentimentResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		overall string
	}{
		{
			name:    "plain json",
			input:   `{"categories":[{"name":"overall","sentiment":"negative"},{"name":"delivery","sentiment":"neutral"}]}`,
			overall: "negative",
		},
		{
			name:    "fenced json",
			input:   "```json\n{\"categories\":[{\"name\":\"overall\",\"sentiment\":\"Mixed\"}]}\n```",
			overall: "mixed",
		},
		{
			name:    "empty categories",
			input:   `{"categories":[]}`,
			wantErr: true,
		},
		{
			name:    "legacy numeric score shape",
			input:   `0.82`,
			wantErr: true,
		},
		{
			name:    "unknown label",
			input:   `{"categories":[{"name":"overall","sentiment":"ecstatic"}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSentimentResponse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Overall() != tt.overall {
				t.Fatalf("overall = %q, want %q", got.Overall(), tt.overall)
			}
		})
	}
}

func TestParseLegacySentimentScore(t *testing.T) {
	score, err := ParseLegacySentimentScore(" -0.35 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != -0.35 {
		t.Fatalf("score = %f, want -0.35", score)
	}

	if _, err := ParseLegacySentimentScore("2.5"); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, err := ParseLegacySentimentScore("positive"); err == nil {
		t.Fatal("expected parse error for categorical text")
	}
}

func TestSentimentAspectsReachPrompt(t *testing.T) {
	stub := &stubCompleter{text: `{"categories":[{"name":"overall","sentiment":"neutral"},{"name":"battery","sentiment":"negative"}]}`}
	client := newTestClient(stub, nil, nil)

	result, _ := client.Sentiment(context.Background(), "ok phone, bad battery", []string{"battery"}, Options{})

	if result.Status() != StatusSuccess {
		t.Fatalf("expected Success, got %s", result.Status())
	}
	if !strings.Contains(stub.lastReq.Prompt, "battery") {
		t.Fatalf("expected aspect in prompt, got %q", stub.lastReq.Prompt)
	}
}
