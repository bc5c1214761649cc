package main

import (
	"os"
	"path/filepath"
	"testing"

	"aisqlkit/internal/aisql"
)

func writeAspectsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aspects.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write aspects file: %v", err)
	}
	return path
}

func TestLoadAspectConfig(t *testing.T) {
	path := writeAspectsFile(t, `
aspects:
  - delivery
  - product quality
overrides:
  - phrase: "arrived damaged"
    aspect: delivery
    sentiment: negative
`)

	cfg, err := LoadAspectConfig(path)
	if err != nil {
		t.Fatalf("LoadAspectConfig failed: %v", err)
	}
	if len(cfg.Aspects) != 2 {
		t.Fatalf("expected 2 aspects, got %d", len(cfg.Aspects))
	}
	if len(cfg.Overrides) != 1 || cfg.Overrides[0].Aspect != "delivery" {
		t.Fatalf("unexpected overrides: %+v", cfg.Overrides)
	}
}

func TestLoadAspectConfigRejectsInvalidSentiment(t *testing.T) {
	path := writeAspectsFile(t, `
overrides:
  - phrase: "arrived damaged"
    aspect: delivery
    sentiment: angry
`)

	if _, err := LoadAspectConfig(path); err == nil {
		t.Fatal("expected error for invalid override sentiment")
	}
}

func TestLoadAspectConfigMissingFile(t *testing.T) {
	if _, err := LoadAspectConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyAspectOverrides(t *testing.T) {
	result := aisql.SentimentResult{
		Categories: []aisql.AspectSentiment{
			{Name: "overall", Sentiment: "negative"},
			{Name: "delivery", Sentiment: "neutral"},
		},
	}
	overrides := []AspectOverride{
		{Phrase: "arrived damaged", Aspect: "delivery", Sentiment: "negative"},
		{Phrase: "quick refund", Aspect: "support experience", Sentiment: "positive"},
		{Phrase: "no such phrase", Aspect: "overall", Sentiment: "positive"},
	}

	out := applyAspectOverrides("The box arrived damaged but I got a quick refund.", result, overrides)

	byName := make(map[string]string)
	for _, cat := range out.Categories {
		byName[cat.Name] = cat.Sentiment
	}
	if byName["delivery"] != "negative" {
		t.Fatalf("expected delivery override, got %q", byName["delivery"])
	}
	if byName["support experience"] != "positive" {
		t.Fatalf("expected appended support experience aspect, got %+v", out.Categories)
	}
	if byName["overall"] != "negative" {
		t.Fatalf("unmatched phrase should not override, got %q", byName["overall"])
	}
}
