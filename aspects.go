package main

import (
	"fmt"
	"os"
	"strings"

	"aisqlkit/internal/aisql"

	"gopkg.in/yaml.v3"
)

// AspectConfig drives the sentiment demo: which aspects to score besides
// overall, plus deterministic phrase overrides for domain language the
// model tends to misread.
type AspectConfig struct {
	Aspects   []string         `yaml:"aspects"`
	Overrides []AspectOverride `yaml:"overrides"`
}

type AspectOverride struct {
	Phrase    string `yaml:"phrase"`
	Aspect    string `yaml:"aspect"`
	Sentiment string `yaml:"sentiment"`
}

func LoadAspectConfig(path string) (*AspectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aspects: %w", err)
	}
	var c AspectConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse aspects yaml: %w", err)
	}
	for _, o := range c.Overrides {
		switch strings.ToLower(strings.TrimSpace(o.Sentiment)) {
		case "positive", "negative", "neutral", "mixed":
		default:
			return nil, fmt.Errorf("override for phrase %q has invalid sentiment %q", o.Phrase, o.Sentiment)
		}
	}
	return &c, nil
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// applyAspectOverrides forces the configured sentiment on aspects whose
// trigger phrase appears in the text. Matching aspects are overridden in
// place; a phrase that matches no returned aspect appends one.
func applyAspectOverrides(text string, result aisql.SentimentResult, overrides []AspectOverride) aisql.SentimentResult {
	if len(overrides) == 0 {
		return result
	}

	body := normalizeToken(text)
	for _, o := range overrides {
		phrase := normalizeToken(o.Phrase)
		if phrase == "" || !strings.Contains(body, phrase) {
			continue
		}

		sentiment := normalizeToken(o.Sentiment)
		found := false
		for i, cat := range result.Categories {
			if strings.EqualFold(cat.Name, o.Aspect) {
				result.Categories[i].Sentiment = sentiment
				found = true
				break
			}
		}
		if !found {
			result.Categories = append(result.Categories, aisql.AspectSentiment{
				Name:      o.Aspect,
				Sentiment: sentiment,
			})
		}
	}
	return result
}
