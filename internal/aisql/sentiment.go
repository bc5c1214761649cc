package aisql

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// SentimentSchemaVersion pins the categorical response contract. Version 1
// was a bare numeric score in [-1, 1]; version 2 is the categories object.
// Derived tables record which version produced a row.
const SentimentSchemaVersion = 2

type AspectSentiment struct {
	Name      string `json:"name"`
	Sentiment string `json:"sentiment"` // positive, negative, neutral, or mixed
}

type SentimentResult struct {
	Categories []AspectSentiment `json:"categories"`
}

// Overall returns the sentiment of the "overall" category, or "" if the
// model did not report one.
func (r SentimentResult) Overall() string {
	for _, c := range r.Categories {
		if strings.EqualFold(c.Name, "overall") {
			return c.Sentiment
		}
	}
	return ""
}

const sentimentSystemPrompt = `You are a sentiment classifier. Classify the sentiment of the text for each requested aspect as one of: positive, negative, neutral, mixed.
Always include an "overall" category first.

Respond with JSON only (no markdown):
{"categories": [{"name": "overall", "sentiment": "positive"}, ...]}`

// Sentiment classifies text, optionally per aspect. With no aspects only
// the overall category is returned.
func (c *Client) Sentiment(ctx context.Context, text string, aspects []string, opts Options) (Result[SentimentResult], Usage) {
	var prompt strings.Builder
	if len(aspects) > 0 {
		prompt.WriteString("Aspects to score (besides overall):\n")
		for _, a := range aspects {
			prompt.WriteString("- " + strings.TrimSpace(a) + "\n")
		}
		prompt.WriteString("\n")
	}
	prompt.WriteString("Text:\n" + text)

	req := c.completeRequest(sentimentSystemPrompt, prompt.String(), opts)
	raw, usage := c.invokeText(ctx, FuncSentiment, req)
	log.Printf("aisql sentiment request=%s model=%s aspects=%d status=%s", raw.RequestID(), req.Model, len(aspects), raw.Status())

	if raw.Status() != StatusSuccess {
		return recast[SentimentResult](raw), usage
	}

	text, _ = raw.Value()
	parsed, err := parseSentimentResponse(text)
	if err != nil {
		return failure[SentimentResult](raw.RequestID(), err), usage
	}
	return success(raw.RequestID(), parsed), usage
}

func parseSentimentResponse(responseText string) (SentimentResult, error) {
	cleaned := stripFence(responseText)

	var result SentimentResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return SentimentResult{}, fmt.Errorf("parsing sentiment response: %w (response: %s)", err, cleaned)
	}
	if len(result.Categories) == 0 {
		return SentimentResult{}, fmt.Errorf("sentiment response has no categories (response: %s)", cleaned)
	}
	for i, cat := range result.Categories {
		s := strings.ToLower(strings.TrimSpace(cat.Sentiment))
		switch s {
		case "positive", "negative", "neutral", "mixed":
			result.Categories[i].Sentiment = s
		default:
			return SentimentResult{}, fmt.Errorf("unexpected sentiment label %q", cat.Sentiment)
		}
	}
	return result, nil
}

// ParseLegacySentimentScore reads the version 1 contract, a bare numeric
// score in [-1, 1]. Kept for callers that still carry v1 rows.
func ParseLegacySentimentScore(responseText string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(responseText), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing legacy sentiment score: %w", err)
	}
	if score < -1 || score > 1 {
		return 0, fmt.Errorf("legacy sentiment score %f out of range", score)
	}
	return score, nil
}
