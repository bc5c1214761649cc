package aisql

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const SummarizeSchemaVersion = 1

const summarizeSystemPrompt = `You summarize text. Write a concise summary (2-4 sentences) covering the key facts and any requested action. Respond with the summary only, no preamble.`

const summarizeAggSystemPrompt = `You summarize a group of related texts into one digest. Cover the recurring themes and notable outliers; do not summarize each text separately. Respond with the digest only, no preamble.`

// Summarize produces a short summary of one text.
func (c *Client) Summarize(ctx context.Context, text string, opts Options) (Result[string], Usage) {
	req := c.completeRequest(summarizeSystemPrompt, text, opts)
	result, usage := c.invokeText(ctx, FuncSummarize, req)
	log.Printf("aisql summarize request=%s model=%s size=%d status=%s", result.RequestID(), req.Model, len(text), result.Status())

	if summary, ok := result.Value(); ok {
		return success(result.RequestID(), strings.TrimSpace(summary)), usage
	}
	return result, usage
}

// SummarizeAgg digests a group of texts (one table group, e.g. all reviews
// of a product) into a single summary.
func (c *Client) SummarizeAgg(ctx context.Context, texts []string, opts Options) (Result[string], Usage) {
	var prompt strings.Builder
	for i, t := range texts {
		prompt.WriteString(fmt.Sprintf("--- Text %d ---\n%s\n\n", i+1, strings.TrimSpace(t)))
	}

	req := c.completeRequest(summarizeAggSystemPrompt, prompt.String(), opts)
	result, usage := c.invokeText(ctx, FuncSummarizeAgg, req)
	log.Printf("aisql summarize-agg request=%s model=%s texts=%d status=%s", result.RequestID(), req.Model, len(texts), result.Status())

	if digest, ok := result.Value(); ok {
		return success(result.RequestID(), strings.TrimSpace(digest)), usage
	}
	return result, usage
}
