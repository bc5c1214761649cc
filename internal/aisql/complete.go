package aisql

import (
	"context"
	"log"
)

// Complete runs a raw prompt against the model. With Options.GuardEnable
// the provider's safety layer may suppress the output, which surfaces as
// StatusFiltered rather than an error.
func (c *Client) Complete(ctx context.Context, prompt string, opts Options) (Result[string], Usage) {
	req := c.completeRequest("", prompt, opts)
	result, usage := c.invokeText(ctx, FuncComplete, req)
	log.Printf("aisql complete request=%s model=%s guard=%t status=%s", result.RequestID(), req.Model, req.GuardEnable, result.Status())
	return result, usage
}

// CountTokens reports how many input tokens the named function would spend
// on the given text, including the function's own prompt scaffolding. An
// empty model uses the client default.
func (c *Client) CountTokens(ctx context.Context, function, model, text string) (int64, error) {
	if model == "" {
		model = c.defaults.Model
	}

	system, prompt := promptForFunction(function, text)
	n, err := c.completer.CountTokens(ctx, model, system, prompt)
	if err != nil {
		return 0, &ServiceError{Function: FuncCountTokens, Err: err}
	}
	log.Printf("aisql count-tokens function=%s model=%s tokens=%d", function, model, n)
	return n, nil
}

// promptForFunction rebuilds the scaffolding each function wraps around
// its input, so token counts match what the function would actually spend.
func promptForFunction(function, text string) (system, prompt string) {
	switch function {
	case FuncSentiment:
		return sentimentSystemPrompt, "Text:\n" + text
	case FuncExtract:
		return extractSystemPrompt, "Text:\n" + text
	case FuncTranslate:
		return translateSystemPrompt, text
	case FuncSummarize:
		return summarizeSystemPrompt, text
	case FuncSummarizeAgg:
		return summarizeAggSystemPrompt, text
	case FuncParse:
		return parseOCRSystemPrompt, text
	default:
		return "", text
	}
}
