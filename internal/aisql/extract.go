package aisql

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const ExtractSchemaVersion = 1

// ExtractError is the structured refusal the extraction contract returns
// when the model cannot answer from the given text. It is a success at the
// invocation level: the call worked, the answer is "no answer".
type ExtractError struct {
	Message  string `json:"error"`
	Response string `json:"response"`
}

// ExtractResult maps each requested field to its extracted value. Failure
// is set instead of Fields when the model reported it could not extract.
type ExtractResult struct {
	Fields  map[string]string
	Failure *ExtractError
}

const extractSystemPrompt = `You extract answers to specific questions from a text. Answer only from the text; never invent values.

Respond with JSON only (no markdown), mapping each field name to its answer:
{"field_name": "answer", ...}

If the text does not contain the information, respond instead with:
{"error": "short reason", "response": "closest relevant passage or empty string"}`

// Question pairs a derived-table field name with the natural-language
// question whose answer fills it.
type Question struct {
	Field  string
	Prompt string
}

// ExtractAnswer pulls structured answers out of free text.
func (c *Client) ExtractAnswer(ctx context.Context, text string, questions []Question, opts Options) (Result[ExtractResult], Usage) {
	var prompt strings.Builder
	prompt.WriteString("Questions:\n")
	for _, q := range questions {
		prompt.WriteString(fmt.Sprintf("- %s: %s\n", q.Field, q.Prompt))
	}
	prompt.WriteString("\nText:\n" + text)

	req := c.completeRequest(extractSystemPrompt, prompt.String(), opts)
	raw, usage := c.invokeText(ctx, FuncExtract, req)
	log.Printf("aisql extract request=%s model=%s questions=%d status=%s", raw.RequestID(), req.Model, len(questions), raw.Status())

	if raw.Status() != StatusSuccess {
		return recast[ExtractResult](raw), usage
	}

	responseText, _ := raw.Value()
	parsed, err := parseExtractResponse(responseText, questions)
	if err != nil {
		return failure[ExtractResult](raw.RequestID(), err), usage
	}
	return success(raw.RequestID(), parsed), usage
}

func parseExtractResponse(responseText string, questions []Question) (ExtractResult, error) {
	cleaned := stripFence(responseText)

	var fields map[string]string
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return ExtractResult{}, fmt.Errorf("parsing extract response: %w (response: %s)", err, cleaned)
	}

	// The error/response pair is the contract's own failure shape; tell it
	// apart from a genuine field called "error" by checking the question
	// list.
	if msg, ok := fields["error"]; ok && !questionFieldRequested(questions, "error") {
		return ExtractResult{Failure: &ExtractError{Message: msg, Response: fields["response"]}}, nil
	}

	out := make(map[string]string, len(questions))
	for _, q := range questions {
		v, ok := fields[q.Field]
		if !ok {
			return ExtractResult{}, fmt.Errorf("extract response missing field %q (response: %s)", q.Field, cleaned)
		}
		out[q.Field] = strings.TrimSpace(v)
	}
	return ExtractResult{Fields: out}, nil
}

func questionFieldRequested(questions []Question, field string) bool {
	for _, q := range questions {
		if q.Field == field {
			return true
		}
	}
	return false
}
