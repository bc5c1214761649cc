package aisql

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Function names, used for logging, token accounting, and derived-table
// rows.
const (
	FuncSentiment    = "sentiment"
	FuncExtract      = "extract"
	FuncEmbed        = "embed"
	FuncSimilarity   = "similarity"
	FuncTranslate    = "translate"
	FuncSummarize    = "summarize"
	FuncSummarizeAgg = "summarize-agg"
	FuncParse        = "parse-document"
	FuncTranscribe   = "transcribe"
	FuncComplete     = "complete"
	FuncCountTokens  = "count-tokens"
)

// Defaults are the models and sampling settings used when a call does not
// override them.
type Defaults struct {
	Model           string
	EmbedModel      string
	TranscribeModel string
	Temperature     float64
	MaxTokens       int64
}

// Options override per-call settings. The zero value means "use the
// client defaults".
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	GuardEnable bool
}

// Client is the entry point for every AI function. It normalizes results
// into the Success/Filtered/Error classification so callers never have to
// re-derive status from a null value, and it issues each remote call
// exactly once per invocation.
type Client struct {
	completer   Completer
	embedder    Embedder
	transcriber Transcriber
	defaults    Defaults
}

func NewClient(completer Completer, embedder Embedder, transcriber Transcriber, defaults Defaults) *Client {
	return &Client{
		completer:   completer,
		embedder:    embedder,
		transcriber: transcriber,
		defaults:    defaults,
	}
}

func (c *Client) Defaults() Defaults { return c.defaults }

func newRequestID() string {
	return uuid.NewString()
}

func (c *Client) completeRequest(system, prompt string, opts Options) CompleteRequest {
	req := CompleteRequest{
		Model:       c.defaults.Model,
		System:      system,
		Prompt:      prompt,
		Temperature: c.defaults.Temperature,
		MaxTokens:   c.defaults.MaxTokens,
		GuardEnable: opts.GuardEnable,
	}
	if opts.Model != "" {
		req.Model = opts.Model
	}
	if opts.Temperature > 0 {
		req.Temperature = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	return req
}

// invokeText runs one completion and classifies the raw outcome. Typed
// wrappers parse the text on top of this.
func (c *Client) invokeText(ctx context.Context, function string, req CompleteRequest) (Result[string], Usage) {
	requestID := newRequestID()
	resp, err := c.completer.Complete(ctx, req)
	if err != nil {
		return failure[string](requestID, &ServiceError{Function: function, Err: err}), resp.Usage
	}
	if resp.Filtered {
		return filtered[string](requestID), resp.Usage
	}
	return success(requestID, resp.Text), resp.Usage
}

// stripFence removes a markdown code fence the model sometimes wraps JSON
// responses in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
