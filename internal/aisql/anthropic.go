package aisql

import (
	"context"
	"fmt"
	"log"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const guardSystemPolicy = `Before answering, check the request against a strict content policy: refuse anything harmful, hateful, sexual, or facilitating violence or illegal activity. When you refuse, refuse outright; do not partially comply.`

// AnthropicCompleter backs chat-style functions with the Anthropic
// messages API.
//
// Filtering vs failure: a refusal stop reason is reported as Filtered.
// An empty response without a refusal stop reason is indistinguishable
// from a service-side fault and is reported as an error.
type AnthropicCompleter struct {
	client anthropic.Client
}

func NewAnthropicCompleter(apiKey string) *AnthropicCompleter {
	return &AnthropicCompleter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (p *AnthropicCompleter) Complete(ctx context.Context, req CompleteRequest) (CompleteResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	system := req.System
	if req.GuardEnable {
		if system != "" {
			system = guardSystemPolicy + "\n\n" + system
		} else {
			system = guardSystemPolicy
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system, CacheControl: anthropic.NewCacheControlEphemeralParam()},
		}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		log.Printf("aisql anthropic error: %v", err)
		return CompleteResponse{}, fmt.Errorf("Anthropic API error: %w", err)
	}

	usage := Usage{
		InputTokens:              message.Usage.InputTokens,
		OutputTokens:             message.Usage.OutputTokens,
		CacheCreationInputTokens: message.Usage.CacheCreationInputTokens,
		CacheReadInputTokens:     message.Usage.CacheReadInputTokens,
	}

	if message.StopReason == "refusal" {
		log.Printf("aisql anthropic refusal model=%s tokens_in=%d", req.Model, usage.InputTokens)
		return CompleteResponse{Filtered: true, Usage: usage}, nil
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("aisql anthropic response size=%d tokens_in=%d tokens_out=%d cache_create=%d cache_read=%d",
				len(block.Text), usage.InputTokens, usage.OutputTokens, usage.CacheCreationInputTokens, usage.CacheReadInputTokens)
			return CompleteResponse{Text: block.Text, Usage: usage}, nil
		}
	}
	return CompleteResponse{Usage: usage}, fmt.Errorf("no text content in Anthropic response")
}

func (p *AnthropicCompleter) CountTokens(ctx context.Context, model, system, prompt string) (int64, error) {
	params := anthropic.MessageCountTokensParams{
		Model: anthropic.Model(model),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		// Count the system prompt as part of the user turn; the count
		// endpoint's system union type rejects empty entries.
		params.Messages = []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(system + "\n\n" + prompt)),
		}
	}

	count, err := p.client.Messages.CountTokens(ctx, params)
	if err != nil {
		log.Printf("aisql anthropic count-tokens error: %v", err)
		return 0, fmt.Errorf("Anthropic count tokens error: %w", err)
	}
	return count.InputTokens, nil
}
