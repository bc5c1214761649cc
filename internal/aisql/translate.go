package aisql

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const TranslateSchemaVersion = 1

const translateSystemPrompt = `You are a translator. Translate the user's text faithfully. Preserve tone, names, numbers, and formatting. Respond with the translation only, no preamble.`

// Translate translates text between languages given as ISO codes or plain
// names. An empty sourceLang lets the model detect the source language.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string, opts Options) (Result[string], Usage) {
	var prompt strings.Builder
	if strings.TrimSpace(sourceLang) != "" {
		prompt.WriteString(fmt.Sprintf("Translate from %s to %s.\n\n", sourceLang, targetLang))
	} else {
		prompt.WriteString(fmt.Sprintf("Translate to %s.\n\n", targetLang))
	}
	prompt.WriteString(text)

	req := c.completeRequest(translateSystemPrompt, prompt.String(), opts)
	result, usage := c.invokeText(ctx, FuncTranslate, req)
	log.Printf("aisql translate request=%s model=%s source=%s target=%s status=%s", result.RequestID(), req.Model, sourceLang, targetLang, result.Status())

	if translated, ok := result.Value(); ok {
		return success(result.RequestID(), strings.TrimSpace(translated)), usage
	}
	return result, usage
}
